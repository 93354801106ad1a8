package utils

import (
	"context"
	"testing"
	"time"
)

func TestRedisConfigDefaults(t *testing.T) {
	got := RedisConfig{Addr: "localhost:6379"}.withDefaults()

	if got.Addr != "localhost:6379" {
		t.Fatalf("addr must pass through, got %q", got.Addr)
	}
	if got.DialTimeout != 3*time.Second || got.ReadTimeout != 2*time.Second || got.WriteTimeout != 2*time.Second {
		t.Fatalf("timeout defaults: %+v", got)
	}
	if got.PoolSize != 20 || got.PoolTimeout != 4*time.Second {
		t.Fatalf("pool defaults: %+v", got)
	}
	if got.PingTimeout != 2*time.Second {
		t.Fatalf("ping timeout default: %v", got.PingTimeout)
	}
}

func TestRedisConfigKeepsExplicitValues(t *testing.T) {
	got := RedisConfig{Addr: "cache:6379", PoolSize: 5, DialTimeout: time.Second}.withDefaults()

	if got.PoolSize != 5 || got.DialTimeout != time.Second {
		t.Fatalf("explicit values overwritten: %+v", got)
	}
}

func TestOpenRedisRequiresAddr(t *testing.T) {
	if _, err := OpenRedis(context.Background(), RedisConfig{}); err == nil {
		t.Fatalf("expected an error for a missing addr")
	}
}
