package utils

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"
)

// stubState records driver activity so tests can observe commits, rollbacks
// and pings without a running server.
type stubState struct {
	commits   int
	rollbacks int
	pingErr   error
}

type stubDriver struct{ state *stubState }

func (d stubDriver) Open(string) (driver.Conn, error) { return stubConn{state: d.state}, nil }

type stubConnector struct{ state *stubState }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) {
	return stubConn{state: c.state}, nil
}
func (c stubConnector) Driver() driver.Driver { return stubDriver{state: c.state} }

type stubConn struct{ state *stubState }

func (c stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (c stubConn) Close() error                        { return nil }
func (c stubConn) Begin() (driver.Tx, error)           { return stubTx{state: c.state}, nil }
func (c stubConn) Ping(context.Context) error          { return c.state.pingErr }

type stubTx struct{ state *stubState }

func (tx stubTx) Commit() error   { tx.state.commits++; return nil }
func (tx stubTx) Rollback() error { tx.state.rollbacks++; return nil }

var errDBDown = errors.New("connection refused")

func init() {
	sql.Register("stub-ok", stubDriver{state: &stubState{}})
	sql.Register("stub-down", stubDriver{state: &stubState{pingErr: errDBDown}})
}

func TestOpenPostgresAppliesPoolDefaults(t *testing.T) {
	db, err := OpenPostgres(context.Background(), "stub-ok", "dsn", PostgresPoolConfig{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != defaultMaxConns {
		t.Fatalf("max open conns: expected %d, got %d", defaultMaxConns, got)
	}
}

func TestOpenPostgresRespectsPoolConfig(t *testing.T) {
	db, err := OpenPostgres(context.Background(), "stub-ok", "dsn", PostgresPoolConfig{MaxOpenConns: 3})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 3 {
		t.Fatalf("max open conns: expected 3, got %d", got)
	}
}

func TestOpenPostgresFailsWhenUnreachable(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "stub-down", "dsn", PostgresPoolConfig{PingTimeout: time.Second})
	if !errors.Is(err, errDBDown) {
		t.Fatalf("expected the ping error, got %v", err)
	}
}

func TestHealthCheckWrapsPingError(t *testing.T) {
	db := sql.OpenDB(stubConnector{state: &stubState{pingErr: errDBDown}})
	defer db.Close()

	if err := HealthCheck(context.Background(), db, time.Second); !errors.Is(err, errDBDown) {
		t.Fatalf("expected the ping error, got %v", err)
	}
}

func TestWithTxCommits(t *testing.T) {
	st := &stubState{}
	db := sql.OpenDB(stubConnector{state: st})
	defer db.Close()

	ran := false
	err := WithTx(context.Background(), db, func(context.Context, *sql.Tx) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}
	if !ran {
		t.Fatalf("fn never ran")
	}
	if st.commits != 1 || st.rollbacks != 0 {
		t.Fatalf("expected a single commit, got commits=%d rollbacks=%d", st.commits, st.rollbacks)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := &stubState{}
	db := sql.OpenDB(stubConnector{state: st})
	defer db.Close()

	boom := errors.New("boom")
	err := WithTx(context.Background(), db, func(context.Context, *sql.Tx) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error back, got %v", err)
	}
	if st.commits != 0 || st.rollbacks != 1 {
		t.Fatalf("expected a single rollback, got commits=%d rollbacks=%d", st.commits, st.rollbacks)
	}
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	st := &stubState{}
	db := sql.OpenDB(stubConnector{state: st})
	defer db.Close()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected the panic to propagate")
			}
		}()
		_ = WithTx(context.Background(), db, func(context.Context, *sql.Tx) error {
			panic("boom")
		})
	}()

	if st.commits != 0 || st.rollbacks != 1 {
		t.Fatalf("expected a single rollback, got commits=%d rollbacks=%d", st.commits, st.rollbacks)
	}
}
