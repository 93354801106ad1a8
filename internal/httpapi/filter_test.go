package httpapi

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/transactions?"+rawQuery, nil)
	return c
}

func TestFilterFromQuery(t *testing.T) {
	c := queryContext(t, "from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z&min_amount=100&max_amount=5000&category_id=cat-1")

	f, err := filterFromQuery(c)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), f.From)
	require.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), f.To)
	require.NotNil(t, f.MinAmount)
	require.EqualValues(t, 100, *f.MinAmount)
	require.NotNil(t, f.MaxAmount)
	require.EqualValues(t, 5000, *f.MaxAmount)
	require.Equal(t, "cat-1", f.CategoryID)
}

func TestFilterFromQueryEmpty(t *testing.T) {
	f, err := filterFromQuery(queryContext(t, ""))
	require.NoError(t, err)
	require.True(t, f.From.IsZero())
	require.True(t, f.To.IsZero())
	require.Nil(t, f.MinAmount)
	require.Nil(t, f.MaxAmount)
}

func TestFilterFromQueryRejectsBadInput(t *testing.T) {
	for _, q := range []string{
		"from=yesterday",
		"to=2026-13-99",
		"min_amount=ten",
		"max_amount=1.5",
	} {
		_, err := filterFromQuery(queryContext(t, q))
		require.Error(t, err, q)
	}
}
