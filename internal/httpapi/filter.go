package httpapi

import (
	"fmt"
	"strconv"
	"time"

	"fintrack/internal/transactions"

	"github.com/gin-gonic/gin"
)

// filterFromQuery parses listing filters from query params:
// from/to as RFC 3339 timestamps, min_amount/max_amount in minor units,
// category_id as-is.
func filterFromQuery(c *gin.Context) (transactions.Filter, error) {
	var f transactions.Filter

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("from must be RFC 3339, got %q", v)
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("to must be RFC 3339, got %q", v)
		}
		f.To = t
	}
	if v := c.Query("min_amount"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, fmt.Errorf("min_amount must be an integer, got %q", v)
		}
		f.MinAmount = &n
	}
	if v := c.Query("max_amount"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, fmt.Errorf("max_amount must be an integer, got %q", v)
		}
		f.MaxAmount = &n
	}
	f.CategoryID = c.Query("category_id")

	return f, nil
}
