package remote

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"
)

// pace holds reads to the configured rate. Writes carry user edits and are
// never delayed or refused here; the dashboard sends them one at a time.
func (c *Client) pace(ctx context.Context, method string) error {
	if method != http.MethodGet {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func newLimiter(reqPerSec float64, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(reqPerSec), burst)
}
