// Package healthcheck probes HTTP endpoints to decide target health for
// failover. Transport failures and unexpected statuses both count as
// unhealthy; a probe never returns an error.
package healthcheck

import (
	"context"
	"io"
	"net/http"
	"time"
)

type Checker struct {
	expectedStatus int
	http           *http.Client
}

func New(expectedStatus int, timeout time.Duration) *Checker {
	return &Checker{
		expectedStatus: expectedStatus,
		http:           &http.Client{Timeout: timeout},
	}
}

// Healthy reports whether url answers with the expected status within
// the checker's timeout.
func (c *Checker) Healthy(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == c.expectedStatus
}
