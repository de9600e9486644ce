package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/forcefield/pkg/cache"
)

// maxResponseBytes bounds how much of a remote graph file is read.
const maxResponseBytes = 32 << 20

// FetchJSON retrieves url, unmarshaling the response body into v. Response
// bodies pass through c when it is non-nil: fresh entries are returned
// without a request, and successful fetches are stored under the URL with
// the given ttl for next time.
//
// Transient failures (connection errors, 5xx responses) are retried with
// exponential backoff; 4xx responses fail immediately.
func FetchJSON(ctx context.Context, client *http.Client, c cache.Cache, ttl time.Duration, url string, v any) error {
	if c != nil {
		if data, ok, err := c.Get(ctx, url); ok && err == nil {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
		}
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return &RetryableError{Err: fmt.Errorf("GET %s: %s", url, resp.Status)}
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("GET %s: %s", url, resp.Status)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	if c != nil {
		_ = c.Set(ctx, url, body, ttl)
	}
	return nil
}
