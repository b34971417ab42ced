package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout per-request timeout of platform clients
	DefaultTimeout = 10 * time.Second
	// DefaultRate proactive request rate per client, requests per second
	DefaultRate = 2.0
	// DefaultBurst token bucket burst
	DefaultBurst = 4
)

// StatusError unexpected platform HTTP status
type StatusError struct {
	Platform   string
	StatusCode int
	Body       string
}

// Error implements error
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Platform, e.StatusCode, e.Body)
}

// apiClient shared JSON-over-HTTP plumbing with proactive throttling
type apiClient struct {
	platform   string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	authorize  func(*http.Request)
	logger     *slog.Logger
}

func newAPIClient(platform, baseURL string, authorize func(*http.Request), logger *slog.Logger) *apiClient {
	return &apiClient{
		platform:   platform,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRate), DefaultBurst),
		authorize:  authorize,
		logger:     logger,
	}
}

// getJSON decodes a GET response into out
// found is false for 204 and 404, which callers treat as empty.
func (c *apiClient) getJSON(ctx context.Context, path string, query url.Values, out any) (found bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s request failed: %w", c.platform, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Platform request",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	switch {
	case resp.StatusCode == http.StatusNoContent, resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, &StatusError{Platform: c.platform, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return true, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode %s response: %w", c.platform, err)
	}
	return true, nil
}

// flexID platform IDs arrive as JSON numbers or strings
type flexID string

// UnmarshalJSON accepts 123, "123" and null
func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = flexID(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = flexID(num.String())
	return nil
}

func limitParam(limit int) string {
	if limit <= 0 {
		limit = 100
	}
	return strconv.Itoa(limit)
}
