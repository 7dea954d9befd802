// Package gateway talks to the payment gateway that executes refunds. The
// backend owns the refund statuses; this client is how it learns a refund
// actually settled.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("refund not found")
	ErrRateLimited = errors.New("gateway rate limited")
)

// Refund states reported by the gateway.
const (
	RefundStatusProcessing = "PROCESSING"
	RefundStatusCompleted  = "COMPLETED"
	RefundStatusFailed     = "FAILED"
)

// RateLimitError carries the pause the gateway asks for.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// RefundStatusResponse describes the gateway's answer for one refund.
type RefundStatusResponse struct {
	OrderID string          `json:"order"`
	Status  string          `json:"status"`
	Amount  decimal.Decimal `json:"amount,omitempty"`
}

// Client fetches refund settlement state.
type Client interface {
	GetRefundStatus(ctx context.Context, orderID string) (*RefundStatusResponse, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTP gateway client.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetRefundStatus fetches the refund state for one order.
func (c *HTTPClient) GetRefundStatus(ctx context.Context, orderID string) (*RefundStatusResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway base url: %w", err)
	}
	u.Path = fmt.Sprintf("%s/api/refunds/%s", u.Path, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload RefundStatusResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode refund response: %w", err)
		}
		return &payload, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, RateLimitError{RetryAfter: retryAfter}
	case http.StatusInternalServerError:
		return nil, fmt.Errorf("gateway error 500")
	default:
		return nil, fmt.Errorf("unexpected gateway status: %d", resp.StatusCode)
	}
}

func parseRetryAfter(val string) time.Duration {
	if val == "" {
		return 5 * time.Second
	}
	// seconds value
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	// http-date
	if t, err := http.ParseTime(val); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
