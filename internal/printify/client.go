// Package printify talks to the print-on-demand provider. Every call is a
// single attempt: retrying order submission could create duplicate orders.
package printify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const DefaultBaseURL = "https://api.printify.com"

var (
	// ErrUnavailable covers product and shipping lookups.
	ErrUnavailable = errors.New("fulfillment provider unavailable")
	// ErrOrderSubmission is returned when the provider rejects or never receives an order.
	ErrOrderSubmission = errors.New("order submission failed")
	// ErrOrderFetch is returned when an order's details cannot be read back.
	ErrOrderFetch = errors.New("order fetch failed")
)

// Error is a failed provider call. Message is the provider's own message, or
// "Unknown error" when it sent none.
type Error struct {
	Op      string
	Status  int
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("printify %s: %d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("printify %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.kind }

// Client is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient builds a client whose requests are bounded by timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetProducts returns the shop's product list exactly as the provider sent it.
func (c *Client) GetProducts(ctx context.Context, storeID string) (json.RawMessage, error) {
	var out json.RawMessage
	path := fmt.Sprintf("/v1/shops/%s/products.json", url.PathEscape(storeID))
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "products", ErrUnavailable); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, op string, kind error) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Message: err.Error(), kind: kind}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Message: err.Error(), kind: kind}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Message: "Unknown error", kind: fmt.Errorf("%w: %v", kind, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Message: "Unknown error", kind: kind}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Op: op, Status: resp.StatusCode, Message: providerMessage(data), kind: kind}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Op: op, Status: resp.StatusCode, Message: "invalid response body", kind: kind}
		}
	}
	return nil
}

// providerMessage pulls a human-readable message out of an error body.
func providerMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if s, ok := body.Error.(string); ok && s != "" {
			return s
		}
	}
	return "Unknown error"
}
