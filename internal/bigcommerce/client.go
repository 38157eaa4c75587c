package bigcommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront-app/internal/config"
	"storefront-app/internal/secret"
)

const (
	headerAuthToken = "X-Auth-Token"

	// maxResponseBytes bounds what we read from any platform response.
	maxResponseBytes = 1 << 20
)

// Client talks to the platform's login service (OAuth exchange) and its
// store REST API. It is immutable after construction and safe for concurrent use.
type Client struct {
	apiBaseURL   string
	loginBaseURL string
	clientID     string
	clientSecret secret.String
	http         *http.Client
}

// NewClient builds a client whose request timeout comes from cfg.Timeout.
func NewClient(cfg config.BigCommerceConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

func NewClientWithHTTP(cfg config.BigCommerceConfig, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		apiBaseURL:   cfg.APIBaseURL,
		loginBaseURL: cfg.LoginBaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		http:         hc,
	}
}

// doJSON sends body (if any) as JSON and decodes a 2xx response into out (if any).
// A non-empty accessToken is sent as X-Auth-Token.
func (c *Client) doJSON(ctx context.Context, op, method, url string, accessToken secret.String, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if !accessToken.IsEmpty() {
		req.Header.Set(headerAuthToken, accessToken.Expose())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxResponseBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, limited)
		return &TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, limited)
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty response body")
		}
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
