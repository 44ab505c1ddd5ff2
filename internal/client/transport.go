package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds each request made by HTTPTransport. A zero timeout
// disables the bound and a hung endpoint hangs the caller.
const DefaultTimeout = 30 * time.Second

// Transport performs a single HTTP round-trip and reports the status code and
// raw response body. The session state machine only needs this much, which
// keeps it testable against scripted responses instead of a live server.
type Transport interface {
	Do(method, url string, body any, header map[string]string) (status int, respBody []byte, err error)
}

// HTTPTransport is the net/http backed Transport used outside of tests.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport with the given per-request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: timeout},
	}
}

// Do sends the request, encoding a non-nil body as JSON. Any status code is
// returned to the caller without being treated as an error.
func (t *HTTPTransport) Do(method, url string, body any, header map[string]string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, data, nil
}
