package cambai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// httpClient handles HTTP communication with the CambAI API.
//
// It is the only place that touches the network. Requests are never retried;
// every failure is returned to the caller as-is.
type httpClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func newHTTPClient(cfg *clientConfig) *httpClient {
	return &httpClient{
		client:  cfg.httpClient,
		baseURL: strings.TrimRight(cfg.baseURL, "/"),
		apiKey:  cfg.apiKey,
	}
}

// requestJSON sends body (if non-nil) as JSON and decodes the JSON response
// into result (if non-nil).
func (h *httpClient) requestJSON(ctx context.Context, method, path string, query url.Values, body, result any) error {
	data, _, err := h.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// requestRaw returns the undecoded response body and headers.
func (h *httpClient) requestRaw(ctx context.Context, method, path string, query url.Values) ([]byte, http.Header, error) {
	return h.do(ctx, method, path, query, nil)
}

// do performs a single HTTP request.
func (h *httpClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, http.Header, error) {
	u := h.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	h.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, parseError(method, path, resp.StatusCode, data)
	}

	return data, resp.Header, nil
}

// setHeaders sets common headers for API requests.
func (h *httpClient) setHeaders(req *http.Request) {
	req.Header.Set("x-api-key", h.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "giztoy-cambai-go/1.0")
}

// parseError builds an *Error from a non-2xx response body.
// CambAI reports errors either as {"detail": "..."} or {"message": "..."}.
func parseError(method, path string, status int, body []byte) error {
	e := &Error{
		HTTPStatus: status,
		Method:     method,
		Path:       path,
	}

	var payload struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch d := payload.Detail.(type) {
		case string:
			e.Message = d
		case nil:
			e.Message = payload.Message
		default:
			if b, err := json.Marshal(d); err == nil {
				e.Message = string(b)
			}
		}
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
