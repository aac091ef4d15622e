package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "timebox/internal/platform/errors"
)

// Client talks JSON to the timebox API with basic-auth credentials.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

func New(baseURL, username, password string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: timeout},
	}
}

// Close releases idle keep-alive connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Do sends in as the JSON body (nil for none) and decodes a 2xx response
// into out (nil to discard). Non-2xx responses are classified:
// 401 unauthorized, 404 not found, 400 conflict or validation by envelope
// code, anything else an adapter failure.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	if c.username == "" {
		return fmt.Errorf("%s %s: %w: no credentials", method, path, apperrors.ErrUnauthorized)
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", apperrors.ErrInvalidInput, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperrors.ErrAdapterFailure, err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrAdapterFailure, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode %s %s: %v", apperrors.ErrAdapterFailure, method, path, err)
		}
		return nil
	}
	return classify(method, path, resp)
}

func classify(method, path string, resp *http.Response) error {
	var env apperrors.Envelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &env); err != nil || env.Error == "" {
		env.Error = strings.TrimSpace(string(raw))
		if env.Error == "" {
			env.Error = http.StatusText(resp.StatusCode)
		}
	}

	var kind error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = apperrors.ErrUnauthorized
	case http.StatusNotFound:
		kind = apperrors.ErrNotFound
	case http.StatusBadRequest:
		if env.Code == apperrors.CodeConflict {
			kind = apperrors.ErrConflict
		} else {
			kind = apperrors.ErrInvalidInput
		}
	default:
		kind = apperrors.ErrAdapterFailure
	}
	return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Message: env.Error, kind: kind}
}

// StatusError carries the HTTP status of a failed call; errors.Is matches
// the sentinel kind it was classified as.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

// Status extracts the HTTP status from err, or 0.
func Status(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
