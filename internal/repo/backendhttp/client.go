package backendhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrBackendUnavailable marks transport failures, non-2xx statuses and
// responses whose body carries a failure flag. Callers treat all three the
// same way: the backend did not confirm the operation.
var ErrBackendUnavailable = errors.New("backend unavailable")

type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d", e.Op, e.StatusCode)
	default:
		return e.Op
	}
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// envelope is the backend's uniform response wrapper. A 200 with
// success=false is still a failure.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func NewClient(baseURL, apiToken string, timeout time.Duration) (*Client, error) {
	trimmedBaseURL := strings.TrimSpace(baseURL)
	if trimmedBaseURL == "" {
		return nil, &RequestError{Op: "create backend client", Err: errors.New("backend base url is empty")}
	}

	parsed, err := url.Parse(trimmedBaseURL)
	if err != nil {
		return nil, &RequestError{Op: "parse backend base url", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &RequestError{Op: "validate backend base url", Err: fmt.Errorf("invalid backend base url: %s", trimmedBaseURL)}
	}

	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(trimmedBaseURL, "/"),
		apiToken:   strings.TrimSpace(apiToken),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// DoJSON performs the request and decodes the envelope's data field into
// responseBody when it is non-nil.
func (c *Client) DoJSON(ctx context.Context, method, path string, requestBody, responseBody interface{}) error {
	if c == nil || c.httpClient == nil {
		return &RequestError{Op: "do json request", Err: errors.New("backend client is not initialized")}
	}

	var payload []byte
	if requestBody != nil {
		raw, err := json.Marshal(requestBody)
		if err != nil {
			return &RequestError{Op: "marshal request body", Err: err}
		}
		payload = raw
	}

	statusCode, responseBytes, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if len(responseBytes) == 0 {
		if responseBody != nil {
			return &RequestError{Op: "decode backend response", StatusCode: statusCode, Err: errors.New("empty response body")}
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(responseBytes, &env); err != nil {
		return &RequestError{Op: "decode backend response", StatusCode: statusCode, Err: err}
	}

	if env.Success != nil && !*env.Success {
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = "backend reported failure"
		}
		return &RequestError{
			Op:         "backend rejected request",
			StatusCode: statusCode,
			Err:        fmt.Errorf("%w: %s", ErrBackendUnavailable, message),
		}
	}

	if responseBody == nil {
		return nil
	}

	data := env.Data
	if len(data) == 0 {
		// Some endpoints respond with the payload at the top level.
		data = responseBytes
	}
	if err := json.Unmarshal(data, responseBody); err != nil {
		return &RequestError{Op: "decode backend payload", StatusCode: statusCode, Err: err}
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	if strings.TrimSpace(method) == "" {
		method = http.MethodGet
	}

	fullURL := c.baseURL + ensureLeadingSlash(path)

	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return 0, nil, &RequestError{Op: "create backend request", Err: err}
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &RequestError{Op: "execute backend request", Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)}
	}
	defer resp.Body.Close()

	responseBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if readErr != nil {
		return resp.StatusCode, nil, &RequestError{Op: "read backend response", StatusCode: resp.StatusCode, Err: readErr}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errMessage := strings.TrimSpace(string(responseBytes))
		if errMessage == "" {
			errMessage = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, responseBytes, &RequestError{
			Op:         "unexpected backend status",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrBackendUnavailable, errMessage),
		}
	}

	return resp.StatusCode, responseBytes, nil
}

func ensureLeadingSlash(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "/"
	}
	if strings.HasPrefix(trimmed, "/") {
		return trimmed
	}
	return "/" + trimmed
}
