package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperr "ragflow/cli/internal/errors"
)

// UserAgent is sent with every request; the cmd package sets the version at startup.
var UserAgent = "ragflow-cli/dev"

// maxErrorBody bounds how much of an error response ends up in messages.
const maxErrorBody = 512

// Endpoints contains REST API endpoint paths relative to the base URL.
type Endpoints struct {
	Login        string // e.g., "/auth/login"
	Register     string // e.g., "/auth/register"
	ChatSend     string // e.g., "/chat/send"
	ChatHistory  string // e.g., "/chat/history"
	ChatMessages string // e.g., "/chat/{id}/messages"
}

// DefaultEndpoints returns the paths served by the RagFlow backend.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:        "/auth/login",
		Register:     "/auth/register",
		ChatSend:     "/chat/send",
		ChatHistory:  "/chat/history",
		ChatMessages: "/chat/{id}/messages",
	}
}

// HTTP implements API over REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:8080/api")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints Endpoints, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
	}
}

// setStandardHeaders tags the request with the client identity and a fresh request ID.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// postJSON sends body as JSON and returns the response for 2xx statuses.
// Any other outcome is converted into a typed error; op names the call in messages.
func (h *HTTP) postJSON(ctx context.Context, op, path string, body any) (*http.Response, error) {
	return h.do(ctx, op, http.MethodPost, path, "", body)
}

// do sends one request. A non-empty token is presented as a Bearer
// Authorization header; a nil body sends no payload.
func (h *HTTP) do(ctx context.Context, op, method, path, token string, body any) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Wrap(apperr.InvalidInput, op+": encode request", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.RequestFailed, op+": build request", err)
	}
	h.setStandardHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.RequestFailed, op+" request failed", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := fmt.Sprintf("%s failed: %d %s", op, resp.StatusCode, strings.TrimSpace(string(snippet)))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, apperr.New(apperr.Unauthorized, strings.TrimSpace(msg))
	default:
		return nil, apperr.New(apperr.RequestFailed, strings.TrimSpace(msg))
	}
}

// decodeJSON reads a 2xx response body into v and closes it.
func decodeJSON(op string, resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.MalformedResponse, "decode "+op+" response", err)
	}
	return nil
}
