package backend

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	apperr "ragflow/cli/internal/errors"
)

// Login posts credentials to /auth/login.
// The token is read from the JSON body, falling back to an Authorization
// response header. A 2xx response without a token is a MalformedResponse.
func (h *HTTP) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	if err := creds.Validate(); err != nil {
		return LoginResponse{}, err
	}

	resp, err := h.postJSON(ctx, "login", h.endpoints.Login, creds)
	if err != nil {
		return LoginResponse{}, err
	}
	defer resp.Body.Close()

	token, err := parseLoginBody(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return LoginResponse{}, err
	}
	if token == "" {
		token = findBearerTokenInHeaders(resp.Header)
	}
	if token == "" {
		return LoginResponse{}, apperr.New(apperr.MalformedResponse, "login response carries no token")
	}
	return LoginResponse{Token: token}, nil
}

// parseLoginBody extracts the token from a JSON login response.
// An empty body yields no token and no error so the header fallback can apply.
func parseLoginBody(r io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", apperr.Wrap(apperr.MalformedResponse, "read login response", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return "", nil
	}

	lowerCT := strings.ToLower(contentType)
	if contentType != "" && !strings.Contains(lowerCT, "json") {
		return "", apperr.New(apperr.MalformedResponse, "login response is not JSON ("+contentType+")")
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return "", apperr.Wrap(apperr.MalformedResponse, "decode login response", err)
	}
	return extractAccessToken(raw), nil
}

// Register posts a registration to /auth/register. Any 2xx status is success.
func (h *HTTP) Register(ctx context.Context, reg Registration) error {
	if err := reg.Validate(); err != nil {
		return err
	}

	resp, err := h.postJSON(ctx, "register", h.endpoints.Register, reg)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var _ API = (*HTTP)(nil)
