// Package backend is the HTTP client for the token-exchange backend.
// The backend holds the provider credentials and performs the real
// OAuth dance; this client only speaks its two login endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/logger"
	"go.uber.org/zap"
)

// genericExchangeError is shown when the backend returns a failure
// without a usable detail message.
const genericExchangeError = "Token exchange failed"

// APIError is returned when the backend responds with a non-success
// status. Detail carries the backend's human-readable message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: HTTP %d: %s", e.StatusCode, e.Detail)
}

// TokenResponse is the payload of a successful code-for-token exchange.
type TokenResponse struct {
	AccessToken  string                 `json:"access_token"`
	RefreshToken string                 `json:"refresh_token,omitempty"`
	IDToken      string                 `json:"id_token,omitempty"`
	ExpiresIn    *int64                 `json:"expires_in,omitempty"`
	UserInfo     map[string]interface{} `json:"userinfo,omitempty"`
}

// Client talks to the backend's /api/login endpoints.
type Client struct {
	baseURL        string
	provider       string
	exchangeClient *http.Client
	roleClient     *http.Client
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.BackendConfig) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		provider:       cfg.Provider,
		exchangeClient: &http.Client{Timeout: cfg.ExchangeTimeout},
		roleClient:     &http.Client{Timeout: cfg.RoleTimeout},
	}
}

// ExchangeCode trades an authorization code for tokens via
// POST /api/login/<provider>/token. A non-success response yields an
// *APIError whose Detail comes from the body's "detail" field, or a
// generic fallback when the body is absent or unparseable.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI, codeVerifier string) (*TokenResponse, error) {
	body, err := json.Marshal(map[string]string{
		"code":          code,
		"redirect_uri":  redirectURI,
		"code_verifier": codeVerifier,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/login/%s/token", c.baseURL, c.provider)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.exchangeClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", zap.Error(closeErr))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(respBody),
		}
	}

	var tokens TokenResponse
	if err := json.Unmarshal(respBody, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &tokens, nil
}

// FetchRole retrieves the authenticated user's role claim via
// GET /api/login/me. Failures are returned to the caller; the callback
// trampoline treats them as best-effort and swallows them.
func (c *Client) FetchRole(ctx context.Context, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/api/login/me", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.roleClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("role request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Detail: "role request failed"}
	}

	var me struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return "", fmt.Errorf("failed to decode role response: %w", err)
	}
	return me.Role, nil
}

// errorDetail extracts the "detail" field from an error body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == "" {
		return genericExchangeError
	}
	return payload.Detail
}
