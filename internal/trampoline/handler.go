// Package trampoline implements the transient web page the system
// browser lands on after the identity provider redirects back. It
// completes the code-for-token exchange and bounces the session payload
// into the native shell through a custom-scheme deep link.
package trampoline

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/authtemplate/authshell/internal/auth"
	"github.com/authtemplate/authshell/internal/backend"
	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/logger"
	"github.com/authtemplate/authshell/internal/session"
	"github.com/authtemplate/authshell/internal/utils"
	"go.uber.org/zap"
)

// CallbackPath is the route registered as the OAuth redirect URI path.
const CallbackPath = "/auth/callback"

// Terminal status texts shown on the callback page.
const (
	StatusSigningIn       = "Signing you in..."
	StatusMissingResponse = "Missing authorization response"
	StatusInvalidState    = "Invalid state format"
)

// Handler serves the OAuth callback page. Each request runs one linear
// exchange sequence with no retry: a failed exchange requires the user
// to restart the login from scratch.
type Handler struct {
	scheme   string
	provider string
	client   *backend.Client

	// now is swapped in tests to pin expiry computation.
	now func() time.Time
}

// NewHandler creates the callback handler.
func NewHandler(cfg *config.Config, client *backend.Client) *Handler {
	return &Handler{
		scheme:   cfg.DeepLink.Scheme,
		provider: cfg.Backend.Provider,
		client:   client,
		now:      time.Now,
	}
}

// RegisterRoutes registers the trampoline routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(CallbackPath, h.HandleCallback)
}

// HandleCallback processes the identity provider's redirect.
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "invalid_request", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()

	if provErr := query.Get("error"); provErr != "" {
		logger.Warn("Identity provider returned an error", zap.String("error", provErr))
		h.renderFailure(w, provErr)
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		h.renderFailure(w, StatusMissingResponse)
		return
	}

	token, err := auth.SplitStateToken(state)
	if err != nil {
		h.renderFailure(w, StatusInvalidState)
		return
	}
	// The nonce is carried but not verified here; see the session
	// bootstrap notes. It must not be dropped from the split result.
	logger.Debug("Authorization response received", zap.String("nonce", token.Nonce))

	tokens, err := h.client.ExchangeCode(r.Context(), code, h.redirectURI(r), token.Verifier)
	if err != nil {
		logger.Error("Token exchange failed", zap.Error(err))
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			h.renderFailure(w, apiErr.Detail)
		} else {
			h.renderFailure(w, err.Error())
		}
		return
	}

	// Best effort only: the role claim is optional and must never fail
	// the exchange.
	role, err := h.client.FetchRole(r.Context(), tokens.AccessToken)
	if err != nil {
		logger.Debug("Role fetch failed, continuing without role", zap.Error(err))
		role = ""
	}

	info := &session.LoginInfo{
		Provider:     h.provider,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		IDToken:      tokens.IDToken,
		UserInfo:     tokens.UserInfo,
		Role:         role,
	}
	if tokens.ExpiresIn != nil {
		expiresAt := h.now().Unix() + *tokens.ExpiresIn
		info.ExpiresAt = &expiresAt
	}

	link, err := session.EncodeDeepLink(h.scheme, info)
	if err != nil {
		logger.Error("Failed to build deep link", zap.Error(err))
		h.renderFailure(w, err.Error())
		return
	}

	h.renderSuccess(w, link)
}

// redirectURI reconstructs the page's own origin and path. It must
// exactly match the URI registered with the identity provider, so the
// forwarded proto header from a fronting proxy is honored.
func (h *Handler) redirectURI(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.Path
}

func (h *Handler) renderSuccess(w http.ResponseWriter, deepLink string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// template.URL keeps the custom scheme from being sanitized away.
	err := successPage.Execute(w, struct {
		Status   string
		DeepLink template.URL
	}{
		Status:   StatusSigningIn,
		DeepLink: template.URL(deepLink),
	})
	if err != nil {
		logger.Error("Failed to render callback page", zap.Error(err))
	}
}

func (h *Handler) renderFailure(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	err := failurePage.Execute(w, struct {
		Status string
	}{
		Status: status,
	})
	if err != nil {
		logger.Error("Failed to render failure page", zap.Error(err))
	}
}
