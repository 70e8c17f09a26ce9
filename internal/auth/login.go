package auth

import (
	"fmt"

	"github.com/authtemplate/authshell/internal/config"
	"golang.org/x/oauth2"
)

// PendingLogin holds everything the caller needs to complete a login
// started by BeginLogin: the URL to hand to the system browser and the
// state token the identity provider will echo back.
type PendingLogin struct {
	AuthURL string
	State   StateToken
}

// BeginLogin prepares a PKCE authorization request against the
// configured identity provider. The code verifier travels inside the
// state parameter so the callback trampoline can recover it without
// any server-side storage.
func BeginLogin(cfg *config.OAuthConfig) (*PendingLogin, error) {
	if cfg.AuthorizeURL == "" || cfg.ClientID == "" {
		return nil, fmt.Errorf("oauth.authorize_url and oauth.client_id are required to start a login")
	}

	verifier, err := GenerateCodeVerifier(64)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}

	challenge, err := ChallengeS256(verifier)
	if err != nil {
		return nil, err
	}

	state := NewStateToken(verifier)

	oauth2Cfg := &oauth2.Config{
		ClientID:    cfg.ClientID,
		Endpoint:    oauth2.Endpoint{AuthURL: cfg.AuthorizeURL},
		Scopes:      cfg.Scopes,
		RedirectURL: cfg.RedirectURI,
	}

	authURL := oauth2Cfg.AuthCodeURL(state.String(),
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	return &PendingLogin{
		AuthURL: authURL,
		State:   state,
	}, nil
}
