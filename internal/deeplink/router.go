// Package deeplink routes custom-scheme URLs handed to the app by the
// operating system into session installation and navigation.
package deeplink

import (
	"strings"
	"sync"

	"github.com/authtemplate/authshell/internal/bridge"
	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/logger"
	"github.com/authtemplate/authshell/internal/session"
	"go.uber.org/zap"
)

// Navigation targets after a deep link is processed.
const (
	PathAuthenticated = "/"
	PathLoginFailed   = "/login"
)

// Navigator moves the app's UI to a new view.
type Navigator interface {
	Navigate(path string)
}

// Router accepts app-open URLs from every delivery signal and funnels
// them through a single dedup point. Both the warm-resume event and the
// cold-start launch query can fire for the same URL; recording the last
// accepted URL here is the sole mechanism that collapses that race.
type Router struct {
	scheme string
	store  *session.Store
	nav    Navigator

	mu            sync.Mutex
	lastProcessed string
}

// NewRouter creates a router for the configured deep-link scheme.
func NewRouter(cfg *config.DeepLinkConfig, store *session.Store, nav Navigator) *Router {
	return &Router{
		scheme: cfg.Scheme,
		store:  store,
		nav:    nav,
	}
}

// ProcessDeepLink handles one delivered URL. URLs outside the scheme
// and exact duplicates of the previously accepted URL are no-ops. An
// accepted URL is recorded before parsing, installs the session and
// navigates to the authenticated root on success, or logs and navigates
// to the login-failure view on parse failure.
func (r *Router) ProcessDeepLink(url string) {
	if !strings.HasPrefix(url, r.scheme) {
		logger.Debug("ignoring URL outside deep-link scheme", zap.String("url", url))
		return
	}

	r.mu.Lock()
	if url == r.lastProcessed {
		r.mu.Unlock()
		logger.Debug("suppressing duplicate deep-link delivery")
		return
	}
	r.lastProcessed = url
	r.mu.Unlock()

	info, err := session.DecodeDeepLink(url)
	if err != nil {
		logger.Error("Failed to parse deep-link payload", zap.Error(err))
		r.nav.Navigate(PathLoginFailed)
		return
	}

	r.store.Set(info)
	logger.Info("Session installed from deep link", zap.String("provider", info.Provider))
	r.nav.Navigate(PathAuthenticated)
}

// Wire registers the router on both native delivery signals: the
// warm-resume listener and a one-time cold-start launch URL query. The
// resume signal never fires for the launch URL, so the explicit query
// is required; dedup makes double delivery harmless.
func (r *Router) Wire(b bridge.Bridge) {
	b.OnResumeURL(r.ProcessDeepLink)

	url, err := b.LaunchURL()
	if err != nil {
		logger.Debug("launch URL query failed", zap.Error(err))
		return
	}
	if url != "" {
		r.ProcessDeepLink(url)
	}
}
