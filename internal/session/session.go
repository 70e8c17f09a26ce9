// Package session holds the process-wide login session and the
// deep-link wire format used to hand it between the callback
// trampoline and the native shell.
package session

import "sync"

// LoginInfo represents one completed login. It is built once per
// successful exchange and never mutated afterwards; a later login
// replaces it wholesale.
type LoginInfo struct {
	Provider     string                 `json:"provider"`
	AccessToken  string                 `json:"accessToken"`
	RefreshToken string                 `json:"refreshToken,omitempty"`
	IDToken      string                 `json:"idToken,omitempty"`
	ExpiresAt    *int64                 `json:"expiresAt,omitempty"` // epoch seconds
	UserInfo     map[string]interface{} `json:"userInfo,omitempty"`
	Role         string                 `json:"role,omitempty"`
}

// Store is the process-wide session holder. It is an explicit object
// rather than an ambient global so callers can inject fakes.
type Store struct {
	mu      sync.RWMutex
	current *LoginInfo
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current session.
func (s *Store) Set(info *LoginInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = info
}

// Get returns the current session, or nil when no login has completed.
func (s *Store) Get() *LoginInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Clear drops the current session (logout).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
