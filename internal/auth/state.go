package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidStateFormat indicates an OAuth state parameter that does not
// carry a nonce and a code verifier.
var ErrInvalidStateFormat = errors.New("invalid state format")

// StateToken couples an anti-forgery nonce with the PKCE code verifier
// so that both survive the round trip through the identity provider
// inside the single OAuth state parameter. Wire form: "<nonce>.<verifier>".
type StateToken struct {
	Nonce    string
	Verifier string
}

// NewStateToken wraps a code verifier with a fresh random nonce.
func NewStateToken(verifier string) StateToken {
	return StateToken{
		Nonce:    uuid.NewString(),
		Verifier: verifier,
	}
}

// String renders the wire form of the token.
func (t StateToken) String() string {
	return fmt.Sprintf("%s.%s", t.Nonce, t.Verifier)
}

// SplitStateToken parses the wire form back into its parts. The state is
// split at the first separator; everything after it is the verifier,
// which may itself contain dots.
func SplitStateToken(state string) (StateToken, error) {
	idx := strings.Index(state, ".")
	if idx < 0 {
		return StateToken{}, ErrInvalidStateFormat
	}
	return StateToken{
		Nonce:    state[:idx],
		Verifier: state[idx+1:],
	}, nil
}
