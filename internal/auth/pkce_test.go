package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeVerifier(t *testing.T) {
	verifier, err := GenerateCodeVerifier(64)
	require.NoError(t, err)
	assert.Len(t, verifier, 64)

	for _, r := range verifier {
		assert.True(t, strings.ContainsRune(verifierCharset, r), "unexpected rune %q", r)
	}
}

func TestGenerateCodeVerifierLengthBounds(t *testing.T) {
	_, err := GenerateCodeVerifier(42)
	assert.Error(t, err)

	_, err = GenerateCodeVerifier(129)
	assert.Error(t, err)

	_, err = GenerateCodeVerifier(43)
	assert.NoError(t, err)

	_, err = GenerateCodeVerifier(128)
	assert.NoError(t, err)
}

func TestChallengeS256(t *testing.T) {
	// Reference vector from RFC 7636 appendix B.
	challenge, err := ChallengeS256("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
	require.NoError(t, err)
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", challenge)
}

func TestChallengeS256EmptyVerifier(t *testing.T) {
	_, err := ChallengeS256("")
	assert.Error(t, err)
}
