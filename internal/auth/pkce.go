package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
)

// RFC 7636 limits for the code verifier length.
const (
	MinVerifierLength = 43
	MaxVerifierLength = 128
)

const verifierCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._~"

// GenerateCodeVerifier generates a random PKCE code verifier string
func GenerateCodeVerifier(length int) (string, error) {
	if length < MinVerifierLength || length > MaxVerifierLength {
		return "", fmt.Errorf("code verifier length must be between %d and %d characters", MinVerifierLength, MaxVerifierLength)
	}

	charsetLen := big.NewInt(int64(len(verifierCharset)))
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = verifierCharset[num.Int64()]
	}

	return string(result), nil
}

// ChallengeS256 derives the S256 code challenge from a verifier
func ChallengeS256(verifier string) (string, error) {
	if verifier == "" {
		return "", fmt.Errorf("code verifier cannot be empty")
	}

	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}
