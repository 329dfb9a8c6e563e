package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSessionToken returns a random hex token of n bytes of entropy.
func GenerateSessionToken(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
