package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateSecret returns size random bytes encoded as hex (2*size characters).
func GenerateSecret(size int) (string, error) {
	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return "", LogError("failed to generate secret", err)
	}
	return hex.EncodeToString(bytes), nil
}

// HashSecret is the form in which secrets are persisted.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
