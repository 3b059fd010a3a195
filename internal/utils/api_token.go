package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// APITokenBytes is the entropy of a generated scheduler key.
const APITokenBytes = 32

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashAPIToken hashes a plaintext import key using bcrypt.
func HashAPIToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckAPIToken compares a plaintext import key with a bcrypt hash.
func CheckAPIToken(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}

// NewAPIToken returns a fresh scheduler key and the hash to put in IMPORT_API_TOKEN_HASH.
func NewAPIToken() (token string, hash string, err error) {
	token, err = GenerateSecureRandomString(APITokenBytes)
	if err != nil {
		return "", "", err
	}
	hash, err = HashAPIToken(token)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash api token: %w", err)
	}
	return token, hash, nil
}
