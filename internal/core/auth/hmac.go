package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseAPIKey extracts secret_id and signature from the API key format.
// Format: gs-v1-<secret_id>-<signature> where secret_id is 32 hex chars
// (UUIDv7 without hyphens) and signature is 64 hex chars (HMAC-SHA256).
// Returns ErrInvalidKeyFormat if the format doesn't match.
func ParseAPIKey(key string) (secretID, signature string, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 4 || parts[0] != "gs" || parts[1] != "v1" {
		return "", "", ErrInvalidKeyFormat
	}

	secretID = parts[2]
	signature = parts[3]

	if len(secretID) != 32 || len(signature) != 64 {
		return "", "", ErrInvalidKeyFormat
	}
	for _, c := range secretID + signature {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return "", "", ErrInvalidKeyFormat
		}
	}

	return secretID, signature, nil
}

// ComputeSignature computes the hex HMAC-SHA256 signature of the secret_id
// under the secret.
func ComputeSignature(secret []byte, secretID string) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(secretID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks the presented signature in constant time.
func VerifySignature(secret []byte, secretID, signature string) bool {
	expected := ComputeSignature(secret, secretID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// FormatAPIKey constructs an API key from its components.
// Used when issuing keys to operators.
func FormatAPIKey(secretID string, secret []byte) string {
	return fmt.Sprintf("gs-v1-%s-%s", secretID, ComputeSignature(secret, secretID))
}
