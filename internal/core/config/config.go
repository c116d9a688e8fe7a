// Package config provides configuration management for the godshot server.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"
)

// ServerConfig holds configuration for the HTTP API server.
type ServerConfig struct {
	Host           string
	Port           int
	RequestTimeout time.Duration

	NamingCacheTTL    time.Duration
	NamingTimeout     time.Duration
	NamingTimezone    string
	NamingAuditSize   int
	NamingMemoryLimit uint64
}

// DefaultServerConfig returns configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:           "0.0.0.0",
		Port:           8000,
		RequestTimeout: 30 * time.Second,

		NamingCacheTTL:  5 * time.Minute,
		NamingTimeout:   5 * time.Second,
		NamingTimezone:  "UTC",
		NamingAuditSize: 1000,
		// 512 MiB of live heap marks memory pressure.
		NamingMemoryLimit: 512 << 20,
	}
}

// AdminSecrets extracts admin API-key HMAC secrets from environment
// variables. Supports GS_ADMIN_SECRET (single) and GS_ADMIN_SECRET_N
// (rotation). Returns map of secret_id -> decoded secret bytes.
// Secret IDs are 32 hex chars (UUIDv7 without hyphens) matching the API
// key format.
func AdminSecrets() (map[string][]byte, error) {
	secrets := make(map[string][]byte)

	add := func(envKey, val string) error {
		secretID, decoded, err := ParseSecretWithID(val)
		if err != nil {
			return fmt.Errorf("%s: %w", envKey, err)
		}
		if _, exists := secrets[secretID]; exists {
			return fmt.Errorf("duplicate secret_id '%s' found in environment variables (check GS_ADMIN_SECRET and GS_ADMIN_SECRET_* for conflicts)", secretID)
		}
		secrets[secretID] = decoded
		return nil
	}

	// Format: <secret_id>:<base64_secret>
	if val := os.Getenv("GS_ADMIN_SECRET"); val != "" {
		if err := add("GS_ADMIN_SECRET", val); err != nil {
			return nil, err
		}
	}

	// Numbered secrets enable rotation: old and new keys stay valid
	// during migration.
	for i := 1; ; i++ {
		key := fmt.Sprintf("GS_ADMIN_SECRET_%d", i)
		val := os.Getenv(key)
		if val == "" {
			break
		}
		if err := add(key, val); err != nil {
			return nil, err
		}
	}

	return secrets, nil
}

// ParseSecretWithID parses secret_id:base64_secret format.
// Secret ID must be 32 hex chars (UUIDv7 without hyphens).
func ParseSecretWithID(envValue string) (secretID string, secret []byte, err error) {
	parts := strings.SplitN(strings.TrimSpace(envValue), ":", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("format must be <secret_id>:<base64_secret>")
	}

	secretID = parts[0]
	if len(secretID) != 32 {
		return "", nil, fmt.Errorf("secret_id must be 32 hex chars (UUIDv7 without hyphens)")
	}
	for _, c := range secretID {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return "", nil, fmt.Errorf("secret_id must be hex chars only")
		}
	}

	secret, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	if len(secret) < 32 {
		return "", nil, fmt.Errorf("secret must be at least 32 bytes, got %d", len(secret))
	}

	return secretID, secret, nil
}
