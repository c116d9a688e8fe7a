// Package auth provides HMAC-based API key authentication for the admin
// HTTP surface. Keys are self-contained: the signature is computed over
// the key's own secret_id, so verification needs no database round-trip.
package auth

import (
	"context"
	"net/http"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

// actorIDKey is the context key for the authenticated admin actor.
const actorIDKey = contextKey("actor_id")

// Authenticator validates admin API keys using HMAC-SHA256 signatures.
// Holds an in-memory secret map for O(1) lookup by secret_id.
type Authenticator struct {
	secrets map[string][]byte
}

// NewAuthenticator creates an authenticator with the loaded HMAC secrets.
func NewAuthenticator(secrets map[string][]byte) *Authenticator {
	return &Authenticator{secrets: secrets}
}

// Authenticate validates an API key and returns the actor (secret_id) on
// success.
func (a *Authenticator) Authenticate(apiKey string) (string, error) {
	secretID, signature, err := ParseAPIKey(apiKey)
	if err != nil {
		return "", err
	}

	secret, ok := a.secrets[secretID]
	if !ok {
		return "", ErrUnknownKey
	}

	if !VerifySignature(secret, secretID, signature) {
		return "", ErrInvalidKey
	}
	return secretID, nil
}

// Middleware returns an http middleware that authenticates requests via
// the X-API-Key header and injects the actor into the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			http.Error(w, ErrMissingKey.Error(), http.StatusUnauthorized)
			return
		}

		actor, err := a.Authenticate(apiKey)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), actorIDKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext extracts the authenticated actor from the context.
// Returns empty string if not authenticated.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorIDKey).(string); ok {
		return actor
	}
	return ""
}
