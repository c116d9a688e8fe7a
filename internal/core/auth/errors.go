package auth

import "errors"

// Authentication errors. 401 for missing/invalid keys; the messages never
// confirm whether a given secret_id exists beyond the generic wording.
var (
	ErrMissingKey       = errors.New("API key required in X-API-Key header")
	ErrInvalidKeyFormat = errors.New("invalid API key format")
	ErrUnknownKey       = errors.New("unknown secret ID")
	ErrInvalidKey       = errors.New("invalid API key")
)
