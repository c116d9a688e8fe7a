package types

import "errors"

// Sentinel errors for godshot operations.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID indicates a malformed identifier in a request.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrInvalidRoastLevel indicates a roast level outside the known set.
	ErrInvalidRoastLevel = errors.New("invalid roast level")

	// ErrMissingField indicates a required field was empty.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidTimezone indicates a timezone name the tz database rejects.
	ErrInvalidTimezone = errors.New("invalid timezone")
)
