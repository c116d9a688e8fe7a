package naming

import "errors"

// Error taxonomy for the naming pipeline. The public Generate methods
// never surface these; they exist so the degradation controller and the
// audit recorder can classify failures consistently.
var (
	// ErrValidation indicates a missing or malformed identifier.
	// The pipeline continues with whatever inputs sanitized successfully.
	ErrValidation = errors.New("naming: invalid input")

	// ErrDatabase indicates a store call failed or returned an
	// unexpected shape. Always resolved to an emergency fallback name.
	ErrDatabase = errors.New("naming: store failure")

	// ErrTimeout indicates the pipeline exceeded its deadline.
	// Always resolved to an emergency fallback name.
	ErrTimeout = errors.New("naming: pipeline deadline exceeded")

	// errNotFound marks a clean miss (row absent or name empty). Callers
	// substitute a per-field fallback constant; it never escalates.
	errNotFound = errors.New("naming: not found")
)

// classify reduces an arbitrary pipeline error to its taxonomy bucket.
// Unclassified errors report as ErrDatabase-equivalent failures for audit
// purposes but keep their original text as context.
func classify(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDatabase):
		return "database"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	default:
		return "unclassified"
	}
}
