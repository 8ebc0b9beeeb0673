package goaltrack

import "errors"

// Sentinel errors for the failure modes callers are expected to branch on.
// They are always wrapped with context using fmt.Errorf and %w, so use
// errors.Is to test for them.
var (
	// ErrUnauthenticated is returned when a broker call is attempted
	// without a valid session. It is surfaced to the caller, never retried
	// automatically.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrValidation is returned for malformed input at the boundary: goal
	// creation without a name or target, assignment to an unknown goal, or
	// a backup document that does not match the expected format. State is
	// never changed when it is returned.
	ErrValidation = errors.New("invalid input")

	// ErrProviderExhausted is returned when every model in a suggestion
	// provider's fallback chain failed. The last underlying error is
	// attached to the chain.
	ErrProviderExhausted = errors.New("all suggestion models failed")

	// ErrPersistence is returned when a write-through to the store failed.
	// The in-memory state is rolled back before it is returned.
	ErrPersistence = errors.New("persistence failure")
)
