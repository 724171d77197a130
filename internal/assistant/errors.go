package assistant

import "errors"

var (
	ErrSessionNotFound = errors.New("conversation not found")
	ErrEmptyMessage    = errors.New("message is empty")

	// Generator failures. The service always falls back to the rule-based
	// dialogue when one of these is returned.
	ErrGeneratorUnavailable = errors.New("generator unavailable")
	ErrRateLimited          = errors.New("generator rate limited")
	ErrGenerationFailed     = errors.New("generation failed")
	ErrEmptyCompletion      = errors.New("generator returned no text")
)

// failureReason labels a generator error for metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrGeneratorUnavailable):
		return "unavailable"
	case errors.Is(err, ErrEmptyCompletion):
		return "empty"
	case errors.Is(err, ErrGenerationFailed):
		return "failed"
	default:
		return "other"
	}
}
