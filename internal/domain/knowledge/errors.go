package knowledge

import "errors"

var (
	// ErrRateLimited provider rejected the call for rate limiting; retryable
	ErrRateLimited = errors.New("rate limited")
	// ErrEmptyInput no usable ticket text could be resolved
	ErrEmptyInput = errors.New("no ticket text available")
	// ErrLengthMismatch texts and metadatas are not paired 1:1
	ErrLengthMismatch = errors.New("texts and metadatas length mismatch")
)

// IsRateLimited reports whether err is in the retryable rate-limit class
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
