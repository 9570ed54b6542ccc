package resilience

import (
	"errors"
	"fmt"
	"strings"
)

// RateLimitError marks an upstream rejection caused by rate limiting or quota
// exhaustion. It is the only error class the retry wrapper retries.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return e.Err.Error()
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// RetriesExhaustedError is the terminal error after the retry budget runs out.
// LastErr is the rate-limit error from the final attempt.
type RetriesExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("resilience: rate limited after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.LastErr
}

// IsRateLimited reports whether err looks like a rate-limit rejection: a
// typed RateLimitError anywhere in the chain, or "429" / "quota" in the error
// text. Timeouts and every other failure class are deliberately excluded.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota")
}
