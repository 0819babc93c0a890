package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit is an HTTP 429 from the vendor. RetryAfter is zero when the
// vendor sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the call succeeded but carried no usable text.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string { return "llm: unusable reply: " + e.Err.Error() }

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures and vendor-side errors.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return "llm: provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded carries the truncated text of a reply cut off by
// Request.MaxTokens.
type ErrMaxTokensExceeded struct {
	Partial string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("llm: reply truncated at max tokens (%d bytes kept)", len(e.Partial))
}

// ErrStreamInterrupted is a stream that failed after Delivered chunks
// reached the caller. It is never retried.
type ErrStreamInterrupted struct {
	Delivered int
	Err       error
}

func (e *ErrStreamInterrupted) Error() string {
	return fmt.Sprintf("llm: stream broke after %d chunks: %v", e.Delivered, e.Err)
}

func (e *ErrStreamInterrupted) Unwrap() error { return e.Err }
