package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrHTTP indicates a transport failure or a non-2xx status from the
// provider. StatusCode is 0 when no response was received.
type ErrHTTP struct {
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *ErrHTTP) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("LLM request failed: %v", e.Err)
	}
	return fmt.Sprintf("LLM request failed with status %d: %v", e.StatusCode, e.Err)
}

func (e *ErrHTTP) Unwrap() error { return e.Err }

// Retryable reports whether the failure is worth another attempt:
// rate limits, server errors and transport failures.
func (e *ErrHTTP) Retryable() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= 500
}

// ErrEmptyResponse indicates the provider answered without any completion
// text.
type ErrEmptyResponse struct {
	Model string
}

func (e *ErrEmptyResponse) Error() string {
	return fmt.Sprintf("empty response from model %q", e.Model)
}

// ErrParse indicates the completion text is not the expected JSON.
// Content holds the raw completion.
type ErrParse struct {
	Content string
	Err     error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrParse) Unwrap() error { return e.Err }

// transportError wraps an SDK error that carried no HTTP status. Context
// errors pass through untouched.
func transportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrHTTP{Err: err}
}
