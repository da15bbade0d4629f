// Package llm wraps the external text-generation provider behind a small
// contract: one prompt in, one trimmed text out. Every call is an isolated,
// independently-failable operation; callers decide what a failure means.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout reports that no response arrived within the configured
// per-call timeout.
var ErrTimeout = errors.New("generation timed out")

// ProviderError wraps authentication, quota, and network failures from the
// provider.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Config holds per-call generation parameters.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// Generator produces text for a prompt. Implementations must return the
// full generated text with surrounding whitespace stripped, never partial
// or streamed output.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// Configured reports whether the provider has credentials. Used by the
	// health endpoint; a false value means Generate will fail.
	Configured() bool
}
