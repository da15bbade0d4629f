package llm

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

const (
	maxAttempts    = 3
	initialBackoff = 1 * time.Second
)

// Anthropic generates text through the Anthropic Messages API. The API key
// comes from ANTHROPIC_API_KEY in the environment.
type Anthropic struct {
	client anthropic.Client
	cfg    Config
}

// NewAnthropic creates a generator with the given call parameters.
func NewAnthropic(cfg Config) *Anthropic {
	return &Anthropic{
		client: anthropic.NewClient(),
		cfg:    cfg,
	}
}

// Configured reports whether an API key is present.
func (g *Anthropic) Configured() bool {
	return os.Getenv("ANTHROPIC_API_KEY") != ""
}

// Generate sends one prompt and returns the full response text. Transient
// provider failures are retried with exponential backoff inside this single
// logical call; the per-call timeout bounds the whole attempt sequence.
func (g *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", timeoutOr(err, lastErr)
		}

		message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(g.cfg.Model),
			MaxTokens:   g.cfg.MaxTokens,
			Temperature: anthropic.Float(g.cfg.Temperature),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", ErrTimeout
			}
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return "", timeoutOr(ctx.Err(), lastErr)
				case <-time.After(backoff):
				}
				backoff *= 2
			}
			continue
		}

		text := strings.TrimSpace(extractText(message))
		if text == "" {
			lastErr = errors.New("empty response")
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return "", timeoutOr(ctx.Err(), lastErr)
				case <-time.After(backoff):
				}
				backoff *= 2
			}
			continue
		}

		return text, nil
	}

	return "", &ProviderError{Err: lastErr}
}

// timeoutOr maps a context error to the package taxonomy, falling back to
// the last provider error for cancellation.
func timeoutOr(ctxErr, lastErr error) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if lastErr != nil {
		return &ProviderError{Err: lastErr}
	}
	return ctxErr
}

// extractText concatenates the text blocks of a response.
func extractText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
