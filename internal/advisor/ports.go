// Package advisor defines the outbound port for the text-generation provider
// that writes the spending commentary.
package advisor

import "context"

// Generator produces a free-text completion for a prompt. Implementations
// return the provider's text verbatim; callers impose no structure on it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
