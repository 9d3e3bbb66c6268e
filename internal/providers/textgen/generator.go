// Package textgen holds the generative-text provider clients. The rest of
// the system treats a Generator as an untrusted text source: replies are
// never assumed to be valid JSON.
package textgen

import "context"

// Request is a single generation call.
type Request struct {
	Prompt      string
	Temperature float64
	// ResponseJSON asks the provider for a JSON-mode reply. Callers must
	// still normalize the output; providers do not honor this reliably.
	ResponseJSON bool
}

// Generator produces text for a prompt. Implementations wrap transport,
// auth, rate-limit and timeout failures with domain.ErrProviderFailure.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
