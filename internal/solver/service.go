// Package solver turns student questions into structured step-by-step
// solutions by prompting a generative-text provider and normalizing its
// reply.
package solver

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/providers/textgen"
)

const (
	solveTemperature    = 0.4
	simplifyTemperature = 0.6
)

// Service orchestrates solve and simplify calls. The provider is injected so
// tests substitute a deterministic stub; the service itself persists nothing
// and performs exactly one provider call per operation.
type Service struct {
	gen    textgen.Generator
	logger zerolog.Logger
}

func NewService(gen textgen.Generator, logger zerolog.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Solve asks the provider for a structured solution and normalizes the
// reply. Provider-call failures surface wrapped in domain.ErrProviderFailure;
// delivered-but-unusable replies as domain.ErrMalformedResponse. No retry:
// that policy belongs to the caller.
func (s *Service) Solve(ctx context.Context, question string, subject domain.Subject) (*domain.DoubtSolution, error) {
	raw, err := s.gen.Generate(ctx, textgen.Request{
		Prompt:       buildSolvePrompt(question, subject),
		Temperature:  solveTemperature,
		ResponseJSON: true,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("subject", string(subject)).Msg("solve provider call failed")
		return nil, err
	}
	sol, err := Normalize(raw)
	if err != nil {
		ev := s.logger.Warn().Err(err).Str("subject", string(subject))
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			ev = ev.Str("snippet", malformed.Snippet)
		}
		ev.Msg("solve reply not normalizable")
		return nil, err
	}
	return sol, nil
}

// Simplify sends a prior serialized solution back for a plainer rephrasing.
// Prose in, prose out; no normalization beyond an emptiness check.
func (s *Service) Simplify(ctx context.Context, solutionText string, subject domain.Subject) (string, error) {
	raw, err := s.gen.Generate(ctx, textgen.Request{
		Prompt:      buildSimplifyPrompt(solutionText, subject),
		Temperature: simplifyTemperature,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("subject", string(subject)).Msg("simplify provider call failed")
		return "", err
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", &MalformedError{Reason: "empty"}
	}
	return text, nil
}
