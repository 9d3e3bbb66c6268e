package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/providers/textgen"
)

type fakeGenerator struct {
	reply string
	err   error
	calls []textgen.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req textgen.Request) (string, error) {
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

func TestSolveReturnsNormalizedSolution(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n" + `{"subject":"Maths","steps":[{"step":1,"title":"Differentiate","content":"Power rule."}],"finalAnswer":"2x","difficulty":"Easy"}` + "\n```"}
	svc := NewService(gen, zerolog.Nop())

	sol, err := svc.Solve(context.Background(), "Find the derivative of x²", domain.SubjectMaths)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if sol.Subject != "Maths" || len(sol.Steps) == 0 || sol.FinalAnswer == "" {
		t.Fatalf("Solve = %+v", sol)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("provider calls = %d, want exactly 1", len(gen.calls))
	}
	req := gen.calls[0]
	if !req.ResponseJSON {
		t.Fatal("solve should request JSON output")
	}
	if !strings.Contains(req.Prompt, "Find the derivative of x²") || !strings.Contains(req.Prompt, "Maths") {
		t.Fatalf("prompt missing question or subject: %q", req.Prompt)
	}
}

func TestSolveProviderFailurePassesThrough(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: gemini status 503", domain.ErrProviderFailure)}
	svc := NewService(gen, zerolog.Nop())

	_, err := svc.Solve(context.Background(), "q", domain.SubjectPhysics)
	if !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("error = %v, want ErrProviderFailure", err)
	}
	if errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatal("provider failure must stay distinguishable from malformed response")
	}
}

func TestSolveMalformedReplyIsTagged(t *testing.T) {
	gen := &fakeGenerator{reply: "I am sorry, I cannot express that as JSON."}
	svc := NewService(gen, zerolog.Nop())

	_, err := svc.Solve(context.Background(), "q", domain.SubjectBiology)
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
	if errors.Is(err, domain.ErrProviderFailure) {
		t.Fatal("malformed response must stay distinguishable from provider failure")
	}
	if len(gen.calls) != 1 {
		t.Fatalf("provider calls = %d, want exactly 1 (no retry)", len(gen.calls))
	}
}

func TestSimplifyProsePassthrough(t *testing.T) {
	gen := &fakeGenerator{reply: "  Think of velocity as how fast the position changes.  "}
	svc := NewService(gen, zerolog.Nop())

	text, err := svc.Simplify(context.Background(), `{"finalAnswer":"2x"}`, domain.SubjectMaths)
	if err != nil {
		t.Fatalf("Simplify error: %v", err)
	}
	if text != "Think of velocity as how fast the position changes." {
		t.Fatalf("Simplify = %q", text)
	}
	if gen.calls[0].ResponseJSON {
		t.Fatal("simplify must not request JSON output")
	}
}

func TestSimplifyEmptyReplyIsMalformed(t *testing.T) {
	gen := &fakeGenerator{reply: "   \n"}
	svc := NewService(gen, zerolog.Nop())

	if _, err := svc.Simplify(context.Background(), "{}", domain.SubjectMaths); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}
