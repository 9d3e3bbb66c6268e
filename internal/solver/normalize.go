package solver

import (
	"encoding/json"
	"fmt"
	"strings"

	"server/internal/domain"
)

// snippetLimit bounds the diagnostic prefix kept from an unparseable reply.
const snippetLimit = 1000

// MalformedError reports that a delivered provider reply could not be
// normalized into a DoubtSolution. Reason distinguishes a JSON-syntax
// failure ("syntax") from a reply that parsed but misses the required shape
// ("shape"), or an empty prose reply ("empty"). Snippet is a bounded prefix
// of the original text for diagnostics.
type MalformedError struct {
	Reason  string
	Snippet string
	err     error
}

func (e *MalformedError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("malformed provider response (%s): %v", e.Reason, e.err)
	}
	return fmt.Sprintf("malformed provider response (%s)", e.Reason)
}

func (e *MalformedError) Is(target error) bool {
	return target == domain.ErrMalformedResponse
}

func (e *MalformedError) Unwrap() error {
	return e.err
}

// Normalize recovers a structured DoubtSolution from raw model output. The
// reply is expected to contain one JSON object but may arrive wrapped in
// prose or a fenced code block, with small syntactic defects. Stages run in
// order and stop at the first success:
//
//  1. extract the first fenced region, if any;
//  2. strip control characters;
//  3. strict parse;
//  4. Repair then re-parse;
//  5. parse the first-{ to last-} substring of the repaired text.
//
// Normalize is deterministic and side-effect-free.
func Normalize(raw string) (*domain.DoubtSolution, error) {
	candidate := stripControl(extractFenced(raw))

	text := candidate
	doc, perr := parseObject(text)
	if perr != nil {
		text = Repair(candidate)
		doc, perr = parseObject(text)
	}
	if perr != nil {
		if sub, ok := braceSubstring(text); ok {
			text = sub
			doc, perr = parseObject(text)
		}
	}
	if perr != nil {
		return nil, &MalformedError{Reason: "syntax", Snippet: snippet(raw), err: perr}
	}

	if err := validateShape(doc); err != nil {
		return nil, &MalformedError{Reason: "shape", Snippet: snippet(raw), err: err}
	}

	var sol domain.DoubtSolution
	if err := json.Unmarshal([]byte(text), &sol); err != nil {
		return nil, &MalformedError{Reason: "shape", Snippet: snippet(raw), err: err}
	}
	return &sol, nil
}

func parseObject(text string) (any, error) {
	var doc any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// extractFenced returns the content between the first matching pair of
// code fences, regardless of language tag, or the input unchanged.
func extractFenced(text string) string {
	start := strings.Index(text, "```")
	if start < 0 {
		return text
	}
	rest := text[start+3:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return text
	}
	inner := rest[:end]
	// Drop a language tag sharing the opening fence line ("```json").
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		tag := strings.TrimSpace(inner[:nl])
		if tag != "" && !strings.ContainsAny(tag, "{[") {
			inner = inner[nl+1:]
		}
	}
	return inner
}

// stripControl removes the traditionally invisible code points
// (U+0000–U+001F and U+007F–U+009F) entirely.
func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, text)
}

func braceSubstring(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func snippet(raw string) string {
	runes := []rune(raw)
	if len(runes) <= snippetLimit {
		return raw
	}
	return string(runes[:snippetLimit])
}
