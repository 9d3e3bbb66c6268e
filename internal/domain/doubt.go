package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Subject enumerates the subjects a doubt can be filed under.
type Subject string

const (
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectMaths     Subject = "Maths"
	SubjectBiology   Subject = "Biology"
)

var subjectTitle = cases.Title(language.English)

// ParseSubject canonicalizes a user-supplied subject name ("maths", "MATHS")
// into the enumerated form.
func ParseSubject(raw string) (Subject, error) {
	switch Subject(subjectTitle.String(strings.TrimSpace(raw))) {
	case SubjectPhysics:
		return SubjectPhysics, nil
	case SubjectChemistry:
		return SubjectChemistry, nil
	case SubjectMaths:
		return SubjectMaths, nil
	case SubjectBiology:
		return SubjectBiology, nil
	}
	return "", fmt.Errorf("%w: unknown subject %q", ErrValidation, raw)
}

// SolutionStep is one step of a worked derivation. Field names are the wire
// format exchanged with the model and persisted in the solution column.
type SolutionStep struct {
	Step    int    `json:"step"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Formula string `json:"formula,omitempty"`
}

// DoubtSolution is the structured solution recovered from the model reply.
type DoubtSolution struct {
	Subject            string         `json:"subject"`
	Steps              []SolutionStep `json:"steps"`
	FinalAnswer        string         `json:"finalAnswer"`
	AlternativeMethods []string       `json:"alternativeMethods,omitempty"`
	RelatedConcepts    []string       `json:"relatedConcepts,omitempty"`
	Difficulty         string         `json:"difficulty,omitempty"`
}

// Doubt is a submitted question together with its optional solution snapshot.
// Solution is nil until a solve succeeds and immutable afterwards; only
// IsBookmarked may change post-creation.
type Doubt struct {
	ID           string
	UserID       string
	Question     string
	Subject      Subject
	Solution     *string // serialized DoubtSolution JSON
	IsBookmarked bool
	CreatedAt    time.Time
}
