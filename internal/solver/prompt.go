package solver

import (
	"fmt"
	"strings"

	"server/internal/domain"
)

// solveSchemaBlock textually pins the output schema so the model is steered
// toward emitting it. The normalizer remains the only enforcement.
const solveSchemaBlock = `{
  "subject": "%s",
  "steps": [
    {
      "step": 1,
      "title": "Given Information/Understanding the Problem",
      "content": "Clear explanation of what is given and what we need to find",
      "formula": "Relevant formula if applicable"
    },
    {
      "step": 2,
      "title": "Apply Concept/Formula",
      "content": "Detailed explanation of the approach and calculations",
      "formula": "Formula used in this step"
    }
  ],
  "finalAnswer": "Clear final answer with units",
  "alternativeMethods": ["Alternative approach 1", "Alternative approach 2"],
  "relatedConcepts": ["Related concept 1", "Related concept 2"],
  "difficulty": "Easy/Medium/Hard"
}`

func buildSolvePrompt(question string, subject domain.Subject) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are an expert IITian mentor specializing in JEE/NEET preparation. Your task is to solve %s questions with crystal-clear, step-by-step explanations that help students understand concepts deeply.\n\n", subject)
	sb.WriteString("For each solution, provide:\n")
	sb.WriteString("1. Clear step-by-step breakdown\n")
	sb.WriteString("2. Relevant formulas with explanations\n")
	sb.WriteString("3. Final answer highlighted\n")
	sb.WriteString("4. Alternative solution methods if applicable\n")
	sb.WriteString("5. Related concepts for deeper understanding\n\n")
	sb.WriteString("Keep explanations exam-oriented, structured, and easy to follow. Use mathematical notation where appropriate.\n\n")
	sb.WriteString("Respond with JSON in this exact format:\n")
	fmt.Fprintf(sb, solveSchemaBlock, subject)
	fmt.Fprintf(sb, "\n\nSolve this %s question step by step: %s", subject, question)
	return sb.String()
}

func buildSimplifyPrompt(solutionText string, subject domain.Subject) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are a patient tutor who excels at explaining complex %s concepts in the simplest possible terms. Take the given solution and make it even easier to understand for a struggling student.\n\n", subject)
	sb.WriteString("Use:\n")
	sb.WriteString("- Simple language and shorter sentences\n")
	sb.WriteString("- Real-world analogies where helpful\n")
	sb.WriteString("- Break down complex formulas into simpler parts\n")
	sb.WriteString("- Emphasize the \"why\" behind each step\n\n")
	sb.WriteString("Keep the mathematical accuracy but make it more accessible.\n\n")
	fmt.Fprintf(sb, "Please simplify this solution for easier understanding: %s", solutionText)
	return sb.String()
}
