package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a teacher writing multiple-choice quizzes from lesson material.

Rules:
- Write questions that can be answered from the given material alone.
- Every question has exactly 4 options keyed "a", "b", "c", "d" (lower-case).
- "correct_answer" is the lower-case key of the correct option.
- "correct_text" must be exactly equal to the text of the correct option.
- All four option texts within a question must be distinct.
- Include a brief "explanation" for every question.
- Write questions in the same language as the material.
- Return only the JSON object, no commentary before or after.`

// buildUserMessage constructs the user message embedding the source
// material, difficulty, and requested question count.
func buildUserMessage(material string, difficulty Difficulty, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %d multiple-choice quiz questions from the material below.\n", count)
	fmt.Fprintf(&b, "Difficulty: %s\n\n", difficulty)

	b.WriteString("Material:\n---\n")
	b.WriteString(material)
	b.WriteString("\n---\n\n")

	b.WriteString("Output format (MUST be JSON):\n")
	b.WriteString(`{
  "quiz": [
    {
      "question": "the question",
      "options": {
        "a": "option a text",
        "b": "option b text",
        "c": "option c text",
        "d": "option d text"
      },
      "correct_answer": "a",
      "correct_text": "option a text",
      "explanation": "why a is correct"
    }
  ]
}`)

	return b.String()
}
