package quizgen

import (
	"encoding/json"
	"fmt"
)

// SchemaError reports a generated response that violates the quiz
// contract. Always recoverable by regenerating; never silently repaired.
type SchemaError struct {
	// Index is the zero-based question index the violation was found in,
	// or -1 for document-level problems.
	Index  int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid quiz content: question %d: %s", e.Index+1, e.Reason)
	}
	return fmt.Sprintf("invalid quiz content: %s", e.Reason)
}

func schemaErr(index int, format string, args ...any) *SchemaError {
	return &SchemaError{Index: index, Reason: fmt.Sprintf(format, args...)}
}

// questionPayload mirrors the JSON shape the generator is asked to emit.
type questionPayload struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	CorrectText   string            `json:"correct_text"`
	Explanation   string            `json:"explanation"`
}

type quizPayload struct {
	Quiz *[]questionPayload `json:"quiz"`
}

// ParseQuiz locates a JSON object in raw generated text and validates it
// into an immutable Quiz. The generator is untrusted: every field is
// cross-checked before acceptance, nothing is assumed from the prompt.
//
// When wantCount > 0, the number of questions must match it exactly.
// ParseQuiz is pure; on error no partial Quiz is returned.
func ParseQuiz(raw string, wantCount int) (*Quiz, error) {
	span, ok := ExtractJSON(raw)
	if !ok {
		return nil, schemaErr(-1, "no JSON object found in response")
	}

	var payload quizPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, schemaErr(-1, "malformed JSON: %v", err)
	}
	if payload.Quiz == nil {
		return nil, schemaErr(-1, `missing "quiz" array`)
	}

	questions := *payload.Quiz
	if wantCount > 0 && len(questions) != wantCount {
		return nil, schemaErr(-1, "expected %d questions, got %d", wantCount, len(questions))
	}
	if len(questions) == 0 {
		return nil, schemaErr(-1, `"quiz" array is empty`)
	}

	quiz := &Quiz{Questions: make([]Question, 0, len(questions))}
	for i, q := range questions {
		validated, err := validateQuestion(i, q)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, *validated)
	}
	return quiz, nil
}

func validateQuestion(index int, q questionPayload) (*Question, error) {
	if q.Question == "" {
		return nil, schemaErr(index, `missing "question"`)
	}
	if q.Options == nil {
		return nil, schemaErr(index, `missing "options"`)
	}
	if q.CorrectAnswer == "" {
		return nil, schemaErr(index, `missing "correct_answer"`)
	}
	if q.CorrectText == "" {
		return nil, schemaErr(index, `missing "correct_text"`)
	}

	if len(q.Options) != len(OptionKeys) {
		return nil, schemaErr(index, "expected %d options, got %d", len(OptionKeys), len(q.Options))
	}
	for _, key := range OptionKeys {
		if _, ok := q.Options[key]; !ok {
			return nil, schemaErr(index, "missing option %q", key)
		}
	}

	correctText, ok := q.Options[q.CorrectAnswer]
	if !ok {
		return nil, schemaErr(index, "correct_answer %q is not an option key", q.CorrectAnswer)
	}
	if q.CorrectText != correctText {
		return nil, schemaErr(index, "correct_text does not match options[%q]", q.CorrectAnswer)
	}

	// Grading compares selected text against the correct text, so
	// duplicate option texts would make results ambiguous.
	seen := make(map[string]string, len(q.Options))
	for _, key := range OptionKeys {
		text := q.Options[key]
		if prev, dup := seen[text]; dup {
			return nil, schemaErr(index, "options %q and %q have identical text", prev, key)
		}
		seen[text] = key
	}

	explanation := q.Explanation
	if explanation == "" {
		explanation = PlaceholderExplanation
	}

	options := make(map[string]string, len(q.Options))
	for k, v := range q.Options {
		options[k] = v
	}

	return &Question{
		Text:          q.Question,
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		CorrectText:   q.CorrectText,
		Explanation:   explanation,
	}, nil
}
