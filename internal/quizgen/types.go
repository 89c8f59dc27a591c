package quizgen

import "fmt"

// OptionKeys are the four answer keys every question must carry, in
// display order. Option maps are unordered; iterate these instead.
var OptionKeys = []string{"a", "b", "c", "d"}

// Question is a single validated multiple-choice question.
type Question struct {
	// Text is the question prompt shown to the taker.
	Text string

	// Options maps the single-letter keys a-d to option text.
	// Always exactly four entries.
	Options map[string]string

	// CorrectAnswer is the lower-case key of the correct option.
	CorrectAnswer string

	// CorrectText is the text of the correct option. Guaranteed equal to
	// Options[CorrectAnswer] byte-for-byte; grading compares against this.
	CorrectText string

	// Explanation is a short rationale. Never empty; a placeholder is
	// substituted when the generator omits it.
	Explanation string
}

// Quiz is an ordered, validated set of questions. Treat as immutable:
// the order is the generation order and is preserved through grading.
type Quiz struct {
	Questions []Question
}

// Difficulty is the requested difficulty level for quiz generation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty validates a difficulty string.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", s)
}

// PlaceholderExplanation is substituted when a generated question has no
// explanation field.
const PlaceholderExplanation = "No explanation provided."
