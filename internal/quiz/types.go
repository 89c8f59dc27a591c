// Package quiz implements the quiz lifecycle: issuing validated quizzes
// under short shareable codes, recording taker answers, and grading.
package quiz

import (
	"time"

	"github.com/arga1212/smartnote/internal/quizgen"
)

// State describes where a taker's attempt at a quiz code stands.
type State string

const (
	// StateIssued means the quiz exists and is shareable, but the taker
	// has not answered anything yet.
	StateIssued State = "issued"

	// StateAttempted means at least one answer is recorded.
	StateAttempted State = "attempted"

	// StateGraded means grading was requested for the current answer set.
	// Recording another answer reverts the effective state to attempted.
	StateGraded State = "graded"
)

// Record is an issued quiz. Created once after validation and never
// mutated; regenerating produces a new record under a new code.
type Record struct {
	// Code is the 8-character identifier takers use to locate the quiz.
	Code string

	// Quiz holds the validated questions in generation order.
	Quiz quizgen.Quiz

	// SourceMaterial is the material the quiz was generated from.
	SourceMaterial string

	// Difficulty is the requested difficulty level.
	Difficulty quizgen.Difficulty

	// RequestedCount is the question count asked of the generator. The
	// validator guarantees len(Quiz.Questions) matches it.
	RequestedCount int

	// CreatedAt is when the record was issued.
	CreatedAt time.Time
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	// Correct reports whether the selected text equals the correct text.
	Correct bool

	// Answered reports whether the taker selected anything. Unanswered
	// questions score as incorrect.
	Answered bool

	// Selected is the option text the taker chose. Empty when unanswered.
	Selected string

	// CorrectText is the text of the correct option.
	CorrectText string
}

// Result is the graded outcome of one attempt. Never stored; recomputed
// from the record and the current answers every time grading is
// requested, so revising an answer and re-grading reflects the revision.
type Result struct {
	// Score is the number of correctly answered questions.
	Score int

	// Total is the number of questions in the quiz.
	Total int

	// PerQuestion holds one entry per question, in question order.
	PerQuestion []QuestionResult
}
