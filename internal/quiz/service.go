package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arga1212/smartnote/internal/quizgen"
)

// Generator produces a validated quiz from source material.
// *quizgen.Generator satisfies this.
type Generator interface {
	Generate(ctx context.Context, material string, difficulty quizgen.Difficulty, count int) (*quizgen.Quiz, error)
}

// Service drives the quiz lifecycle: generate and issue under a code,
// record answers, grade. Grading is a pure projection of the currently
// stored answers, so it is idempotent and reflects later revisions.
type Service struct {
	gen   Generator
	store Store

	// graded marks attempts whose current answer set has been graded.
	// Cleared when the taker revises an answer. Transient, like Result.
	mu     sync.Mutex
	graded map[string]bool
}

// NewService creates a lifecycle service over the given generator and store.
func NewService(gen Generator, store Store) *Service {
	return &Service{
		gen:    gen,
		store:  store,
		graded: make(map[string]bool),
	}
}

// Generate runs the full pipeline: generation, validation, code
// assignment, persistence. On success the quiz is immediately shareable
// under the returned record's code.
func (s *Service) Generate(ctx context.Context, material string, difficulty quizgen.Difficulty, count int) (*Record, error) {
	q, err := s.gen.Generate(ctx, material, difficulty, count)
	if err != nil {
		return nil, err
	}

	code, err := newCode(ctx, s.store)
	if err != nil {
		return nil, err
	}

	rec := Record{
		Code:           code,
		Quiz:           *q,
		SourceMaterial: material,
		Difficulty:     difficulty,
		RequestedCount: count,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("save quiz %s: %w", code, err)
	}
	return &rec, nil
}

// Get returns the issued record for code, or ErrUnknownCode.
func (s *Service) Get(ctx context.Context, code string) (*Record, error) {
	return s.store.Get(ctx, code)
}

// List returns all issued records, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.List(ctx)
}

// RecordAnswer stores or overwrites the taker's answer for one question.
// The selected text is compared against the correct option text at
// grading time. Answering after grading reverts the attempt to the
// attempted state; the next Grade call sees the revision.
func (s *Service) RecordAnswer(ctx context.Context, code, takerID string, index int, selected string) error {
	rec, err := s.store.Get(ctx, code)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rec.Quiz.Questions) {
		return fmt.Errorf("question index %d out of range (quiz has %d questions)", index, len(rec.Quiz.Questions))
	}

	if err := s.store.SetAnswer(ctx, code, takerID, index, selected); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.graded, attemptKey(code, takerID))
	s.mu.Unlock()
	return nil
}

// Grade computes the result for the taker's current answers. Requires at
// least one recorded answer. Unanswered questions score as incorrect;
// correctness is exact string equality with the question's correct text.
func (s *Service) Grade(ctx context.Context, code, takerID string) (*Result, error) {
	rec, err := s.store.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	answers, err := s.store.Answers(ctx, code, takerID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	result := &Result{
		Total:       len(rec.Quiz.Questions),
		PerQuestion: make([]QuestionResult, 0, len(rec.Quiz.Questions)),
	}
	for i, q := range rec.Quiz.Questions {
		selected, answered := answers[i]
		correct := answered && selected == q.CorrectText
		if correct {
			result.Score++
		}
		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			Correct:     correct,
			Answered:    answered,
			Selected:    selected,
			CorrectText: q.CorrectText,
		})
	}

	s.mu.Lock()
	s.graded[attemptKey(code, takerID)] = true
	s.mu.Unlock()
	return result, nil
}

// State reports where the taker's attempt at code stands.
func (s *Service) State(ctx context.Context, code, takerID string) (State, error) {
	if _, err := s.store.Get(ctx, code); err != nil {
		return "", err
	}

	answers, err := s.store.Answers(ctx, code, takerID)
	if err != nil {
		return "", err
	}
	if len(answers) == 0 {
		return StateIssued, nil
	}

	s.mu.Lock()
	graded := s.graded[attemptKey(code, takerID)]
	s.mu.Unlock()
	if graded {
		return StateGraded, nil
	}
	return StateAttempted, nil
}
