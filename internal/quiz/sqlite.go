package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arga1212/smartnote/internal/quizgen"
	"github.com/arga1212/smartnote/internal/store"
)

// SQLStore is a durable Store backed by the SQLite quiz repository.
// Questions are stored as a JSON array in the same shape the generator
// emits, so rows stay readable with plain SQL tooling.
type SQLStore struct {
	repo *store.QuizRepo
}

// NewSQLStore creates a Store over the given repository.
func NewSQLStore(repo *store.QuizRepo) *SQLStore {
	return &SQLStore{repo: repo}
}

// storedQuestion is the persisted question shape.
type storedQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	CorrectText   string            `json:"correct_text"`
	Explanation   string            `json:"explanation"`
}

func marshalQuestions(qs []quizgen.Question) ([]byte, error) {
	stored := make([]storedQuestion, 0, len(qs))
	for _, q := range qs {
		stored = append(stored, storedQuestion{
			Question:      q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			CorrectText:   q.CorrectText,
			Explanation:   q.Explanation,
		})
	}
	return json.Marshal(stored)
}

func unmarshalQuestions(data []byte) ([]quizgen.Question, error) {
	var stored []storedQuestion
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode stored questions: %w", err)
	}
	qs := make([]quizgen.Question, 0, len(stored))
	for _, s := range stored {
		qs = append(qs, quizgen.Question{
			Text:          s.Question,
			Options:       s.Options,
			CorrectAnswer: s.CorrectAnswer,
			CorrectText:   s.CorrectText,
			Explanation:   s.Explanation,
		})
	}
	return qs, nil
}

func recordFromRow(row *store.QuizRow) (*Record, error) {
	questions, err := unmarshalQuestions(row.QuestionsJSON)
	if err != nil {
		return nil, fmt.Errorf("quiz %s: %w", row.Code, err)
	}
	return &Record{
		Code:           row.Code,
		Quiz:           quizgen.Quiz{Questions: questions},
		SourceMaterial: row.SourceMaterial,
		Difficulty:     quizgen.Difficulty(row.Difficulty),
		RequestedCount: row.RequestedCount,
		CreatedAt:      row.CreatedAt,
	}, nil
}

// SaveRecord persists a freshly issued record.
func (s *SQLStore) SaveRecord(ctx context.Context, rec Record) error {
	questions, err := marshalQuestions(rec.Quiz.Questions)
	if err != nil {
		return fmt.Errorf("encode questions for %s: %w", rec.Code, err)
	}
	return s.repo.SaveQuiz(ctx, store.QuizRow{
		Code:           rec.Code,
		QuestionsJSON:  questions,
		SourceMaterial: rec.SourceMaterial,
		Difficulty:     string(rec.Difficulty),
		RequestedCount: rec.RequestedCount,
		CreatedAt:      rec.CreatedAt,
	})
}

// Get returns the record for code, or ErrUnknownCode.
func (s *SQLStore) Get(ctx context.Context, code string) (*Record, error) {
	row, err := s.repo.GetQuiz(ctx, code)
	if errors.Is(err, store.ErrNoRow) {
		return nil, ErrUnknownCode
	}
	if err != nil {
		return nil, err
	}
	return recordFromRow(row)
}

// List returns all issued records, newest first.
func (s *SQLStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.repo.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for i := range rows {
		rec, err := recordFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// Exists reports whether a record with the given code exists.
func (s *SQLStore) Exists(ctx context.Context, code string) (bool, error) {
	return s.repo.QuizExists(ctx, code)
}

// SetAnswer stores or overwrites the taker's answer for one question.
func (s *SQLStore) SetAnswer(ctx context.Context, code, takerID string, index int, selected string) error {
	exists, err := s.repo.QuizExists(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownCode
	}
	return s.repo.UpsertAnswer(ctx, store.AnswerRow{
		Code:          code,
		TakerID:       takerID,
		QuestionIndex: index,
		SelectedText:  selected,
	})
}

// Answers returns the taker's current answers keyed by question index.
func (s *SQLStore) Answers(ctx context.Context, code, takerID string) (map[int]string, error) {
	exists, err := s.repo.QuizExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownCode
	}
	return s.repo.Answers(ctx, code, takerID)
}
