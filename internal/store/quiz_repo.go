package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoRow is returned when a requested quiz row does not exist.
var ErrNoRow = errors.New("row not found")

// QuizRow is the persisted form of a quiz record. Questions are stored as
// a JSON array so the schema stays stable as the question shape evolves.
type QuizRow struct {
	Code           string
	QuestionsJSON  []byte
	SourceMaterial string
	Difficulty     string
	RequestedCount int
	CreatedAt      time.Time
}

// AnswerRow is one persisted attempt answer.
type AnswerRow struct {
	Code          string
	TakerID       string
	QuestionIndex int
	SelectedText  string
}

// QuizRepo persists quiz records and attempt answers.
type QuizRepo struct {
	db *sql.DB
}

// SaveQuiz inserts a new quiz row. Codes are unique; inserting an existing
// code is an error, quizzes are never overwritten.
func (r *QuizRepo) SaveQuiz(ctx context.Context, row QuizRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quizzes (code, questions, source_material, difficulty, requested_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		row.Code, string(row.QuestionsJSON), row.SourceMaterial,
		row.Difficulty, row.RequestedCount, row.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert quiz %s: %w", row.Code, err)
	}
	return nil
}

// GetQuiz returns the quiz row for code, or ErrNoRow.
func (r *QuizRepo) GetQuiz(ctx context.Context, code string) (*QuizRow, error) {
	var row QuizRow
	var questions string
	err := r.db.QueryRowContext(ctx, `
		SELECT code, questions, source_material, difficulty, requested_count, created_at
		FROM quizzes WHERE code = ?`, code).
		Scan(&row.Code, &questions, &row.SourceMaterial, &row.Difficulty,
			&row.RequestedCount, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("select quiz %s: %w", code, err)
	}
	row.QuestionsJSON = []byte(questions)
	return &row, nil
}

// ListQuizzes returns all quiz rows, newest first.
func (r *QuizRepo) ListQuizzes(ctx context.Context) ([]QuizRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT code, questions, source_material, difficulty, requested_count, created_at
		FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []QuizRow
	for rows.Next() {
		var row QuizRow
		var questions string
		if err := rows.Scan(&row.Code, &questions, &row.SourceMaterial,
			&row.Difficulty, &row.RequestedCount, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz row: %w", err)
		}
		row.QuestionsJSON = []byte(questions)
		out = append(out, row)
	}
	return out, rows.Err()
}

// QuizExists reports whether a quiz with the given code exists.
func (r *QuizRepo) QuizExists(ctx context.Context, code string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM quizzes WHERE code = ?`, code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check quiz %s: %w", code, err)
	}
	return true, nil
}

// UpsertAnswer stores or overwrites the answer for one question of a
// taker's attempt.
func (r *QuizRepo) UpsertAnswer(ctx context.Context, row AnswerRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attempts (code, taker_id, question_index, selected_text, answered_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (code, taker_id, question_index)
		DO UPDATE SET selected_text = excluded.selected_text, answered_at = excluded.answered_at`,
		row.Code, row.TakerID, row.QuestionIndex, row.SelectedText, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert answer %s[%d]: %w", row.Code, row.QuestionIndex, err)
	}
	return nil
}

// Answers returns the taker's recorded answers for a quiz keyed by
// question index.
func (r *QuizRepo) Answers(ctx context.Context, code, takerID string) (map[int]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_index, selected_text FROM attempts
		WHERE code = ? AND taker_id = ?`, code, takerID)
	if err != nil {
		return nil, fmt.Errorf("select answers %s: %w", code, err)
	}
	defer rows.Close()

	answers := make(map[int]string)
	for rows.Next() {
		var idx int
		var text string
		if err := rows.Scan(&idx, &text); err != nil {
			return nil, fmt.Errorf("scan answer row: %w", err)
		}
		answers[idx] = text
	}
	return answers, rows.Err()
}
