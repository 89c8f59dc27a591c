package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/arga1212/smartnote/internal/llm"
	"github.com/arga1212/smartnote/internal/quizgen"
)

// stubGenerator returns a fixed quiz without touching an LLM.
type stubGenerator struct {
	quiz *quizgen.Quiz
	err  error
}

func (g *stubGenerator) Generate(_ context.Context, _ string, _ quizgen.Difficulty, _ int) (*quizgen.Quiz, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.quiz, nil
}

func capitalQuiz() *quizgen.Quiz {
	return &quizgen.Quiz{Questions: []quizgen.Question{
		{
			Text:          "What is the capital of France?",
			Options:       map[string]string{"a": "Paris", "b": "Lyon", "c": "Nice", "d": "Lille"},
			CorrectAnswer: "a",
			CorrectText:   "Paris",
			Explanation:   "Paris is the capital of France.",
		},
		{
			Text:          "What is the capital of Japan?",
			Options:       map[string]string{"a": "Osaka", "b": "Tokyo", "c": "Kyoto", "d": "Nagoya"},
			CorrectAnswer: "b",
			CorrectText:   "Tokyo",
			Explanation:   "Tokyo is the capital of Japan.",
		},
	}}
}

func newTestService(t *testing.T) (*Service, *Record) {
	t.Helper()
	svc := NewService(&stubGenerator{quiz: capitalQuiz()}, NewMemoryStore())
	rec, err := svc.Generate(context.Background(), "European and Asian capitals", quizgen.DifficultyMedium, 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return svc, rec
}

func TestGenerate_IssuesCode(t *testing.T) {
	svc, rec := newTestService(t)

	if len(rec.Code) != 8 {
		t.Errorf("code length = %d, want 8", len(rec.Code))
	}
	if len(rec.Quiz.Questions) != 2 {
		t.Errorf("question count = %d, want 2", len(rec.Quiz.Questions))
	}

	got, err := svc.Get(context.Background(), rec.Code)
	if err != nil {
		t.Fatalf("get issued quiz: %v", err)
	}
	if got.SourceMaterial != "European and Asian capitals" {
		t.Errorf("source material not persisted: %q", got.SourceMaterial)
	}
}

func TestGenerate_DistinctCodes(t *testing.T) {
	svc := NewService(&stubGenerator{quiz: capitalQuiz()}, NewMemoryStore())

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		rec, err := svc.Generate(context.Background(), "capitals", quizgen.DifficultyEasy, 2)
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		if seen[rec.Code] {
			t.Fatalf("duplicate code issued: %s", rec.Code)
		}
		seen[rec.Code] = true
	}
}

func TestGenerate_GeneratorFailure(t *testing.T) {
	genErr := &quizgen.SchemaError{Index: -1, Reason: "response contains no JSON object"}
	svc := NewService(&stubGenerator{err: genErr}, NewMemoryStore())

	_, err := svc.Generate(context.Background(), "capitals", quizgen.DifficultyEasy, 2)
	var schemaErr *quizgen.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError to pass through, got: %v", err)
	}

	recs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("failed generation must not issue a record, got %d", len(recs))
	}
}

func TestRecordAnswer_UnknownCode(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.RecordAnswer(context.Background(), "deadbeef", "taker-1", 0, "Paris")
	if !errors.Is(err, ErrUnknownCode) {
		t.Fatalf("expected ErrUnknownCode, got: %v", err)
	}
}

func TestRecordAnswer_IndexOutOfRange(t *testing.T) {
	svc, rec := newTestService(t)

	for _, idx := range []int{-1, 2, 100} {
		err := svc.RecordAnswer(context.Background(), rec.Code, "taker-1", idx, "Paris")
		if err == nil {
			t.Errorf("index %d: expected out of range error", idx)
		}
	}
}

func TestGrade_Correctness(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", 0, "Paris"); err != nil {
		t.Fatalf("record answer: %v", err)
	}
	if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", 1, "Osaka"); err != nil {
		t.Fatalf("record answer: %v", err)
	}

	result, err := svc.Grade(ctx, rec.Code, "taker-1")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("score = %d, want 1", result.Score)
	}
	if result.Total != 2 || len(result.PerQuestion) != 2 {
		t.Fatalf("result shape wrong: total=%d per_question=%d", result.Total, len(result.PerQuestion))
	}
	if !result.PerQuestion[0].Correct || result.PerQuestion[1].Correct {
		t.Errorf("per-question correctness wrong: %+v", result.PerQuestion)
	}
	if result.PerQuestion[1].CorrectText != "Tokyo" {
		t.Errorf("correct text not reported: %q", result.PerQuestion[1].CorrectText)
	}
}

func TestGrade_UnansweredIsIncorrect(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	// Answer only the first question.
	if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", 0, "Paris"); err != nil {
		t.Fatalf("record answer: %v", err)
	}

	result, err := svc.Grade(ctx, rec.Code, "taker-1")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("score = %d, want 1", result.Score)
	}
	second := result.PerQuestion[1]
	if second.Answered || second.Correct || second.Selected != "" {
		t.Errorf("unanswered question scored wrong: %+v", second)
	}
}

func TestGrade_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", 0, "Paris"); err != nil {
		t.Fatalf("record answer: %v", err)
	}

	first, err := svc.Grade(ctx, rec.Code, "taker-1")
	if err != nil {
		t.Fatalf("first grade: %v", err)
	}
	second, err := svc.Grade(ctx, rec.Code, "taker-1")
	if err != nil {
		t.Fatalf("second grade: %v", err)
	}

	if first.Score != second.Score || len(first.PerQuestion) != len(second.PerQuestion) {
		t.Fatalf("grading not idempotent: %+v vs %+v", first, second)
	}
	for i := range first.PerQuestion {
		if first.PerQuestion[i] != second.PerQuestion[i] {
			t.Errorf("question %d result changed between grades", i)
		}
	}
}

func TestGrade_ReviseThenRegrade(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", 0, "Lyon"); err != nil {
		t.Fatalf("record answer: %v", err)
	}
	result, err := svc.Grade(ctx, rec.Code, "taker-1")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("score before revision = %d, want 0", result.Score)
	}

	// Revising after grading must be visible to the next grade call.
	if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", 0, "Paris"); err != nil {
		t.Fatalf("revise answer: %v", err)
	}
	result, err = svc.Grade(ctx, rec.Code, "taker-1")
	if err != nil {
		t.Fatalf("regrade: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("score after revision = %d, want 1", result.Score)
	}
}

func TestGrade_RequiresAnswers(t *testing.T) {
	svc, rec := newTestService(t)

	_, err := svc.Grade(context.Background(), rec.Code, "taker-1")
	if !errors.Is(err, ErrNoAnswers) {
		t.Fatalf("expected ErrNoAnswers, got: %v", err)
	}
}

func TestGrade_UnknownCode(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Grade(context.Background(), "deadbeef", "taker-1")
	if !errors.Is(err, ErrUnknownCode) {
		t.Fatalf("expected ErrUnknownCode, got: %v", err)
	}
}

func TestState_Transitions(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	assertState := func(want State) {
		t.Helper()
		got, err := svc.State(ctx, rec.Code, "taker-1")
		if err != nil {
			t.Fatalf("state: %v", err)
		}
		if got != want {
			t.Fatalf("state = %s, want %s", got, want)
		}
	}

	assertState(StateIssued)

	if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", 0, "Paris"); err != nil {
		t.Fatalf("record answer: %v", err)
	}
	assertState(StateAttempted)

	if _, err := svc.Grade(ctx, rec.Code, "taker-1"); err != nil {
		t.Fatalf("grade: %v", err)
	}
	assertState(StateGraded)

	// Revising an answer reverts the attempt to attempted.
	if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", 1, "Tokyo"); err != nil {
		t.Fatalf("revise answer: %v", err)
	}
	assertState(StateAttempted)
}

func TestEndToEnd_WithMockProvider(t *testing.T) {
	ctx := context.Background()

	payload := map[string]any{
		"quiz": []map[string]any{},
	}
	answers := []string{"Mitokondria", "Klorofil", "Stomata"}
	for i, correct := range answers {
		payload["quiz"] = append(payload["quiz"].([]map[string]any), map[string]any{
			"question": fmt.Sprintf("Pertanyaan %d?", i+1),
			"options": map[string]string{
				"a": correct, "b": "Salah satu", "c": "Salah dua", "d": "Salah tiga",
			},
			"correct_answer": "a",
			"correct_text":   correct,
			"explanation":    "Lihat materi.",
		})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := quizgen.New(mock, quizgen.DefaultConfig())
	svc := NewService(gen, NewMemoryStore())

	rec, err := svc.Generate(ctx, "Materi biologi sel", quizgen.DifficultyMedium, 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rec.Quiz.Questions) != 3 {
		t.Fatalf("question count = %d, want 3", len(rec.Quiz.Questions))
	}

	for i := range rec.Quiz.Questions {
		if err := svc.RecordAnswer(ctx, rec.Code, "taker-1", i, answers[i]); err != nil {
			t.Fatalf("record answer %d: %v", i, err)
		}
	}

	result, err := svc.Grade(ctx, rec.Code, "taker-1")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score < 0 || result.Score > 3 {
		t.Fatalf("score %d out of bounds", result.Score)
	}
	if result.Score != 3 {
		t.Errorf("score = %d, want 3", result.Score)
	}
	if len(result.PerQuestion) != 3 {
		t.Errorf("per_question length = %d, want 3", len(result.PerQuestion))
	}
}
