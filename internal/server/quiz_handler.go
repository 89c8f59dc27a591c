package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arga1212/smartnote/internal/llm"
	"github.com/arga1212/smartnote/internal/quiz"
	"github.com/arga1212/smartnote/internal/quizgen"
)

// CreateQuizRequest is the creator's generation request.
type CreateQuizRequest struct {
	Material     string `json:"material" binding:"required"`
	Difficulty   string `json:"difficulty" binding:"required,difficulty"`
	NumQuestions int    `json:"num_questions" binding:"required,min=1,max=10"`
}

// AnswerRequest records one answer of a taker's attempt.
type AnswerRequest struct {
	TakerID  string `json:"taker_id" binding:"required"`
	Selected string `json:"selected" binding:"required"`
}

// GradeRequest asks for the taker's current result.
type GradeRequest struct {
	TakerID string `json:"taker_id" binding:"required"`
}

// creatorQuestion is the full question view, including the answer key.
// Only the creator response carries it.
type creatorQuestion struct {
	Index         int               `json:"index"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	CorrectText   string            `json:"correct_text"`
	Explanation   string            `json:"explanation"`
}

// takerQuestion is the question view served to takers. No answer key.
type takerQuestion struct {
	Index    int               `json:"index"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

type quizSummary struct {
	Code         string    `json:"code"`
	Difficulty   string    `json:"difficulty"`
	NumQuestions int       `json:"num_questions"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuizHandler serves the quiz lifecycle endpoints.
type QuizHandler struct {
	service *quiz.Service
}

// NewQuizHandler creates a handler over the lifecycle service.
func NewQuizHandler(service *quiz.Service) *QuizHandler {
	return &QuizHandler{service: service}
}

// handleQuizError maps lifecycle and generation errors to HTTP statuses.
// Unknown codes are a taker mistake, not a server fault. Invalid
// generated content is an upstream problem the creator can retry.
func handleQuizError(c *gin.Context, err error) {
	var schemaErr *quizgen.SchemaError
	var rateLimited *llm.ErrRateLimit

	switch {
	case errors.Is(err, quiz.ErrUnknownCode):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid code"})
	case errors.Is(err, quiz.ErrNoAnswers):
		c.JSON(http.StatusConflict, gin.H{"error": "no answers recorded yet"})
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "the generated quiz was invalid, please try generating again",
			"details": schemaErr.Error(),
		})
	case errors.As(err, &rateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "generation rate limited, try again shortly"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "quiz generation failed",
			"details": err.Error(),
		})
	}
}

func creatorQuestions(qs []quizgen.Question) []creatorQuestion {
	out := make([]creatorQuestion, 0, len(qs))
	for i, q := range qs {
		out = append(out, creatorQuestion{
			Index:         i,
			Question:      q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			CorrectText:   q.CorrectText,
			Explanation:   q.Explanation,
		})
	}
	return out
}

// CreateQuiz generates and issues a new quiz from creator material.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	difficulty, err := quizgen.ParseDifficulty(req.Difficulty)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.service.Generate(c.Request.Context(), req.Material, difficulty, req.NumQuestions)
	if err != nil {
		handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":       rec.Code,
		"difficulty": string(rec.Difficulty),
		"created_at": rec.CreatedAt,
		"questions":  creatorQuestions(rec.Quiz.Questions),
	})
}

// ListQuizzes returns all issued quizzes, newest first.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	recs, err := h.service.List(c.Request.Context())
	if err != nil {
		handleQuizError(c, err)
		return
	}

	out := make([]quizSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, quizSummary{
			Code:         rec.Code,
			Difficulty:   string(rec.Difficulty),
			NumQuestions: len(rec.Quiz.Questions),
			CreatedAt:    rec.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": out})
}

// GetQuiz returns the creator view of one quiz, answer key included.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":       rec.Code,
		"difficulty": string(rec.Difficulty),
		"created_at": rec.CreatedAt,
		"questions":  creatorQuestions(rec.Quiz.Questions),
	})
}

// GetQuestions returns the taker view of a quiz: questions and options
// only, no answer key.
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleQuizError(c, err)
		return
	}

	questions := make([]takerQuestion, 0, len(rec.Quiz.Questions))
	for i, q := range rec.Quiz.Questions {
		questions = append(questions, takerQuestion{
			Index:    i,
			Question: q.Text,
			Options:  q.Options,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"code":      rec.Code,
		"questions": questions,
	})
}

// RecordAnswer stores or overwrites the taker's answer for one question.
func (h *QuizHandler) RecordAnswer(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question index must be a number"})
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	code := c.Param("code")
	if err := h.service.RecordAnswer(c.Request.Context(), code, req.TakerID, index, req.Selected); err != nil {
		if errors.Is(err, quiz.ErrUnknownCode) {
			handleQuizError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.service.State(c.Request.Context(), code, req.TakerID)
	if err != nil {
		handleQuizError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": string(state)})
}

// Grade computes the taker's result from their current answers. Safe to
// call repeatedly; answers revised in between are reflected.
func (h *QuizHandler) Grade(c *gin.Context) {
	var req GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.service.Grade(c.Request.Context(), c.Param("code"), req.TakerID)
	if err != nil {
		handleQuizError(c, err)
		return
	}

	perQuestion := make([]gin.H, 0, len(result.PerQuestion))
	for _, qr := range result.PerQuestion {
		entry := gin.H{
			"correct":      qr.Correct,
			"answered":     qr.Answered,
			"correct_text": qr.CorrectText,
		}
		if qr.Answered {
			entry["selected"] = qr.Selected
		}
		perQuestion = append(perQuestion, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"score":        result.Score,
		"total":        result.Total,
		"per_question": perQuestion,
	})
}
