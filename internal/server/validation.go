package server

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/arga1212/smartnote/internal/quizgen"
)

// difficultyRule accepts the difficulty levels quiz generation supports.
func difficultyRule(fl validator.FieldLevel) bool {
	_, err := quizgen.ParseDifficulty(fl.Field().String())
	return err == nil
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("difficulty", difficultyRule)
	}
}
