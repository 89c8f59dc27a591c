// Package server exposes the quiz lifecycle and material pipeline over a
// JSON HTTP API. Creators generate quizzes and share the code; takers
// fetch questions, answer, and request grading with the same code.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires all API routes onto a gin engine.
func SetupRouter(quizHandler *QuizHandler, materialHandler *MaterialHandler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowHeaders = append(config.AllowHeaders, "Content-Type")
	r.Use(cors.New(config))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP"})
		})

		apiV1.POST("/quizzes", quizHandler.CreateQuiz)
		apiV1.GET("/quizzes", quizHandler.ListQuizzes)
		apiV1.GET("/quizzes/:code", quizHandler.GetQuiz)
		apiV1.GET("/quizzes/:code/questions", quizHandler.GetQuestions)
		apiV1.PUT("/quizzes/:code/answers/:index", quizHandler.RecordAnswer)
		apiV1.POST("/quizzes/:code/grade", quizHandler.Grade)

		apiV1.POST("/materials/summary", materialHandler.Summarize)
		apiV1.POST("/materials/module", materialHandler.BuildModule)
		apiV1.POST("/documents/pdf", materialHandler.RenderPDF)
	}

	return r
}
