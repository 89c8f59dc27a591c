package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arga1212/smartnote/internal/document"
	"github.com/arga1212/smartnote/internal/llm"
	"github.com/arga1212/smartnote/internal/material"
)

// maxAudioBytes caps uploaded lecture recordings at 100 MiB.
const maxAudioBytes = 100 << 20

// RenderRequest carries module text to paginate into a PDF.
type RenderRequest struct {
	Text string `json:"text" binding:"required"`
}

// MaterialHandler serves the lecture material endpoints.
type MaterialHandler struct {
	service *material.Service
}

// NewMaterialHandler creates a handler over the material service.
func NewMaterialHandler(service *material.Service) *MaterialHandler {
	return &MaterialHandler{service: service}
}

// audioFromForm reads the uploaded lecture recording from the "audio"
// multipart field.
func audioFromForm(c *gin.Context) (llm.Media, bool) {
	header, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing audio file (multipart field \"audio\")"})
		return llm.Media{}, false
	}
	if header.Size > maxAudioBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "audio file too large"})
		return llm.Media{}, false
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read audio file: " + err.Error()})
		return llm.Media{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read audio file: " + err.Error()})
		return llm.Media{}, false
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}
	return llm.Media{MIMEType: mimeType, Data: data}, true
}

// handleMaterialError maps generation failures to HTTP statuses.
func handleMaterialError(c *gin.Context, err error) {
	var unsupported *llm.ErrMediaUnsupported
	var rateLimited *llm.ErrRateLimit

	switch {
	case errors.As(err, &unsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "generation rate limited, try again shortly"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "material generation failed",
			"details": err.Error(),
		})
	}
}

// Summarize produces a summary of an uploaded lecture recording.
func (h *MaterialHandler) Summarize(c *gin.Context) {
	audio, ok := audioFromForm(c)
	if !ok {
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), audio)
	if err != nil {
		handleMaterialError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// BuildModule produces full module text from an uploaded lecture
// recording, along with its segmented blocks for preview.
func (h *MaterialHandler) BuildModule(c *gin.Context) {
	audio, ok := audioFromForm(c)
	if !ok {
		return
	}

	text, err := h.service.BuildModule(c.Request.Context(), audio)
	if err != nil {
		handleMaterialError(c, err)
		return
	}

	blocks := document.Segment(text)
	blockViews := make([]gin.H, 0, len(blocks))
	for _, b := range blocks {
		blockViews = append(blockViews, gin.H{"kind": b.Kind.String(), "text": b.Text})
	}
	c.JSON(http.StatusOK, gin.H{
		"text":   text,
		"blocks": blockViews,
	})
}

// RenderPDF paginates module text into a downloadable PDF.
func (h *MaterialHandler) RenderPDF(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	pdf, err := document.RenderModulePDF(req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="modul.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
