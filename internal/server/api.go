package server

import (
	"net/http"
	"time"

	"github.com/agenthands/codecleaner/internal/lang"
	"github.com/agenthands/codecleaner/internal/model"
	"github.com/agenthands/codecleaner/internal/session"
	"github.com/gin-gonic/gin"
)

type CleanResponse struct {
	FileName       string  `json:"file_name"`
	Language       string  `json:"language"`
	Cleaned        string  `json:"cleaned"`
	DownloadName   string  `json:"download_name"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// APIClean cleans an uploaded file without touching any browser session.
func (s *Server) APIClean(c *gin.Context) {
	name, raw, readErr := s.readUpload(c)
	file, err := session.Decode(name, raw, readErr)
	if err != nil {
		abortWithError(c, err)
		return
	}

	start := time.Now()
	cleaned, err := s.Assistant.CleanCode(c.Request.Context(), file.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CleanResponse{
		FileName:       file.Name,
		Language:       lang.Detect(file.Name),
		Cleaned:        cleaned,
		DownloadName:   lang.CleanedName(file.Name),
		ElapsedSeconds: time.Since(start).Seconds(),
	})
}

type ExplainRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language"`
}

func (s *Server) APIExplain(c *gin.Context) {
	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Code: "BAD_REQUEST", Message: "Invalid request", Details: err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = lang.Fallback
	}

	text, err := s.Assistant.Explain(c.Request.Context(), req.Code, req.Language)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ExplanationResult{Text: text})
}
