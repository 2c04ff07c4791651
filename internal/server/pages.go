package server

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/agenthands/codecleaner/internal/lang"
	"github.com/agenthands/codecleaner/internal/render"
	"github.com/agenthands/codecleaner/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type pageData struct {
	Accept     string
	Extensions []string
	State      string

	FileName string
	Language string

	OriginalHTML template.HTML
	CleanedHTML  template.HTML
	Elapsed      float64
	DownloadName string

	ShowExplanation  bool
	ExplanationHTML  template.HTML
	ExplanationError string

	Error string
}

func (s *Server) Index(c *gin.Context) {
	snap := s.session(c).Snapshot()
	c.HTML(http.StatusOK, "index.html", s.buildPage(snap))
}

func (s *Server) buildPage(snap session.Snapshot) pageData {
	accept := make([]string, len(lang.Extensions))
	for i, ext := range lang.Extensions {
		accept[i] = "." + ext
	}

	data := pageData{
		Accept:     strings.Join(accept, ","),
		Extensions: lang.Extensions,
		State:      snap.State.String(),
		Language:   snap.Language,
	}
	if snap.Err != nil {
		data.Error = snap.Err.Error()
	}
	if snap.File == nil {
		return data
	}
	data.FileName = snap.File.Name

	if snap.Cleaning == nil {
		return data
	}
	data.OriginalHTML = s.highlight(snap.File.Text, snap.Language)
	data.CleanedHTML = s.highlight(snap.Cleaning.CleanedText, snap.Language)
	data.Elapsed = snap.Cleaning.ElapsedSeconds
	data.DownloadName = snap.DownloadName

	if snap.Explanation != nil {
		data.ShowExplanation = true
		if snap.Explanation.IsError {
			data.ExplanationError = snap.Explanation.Error
		} else {
			data.ExplanationHTML = s.markdown(snap.Explanation.Text)
		}
	}
	return data
}

func (s *Server) Upload(c *gin.Context) {
	sess := s.session(c)

	name, raw, readErr := s.readUpload(c)
	if err := sess.Load(name, raw, readErr); err != nil {
		s.Logger.Info("Upload rejected", zap.String("session", sess.ID), zap.String("file", name), zap.Error(err))
	} else {
		s.Logger.Info("File loaded", zap.String("session", sess.ID), zap.String("file", name), zap.Int("bytes", len(raw)))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) Clean(c *gin.Context) {
	sess := s.session(c)

	res, err := sess.Clean(c.Request.Context(), s.Assistant)
	switch {
	case errors.Is(err, session.ErrNotReady):
	case err != nil:
		s.Logger.Warn("Cleaning failed", zap.String("session", sess.ID), zap.Error(err))
	default:
		s.Logger.Info("Code cleaned", zap.String("session", sess.ID), zap.Float64("elapsed_seconds", res.ElapsedSeconds))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Explain toggles the explanation. The "show" form field carries the
// checkbox state.
func (s *Server) Explain(c *gin.Context) {
	sess := s.session(c)

	if c.PostForm("show") == "" {
		sess.HideExplanation()
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if _, err := sess.Explain(c.Request.Context(), s.Assistant); err != nil && !errors.Is(err, session.ErrNotReady) {
		s.Logger.Warn("Explanation failed", zap.String("session", sess.ID), zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) Download(c *gin.Context) {
	name, body, err := s.session(c).Download()
	if err != nil {
		c.String(http.StatusNotFound, "no cleaned code to download")
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}

// multipartOverhead is the slack allowed on top of the file limit for the
// multipart boundaries and part headers.
const multipartOverhead = 64 << 10

// readUpload reads the "file" form field up to the configured size limit.
// The request body is capped before parsing so an oversized upload is never
// spooled to disk.
func (s *Server) readUpload(c *gin.Context) (string, []byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.Config.Server.MaxUploadBytes+multipartOverhead)
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("no file uploaded: %w", err)
	}
	raw, err := readLimited(fh, s.Config.Server.MaxUploadBytes)
	return fh.Filename, raw, err
}

func readLimited(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	if fh.Size > limit {
		return nil, fmt.Errorf("file is %d bytes, limit is %d", fh.Size, limit)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("file exceeds %d bytes", limit)
	}
	return raw, nil
}

func (s *Server) highlight(source, language string) template.HTML {
	out, err := render.Code(source, language)
	if err != nil {
		s.Logger.Debug("Highlighting failed", zap.String("language", language), zap.Error(err))
		return template.HTML("<pre>" + template.HTMLEscapeString(source) + "</pre>")
	}
	return out
}

func (s *Server) markdown(text string) template.HTML {
	out, err := render.Markdown(text)
	if err != nil {
		s.Logger.Debug("Markdown rendering failed", zap.Error(err))
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return out
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
