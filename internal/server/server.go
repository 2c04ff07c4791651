package server

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/agenthands/codecleaner/internal/config"
	"github.com/agenthands/codecleaner/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookie = "session_id"

type Server struct {
	Assistant session.Cleaner
	Sessions  *session.Store
	Config    *config.Config
	Logger    *zap.Logger
}

func NewServer(cfg *config.Config, assistant session.Cleaner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Assistant: assistant,
		Sessions:  session.NewStore(session.DefaultIdleTimeout),
		Config:    cfg,
		Logger:    logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(s.Logger), gin.Recovery())
	r.MaxMultipartMemory = s.Config.Server.MaxUploadBytes

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"seconds": formatSeconds,
		"upper":   strings.ToUpper,
	}).ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.Index)
	r.POST("/upload", s.Upload)
	r.POST("/clean", s.Clean)
	r.POST("/explain", s.Explain)
	r.GET("/download", s.Download)

	api := r.Group("/api")
	api.POST("/clean", s.APIClean)
	api.POST("/explain", s.APIExplain)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// session returns the caller's session, issuing a cookie for new ones.
func (s *Server) session(c *gin.Context) *session.Session {
	id, _ := c.Cookie(sessionCookie)
	sess, created := s.Sessions.Get(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, int(session.DefaultIdleTimeout/time.Second), "/", "", false, true)
	}
	return sess
}
