package server

import (
	"log/slog"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contacts"
	"github.com/Zachkp/portfolio/internal/timeline"
	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/Zachkp/portfolio/internal/visits"
)

type Options struct {
	Env          string
	TemplatesDir string
	StaticDir    string
	ResumePath   string
	AdminToken   string
}

// NewRouter wires the page, its fragments and, when a visit store and an
// admin token are both present, the admin API.
func NewRouter(opts Options, log *slog.Logger, loader *timeline.Loader, people *contacts.Loader, loop *typing.Loop, store *visits.Store) *gin.Engine {
	if opts.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	if store != nil {
		r.Use(TrackVisits(store, log))
	}

	r.LoadHTMLGlob(filepath.Join(opts.TemplatesDir, "*"))
	r.Static("/static", opts.StaticDir)
	if opts.ResumePath != "" {
		r.StaticFile("/resume.json", opts.ResumePath)
	}

	h := NewHandlers(log, loader, people, loop, store)

	r.GET("/", h.Home)
	r.GET("/timeline", h.Timeline)
	r.GET("/contacts", h.Contacts)
	r.GET("/social-links", h.SocialLinks)
	r.GET("/typing", h.Typing)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if store != nil && opts.AdminToken != "" {
		admin := r.Group("/admin")
		admin.Use(AdminAuth(opts.AdminToken))
		admin.GET("/api/stats", h.AdminStats)
		admin.GET("/export/stats", h.ExportStats)
		admin.POST("/privacy/cleanup", h.PrivacyCleanup)
	}

	return r
}
