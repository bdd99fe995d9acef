package server

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/animation"
	"github.com/Zachkp/portfolio/internal/contacts"
	"github.com/Zachkp/portfolio/internal/markup"
	"github.com/Zachkp/portfolio/internal/timeline"
	"github.com/Zachkp/portfolio/internal/typing"
	"github.com/Zachkp/portfolio/internal/visits"
)

type Handlers struct {
	log      *slog.Logger
	timeline *timeline.Loader
	contacts *contacts.Loader
	typing   *typing.Loop
	visits   *visits.Store
}

func NewHandlers(log *slog.Logger, loader *timeline.Loader, people *contacts.Loader, loop *typing.Loop, store *visits.Store) *Handlers {
	return &Handlers{
		log:      log,
		timeline: loader,
		contacts: people,
		typing:   loop,
		visits:   store,
	}
}

// Home renders the page shell. The typing text, the timeline and the contact
// sections are filled in by their own requests once the page has loaded.
func (h *Handlers) Home(c *gin.Context) {
	data := gin.H{}

	handle := &animation.ScriptHandle{}
	if animation.Bootstrap(handle) {
		if cfg, ok := handle.Options(); ok {
			data["animation"] = cfg
		}
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// Timeline answers with the timeline fragment. When the resume has no work
// list it answers 204 so the page keeps whatever the container already shows.
func (h *Handlers) Timeline(c *gin.Context) {
	frag := &timeline.Fragment{}
	outcome := h.timeline.Load(c.Request.Context(), frag)
	if outcome == timeline.Skipped {
		h.noContent(c)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := frag.WriteTo(c.Writer); err != nil {
		h.log.ErrorContext(c.Request.Context(), "write timeline fragment", "error", err, "outcome", outcome.String())
	}
}

// Contacts answers with the copyable contact grid. Without contact data it
// answers 204 and the section stays empty.
func (h *Handlers) Contacts(c *gin.Context) {
	b, err := h.contacts.Basics(c.Request.Context())
	if err != nil {
		h.noContent(c)
		return
	}
	h.fragment(c, contacts.Grid(contacts.Fields(b)))
}

// SocialLinks answers with the hero profile links.
func (h *Handlers) SocialLinks(c *gin.Context) {
	b, err := h.contacts.Basics(c.Request.Context())
	if err != nil {
		h.noContent(c)
		return
	}
	h.fragment(c, contacts.SocialLinks(b.Profiles))
}

func (h *Handlers) fragment(c *gin.Context, nodes []markup.Node) {
	if len(nodes) == 0 {
		h.noContent(c)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := markup.Render(c.Writer, nodes); err != nil {
		h.log.ErrorContext(c.Request.Context(), "write fragment", "error", err, "path", c.Request.URL.Path)
	}
}

// noContent leaves the HTMX target untouched.
func (h *Handlers) noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

// Typing streams typing frames as server-sent "frame" events until the
// client goes away.
func (h *Handlers) Typing(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	target := typing.TargetFunc(func(text string) error {
		c.SSEvent("frame", html.EscapeString(text))
		c.Writer.Flush()
		return nil
	})

	if err := h.typing.Run(c.Request.Context(), target); err != nil {
		h.log.DebugContext(c.Request.Context(), "typing stream ended", "error", err)
	}
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) Readyz(c *gin.Context) {
	if h.visits != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()
		if err := h.visits.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handlers) AdminStats(c *gin.Context) {
	stats, err := h.visits.Stats(c.Request.Context(), time.Now())
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "error loading admin stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) ExportStats(c *gin.Context) {
	stats, err := h.visits.Stats(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	h.log.InfoContext(c.Request.Context(), "admin stats exported", "by", h.visits.HashIP(c.ClientIP()))
	c.JSON(http.StatusOK, stats)
}

// PrivacyCleanup purges visits older than the retention window.
func (h *Handlers) PrivacyCleanup(c *gin.Context) {
	n, err := h.visits.Cleanup(c.Request.Context(), time.Now().Add(-visits.Retention))
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "privacy cleanup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
