package server

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/observability"
	"github.com/Zachkp/portfolio/internal/visits"
)

const requestIDHeader = "X-Request-Id"

// RequestID echoes the caller's X-Request-Id or mints one and puts it on the
// request context, where the logger picks it up.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}

// RequestLogger writes one line per request. Server errors log at error
// level and client errors at warn. The /typing stream is logged once the
// client disconnects.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		log.LogAttrs(c.Request.Context(), level, "request",
			slog.Group("http",
				slog.String("method", c.Request.Method),
				slog.String("route", route),
				slog.String("path", c.Request.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", c.Writer.Size()),
			),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// untracked are path prefixes that never count as a page view.
var untracked = []string{
	"/static/",
	"/admin/",
	"/favicon",
	"/typing",
	"/timeline",
	"/contacts",
	"/social-links",
	"/resume.json",
	"/healthz",
	"/readyz",
}

// TrackVisits records page views in the background. Requests carrying
// "DNT: 1" are not recorded.
func TrackVisits(store *visits.Store, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untracked {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua, at := c.ClientIP(), c.GetHeader("User-Agent"), time.Now()
		reqID := observability.RequestID(c.Request.Context())
		store.Go(func(ctx context.Context) {
			ctx = observability.WithRequestID(ctx, reqID)
			if err := store.Record(ctx, ip, ua, path, at); err != nil {
				log.ErrorContext(ctx, "error recording visitor", "error", err)
			}
		})
		c.Next()
	}
}

// AdminAuth accepts the admin token as an "admin_token" cookie or as an
// "Authorization: Bearer" header. A header without the Bearer scheme is rejected.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, err := c.Cookie("admin_token")
		if err != nil || got == "" {
			var ok bool
			got, ok = strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
			if !ok {
				got = ""
			}
		}
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
