// ops.go - privacy-conscious request logging, privacy page and status
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"
)

// clientHasher turns client addresses into identifiers that are stable for
// the life of the process and useless after it.
type clientHasher struct {
	salt []byte
}

func newClientHasher() (*clientHasher, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating hashing salt: %w", err)
	}
	return &clientHasher{salt: salt}, nil
}

// hash returns the first 16 hex digits of the salted SHA-256 of ip.
func (h *clientHasher) hash(ip string) string {
	sum := sha256.New()
	sum.Write([]byte(ip))
	sum.Write(h.salt)
	return hex.EncodeToString(sum.Sum(nil))[:16]
}

func skipLogging(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/images/") ||
		strings.HasPrefix(path, "/favicon")
}

// requestLogger logs one line per request. Static assets are skipped and
// Do Not Track requests are logged without a client identifier.
func requestLogger(log *zap.Logger, h *clientHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipLogging(path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.GetHeader("DNT") != "1" {
			fields = append(fields, zap.String("client", h.hash(c.ClientIP())))
		}
		log.Info("request", fields...)
	}
}

// status is the /status payload.
type status struct {
	Version       string  `json:"version"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	LiveSessions  int     `json:"live_sessions"`
}

func setupOpsRoutes(r *gin.Engine, s *site) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		lang, theme := s.preferences(c)
		ctx := i18n.NewProvider(s.texts, lang, theme).Context()
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"Lang":  string(ctx.Language),
			"Dark":  ctx.Theme == i18n.Dark,
			"Text":  ctx.T,
			"Title": ctx.T.T("privacy.title"),
		})
	})

	r.GET("/status", func(c *gin.Context) {
		up := time.Since(s.started)
		c.JSON(http.StatusOK, status{
			Version:       version,
			Uptime:        up.Round(time.Second).String(),
			UptimeSeconds: up.Seconds(),
			LiveSessions:  s.hub.Active(),
		})
	})
}
