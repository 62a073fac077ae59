package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RahulKumar035/portfolio/internal/contact"
	"github.com/RahulKumar035/portfolio/internal/portfolio"
)

var templateFuncs = template.FuncMap{
	"fieldError": func(errs contact.IncompleteError, field string) string {
		return errs[contact.Field(field)]
	},
}

type indexView struct {
	Page    portfolio.Page
	Contact contactView
}

func (s *Server) registerPageRoutes(r *gin.Engine) {
	r.GET("/", s.index)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": s.cfg.AnalyticsRetention.String(),
		})
	})
}

func (s *Server) index(c *gin.Context) {
	id, form, err := s.mountForm()
	if err != nil {
		s.contactUnavailable(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", indexView{
		Page:    s.page,
		Contact: newContactView(id, form, nil),
	})
}

// trackVisitors records page views with hashed IPs in the background.
// Assets, admin pages, polling and visitors sending DNT are skipped.
func (s *Server) trackVisitors() gin.HandlerFunc {
	skipped := []string{"/static/", "/images/", "/admin", "/favicon", "/privacy", "/metrics", "/healthz", "/contact/"}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, prefix := range skipped {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		s.goBackground(func(ctx context.Context) {
			if err := s.analytics.RecordVisit(ctx, ip, ua, path); err != nil {
				s.logger.Error().Err(err).Msg("error recording visitor")
			}
		})
		c.Next()
	}
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
