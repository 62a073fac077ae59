package web

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminCookie = "admin_token"

// adminAuth redirects to the login page unless the admin cookie matches.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) validCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	return userOK && passOK
}

func (s *Server) registerAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		who := s.analytics.HashIP(c.ClientIP())
		if !s.validCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.logger.Warn().Str("from", who).Msg("failed admin login attempt")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", !s.cfg.IsDevelopment(), true)
		s.logger.Info().Str("from", who).Msg("admin login successful")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", !s.cfg.IsDevelopment(), true)
		s.logger.Info().Str("from", s.analytics.HashIP(c.ClientIP())).Msg("admin logout")
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("error loading admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"sessions": s.sessions.Len(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.analytics.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			s.logger.Error().Err(err).Msg("error loading visitors")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		s.goBackground(s.cleanup)
		c.JSON(http.StatusAccepted, gin.H{"message": "Privacy cleanup initiated"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.logger.Info().Str("from", s.analytics.HashIP(c.ClientIP())).Msg("admin stats exported")
		c.JSON(http.StatusOK, stats)
	})
}
