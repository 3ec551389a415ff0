package ui

import (
	"net/http"
	"time"

	"prodstats/internal/errors"

	"github.com/gin-gonic/gin"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(s.requestLogger())
	s.router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error("Panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		abortWithError(c, http.StatusInternalServerError, errors.InternalError("Internal server error"))
	}))
}

// requestLogger logs one line per request through the leveled logger
func (s *Server) requestLogger() gin.HandlerFunc {
	log := s.logger.Named("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
		switch {
		case status >= 500:
			log.Error("%s %s -> %d (%.2fms)", c.Request.Method, c.Request.URL.Path, status, elapsed)
		case status >= 400:
			log.Warn("%s %s -> %d (%.2fms)", c.Request.Method, c.Request.URL.Path, status, elapsed)
		default:
			log.Debug("%s %s -> %d (%.2fms)", c.Request.Method, c.Request.URL.Path, status, elapsed)
		}
	}
}
