package ui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"prodstats/domain/product"
	"prodstats/internal/errors"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFiles embed.FS

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"label": func(f product.Field) string {
			if fi, ok := product.Lookup(f); ok {
				return fi.Label
			}
			return string(f)
		},
		"megabytes": func(n int64) string {
			return humanize.IBytes(uint64(n))
		},
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
}

// renderTemplate executes a template into a buffer first so a failing
// template never produces a half-written page
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("Template error for %s: %v", templateName, err)
		abortWithError(c, http.StatusInternalServerError, errors.InternalError("Template rendering failed"))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
