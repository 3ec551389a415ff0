package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"prodstats/adapters/chartrender"
	"prodstats/domain/chart"
	"prodstats/domain/product"
	apperrors "prodstats/internal/errors"
	"prodstats/internal/report"

	"github.com/gin-gonic/gin"
)

// chartRequest is the JSON body of POST /api/chart and the query string of
// the image and report endpoints.
type chartRequest struct {
	XAxis     string `json:"x_axis" form:"x_axis" binding:"required"`
	YAxis     string `json:"y_axis" form:"y_axis" binding:"required"`
	ChartType string `json:"chart_type" form:"chart_type" binding:"required,oneof=bar line pie"`
	Sort      string `json:"sort" form:"sort" binding:"omitempty,oneof=asc desc"`
	From      string `json:"from" form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `json:"to" form:"to" binding:"omitempty,datetime=2006-01-02"`
	FormatIDs *bool  `json:"format_ids" form:"format_ids"`
}

func defaultChartRequest() chartRequest {
	sel := chart.DefaultSelection()
	return chartRequest{XAxis: string(sel.X), YAxis: string(sel.Y), ChartType: string(sel.Type)}
}

// query validates the request against the field set and builds a chart.Query
func (s *Server) query(req chartRequest, extended bool) (chart.Query, error) {
	q := chart.Query{
		Axes: chart.AxisSelection{
			X:    product.Field(req.XAxis),
			Y:    product.Field(req.YAxis),
			Type: chart.Type(req.ChartType),
		},
		Sort:      chart.SortOrder(req.Sort),
		FormatIDs: s.config.Viewer.FormatIDs,
	}
	if req.FormatIDs != nil {
		q.FormatIDs = *req.FormatIDs
	}
	if err := q.Axes.Validate(extended); err != nil {
		return chart.Query{}, err
	}

	var err error
	if req.From != "" {
		if q.Dates.From, err = time.Parse(product.DateLayout, req.From); err != nil {
			return chart.Query{}, fmt.Errorf("invalid from date: %w", err)
		}
	}
	// Without a start day there is no date filter, so To is ignored.
	if req.To != "" && req.From != "" {
		if q.Dates.To, err = time.Parse(product.DateLayout, req.To); err != nil {
			return chart.Query{}, fmt.Errorf("invalid to date: %w", err)
		}
	}
	return q, nil
}

// extended reports whether the Size, Date and ID fields are selectable
func (s *Server) extended() bool {
	if s.config.Viewer.ExtendedFields {
		return true
	}
	ds := s.store.Current()
	return ds != nil && ds.Extended
}

// project runs q over the current dataset; no dataset projects nothing
func (s *Server) project(q chart.Query) chart.Projection {
	var records []product.Record
	if ds := s.store.Current(); ds != nil {
		records = ds.Records
	}
	return s.projector.Project(records, q)
}

// abortWithError writes err as {"error", "code"} with the given status
func abortWithError(c *gin.Context, status int, err *apperrors.AppError) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": err.Code})
}

// handleIndex renders the viewer page
func (s *Server) handleIndex(c *gin.Context) {
	extended := s.extended()
	s.renderTemplate(c, "index.html", gin.H{
		"Title":      "Product Statistics",
		"Dataset":    s.store.Current(),
		"ChartTypes": chart.Types,
		"XFields":    chart.AllowedX(chart.TypeBar, extended),
		"YFields":    chart.AllowedY(extended),
		"Extended":   extended,
		"Default":    chart.DefaultSelection(),
		"MaxUpload":  s.config.Upload.MaxFileSize,
	})
}

// handleFields lists the selectable fields for a chart type
func (s *Server) handleFields(c *gin.Context) {
	chartType, err := chart.ParseType(c.DefaultQuery("chart_type", string(chart.TypeBar)))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apperrors.ValidationError(err))
		return
	}
	extended := s.extended()
	if raw := c.Query("extended"); raw != "" {
		if extended, err = strconv.ParseBool(raw); err != nil {
			abortWithError(c, http.StatusBadRequest, apperrors.InvalidInput("extended must be true or false"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"chart_type":  chartType,
		"extended":    extended,
		"x_fields":    chart.AllowedX(chartType, extended),
		"y_fields":    chart.AllowedY(extended),
		"chart_types": chart.Types,
		"default":     chart.DefaultSelection(),
	})
}

// handleChart projects the current dataset for a JSON query
func (s *Server) handleChart(c *gin.Context) {
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, apperrors.InvalidInput(fmt.Sprintf("Invalid request format: %v", err)))
		return
	}
	q, err := s.query(req, s.extended())
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apperrors.ValidationError(err))
		return
	}
	c.JSON(http.StatusOK, s.project(q))
}

// handleChartImage renders the projection as SVG or PNG by path suffix
func (s *Server) handleChartImage(c *gin.Context) {
	format := chartrender.FormatSVG
	if strings.HasSuffix(c.Request.URL.Path, ".png") {
		format = chartrender.FormatPNG
	}

	req := defaultChartRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, apperrors.InvalidInput(fmt.Sprintf("Invalid request format: %v", err)))
		return
	}
	q, err := s.query(req, s.extended())
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apperrors.ValidationError(err))
		return
	}

	proj := s.project(q)
	if proj.Empty() {
		abortWithError(c, http.StatusUnprocessableEntity, apperrors.New(apperrors.CodeValidationError, string(proj.Reason)))
		return
	}

	opts := chartrender.DefaultOptions()
	if w, err := strconv.Atoi(c.Query("width")); err == nil && w > 0 && w <= 4096 {
		opts.Width = w
	}
	if h, err := strconv.Atoi(c.Query("height")); err == nil && h > 0 && h <= 4096 {
		opts.Height = h
	}

	var buf bytes.Buffer
	if err := chartrender.Render(&buf, proj, format, opts); err != nil {
		s.logger.Error("Chart render failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, apperrors.InternalError("Failed to render chart"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// handleReport renders the Markdown summary as an HTML page
func (s *Server) handleReport(c *gin.Context) {
	req := defaultChartRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request format: %v", err)
		return
	}
	q, err := s.query(req, s.extended())
	if err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	var src report.Source
	if ds := s.store.Current(); ds != nil {
		src = report.Source{FileName: ds.FileName, Records: ds.RowCount(), UploadedAt: ds.UploadedAt}
	}
	body := report.HTML(s.project(q), src, report.Options{})

	s.renderTemplate(c, "report.html", gin.H{
		"Title": "Product Statistics Report",
		"Body":  template.HTML(body),
	})
}
