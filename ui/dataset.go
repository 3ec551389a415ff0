package ui

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"prodstats/internal/errors"
	"prodstats/internal/session"

	"github.com/gin-gonic/gin"
)

var validExtensions = []string{".xlsx", ".xls", ".csv"}

// handleFileUpload extracts an uploaded sheet and makes it the current dataset
func (s *Server) handleFileUpload(c *gin.Context) {
	log := s.logger.Named("handleFileUpload")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Warn("No file uploaded: %v", err)
		abortWithError(c, http.StatusBadRequest, errors.InvalidInput("No file uploaded"))
		return
	}
	defer file.Close()

	if header.Size > s.config.Upload.MaxFileSize {
		log.Warn("File too large: %s (%d bytes)", header.Filename, header.Size)
		abortWithError(c, http.StatusBadRequest, errors.FileTooLarge(s.config.Upload.MaxFileSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	hasValidExtension := false
	for _, valid := range validExtensions {
		if ext == valid {
			hasValidExtension = true
			break
		}
	}
	if !hasValidExtension {
		log.Warn("Invalid file extension: %s", header.Filename)
		abortWithError(c, http.StatusBadRequest, errors.InvalidInput("Only Excel (.xlsx, .xls) and CSV (.csv) files are allowed"))
		return
	}

	ticket := s.store.Begin()
	res, err := s.extractor.ExtractResult(c.Request.Context(), header.Filename, file)
	if err != nil {
		log.Warn("Extraction failed for %s: %v", header.Filename, err)
		appErr, ok := errors.As(err)
		if !ok {
			appErr = errors.ParseFailure(err)
		}
		abortWithError(c, http.StatusBadRequest, appErr)
		return
	}

	ds := &session.Dataset{
		FileName: header.Filename,
		Format:   res.Format,
		Checksum: res.Checksum,
		Size:     res.Size,
		Extended: res.Extended,
		Records:  res.Records,
	}
	if !s.store.Commit(ticket, ds) {
		log.Info("Discarding %s: a newer upload already replaced it", header.Filename)
		abortWithError(c, http.StatusConflict, errors.Conflict("A newer upload replaced this file"))
		return
	}

	log.Info("Dataset %s loaded from %s (%d records)", ds.ID, ds.FileName, ds.RowCount())
	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Loaded %d records from %s", ds.RowCount(), ds.FileName),
		"dataset":   ds,
		"row_count": ds.RowCount(),
	})
}

// handleDataset returns metadata for the current dataset
func (s *Server) handleDataset(c *gin.Context) {
	ds := s.store.Current()
	if ds == nil {
		abortWithError(c, http.StatusNotFound, errors.NotFound("dataset"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"dataset":   ds,
		"row_count": ds.RowCount(),
	})
}

// handleClearDataset forgets the current dataset
func (s *Server) handleClearDataset(c *gin.Context) {
	s.store.Clear()
	c.Status(http.StatusNoContent)
}
