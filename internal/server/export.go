package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"activities/internal/export"
)

// handleExportActivities streams the collection as a CSV download.
func (s *Server) handleExportActivities(c *gin.Context) {
	activities, err := s.repo.GetActivities(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, activities, s.validator.Location()); err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
