package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"activities/internal/validation"
)

// handleListActivities returns the whole collection in storage order.
func (s *Server) handleListActivities(c *gin.Context) {
	activities, err := s.repo.GetActivities(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"activities": activities})
}

// handleGetActivity returns a single activity.
func (s *Server) handleGetActivity(c *gin.Context) {
	activity, ok, err := s.repo.GetActivityByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		respondNotFound(c)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"activity": activity})
}

// handleCreateActivity validates the form and stores a new activity.
func (s *Server) handleCreateActivity(c *gin.Context) {
	var req validation.ActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	form, err := s.validator.ValidateActivity(req)
	if s.handleValidationError(c, err) {
		return
	}

	activity, err := s.repo.AddActivity(c.Request.Context(), form)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("activity created", "id", activity.ID, "nome", activity.Nome)
	respondSuccess(c, http.StatusCreated, gin.H{"activity": activity})
}

// handleUpdateActivity replaces the editable fields of an activity.
func (s *Server) handleUpdateActivity(c *gin.Context) {
	id := c.Param("id")

	var req validation.ActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	form, err := s.validator.ValidateActivity(req)
	if s.handleValidationError(c, err) {
		return
	}

	ok, err := s.repo.UpdateActivity(c.Request.Context(), id, form)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		respondNotFound(c)
		return
	}

	activity, found, err := s.repo.GetActivityByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !found {
		// Removed between the update and the read.
		respondNotFound(c)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"activity": activity})
}

// handleDeleteActivity removes an activity and its roster.
func (s *Server) handleDeleteActivity(c *gin.Context) {
	ok, err := s.repo.RemoveActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		respondNotFound(c)
		return
	}
	s.logger.Info("activity removed", "id", c.Param("id"))
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleValidationError writes the response for a failed validation and reports
// whether the request is finished.
func (s *Server) handleValidationError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		respondValidation(c, verrs)
		return true
	}
	s.respondError(c, http.StatusInternalServerError, err)
	return true
}
