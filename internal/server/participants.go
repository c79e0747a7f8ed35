package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type participantRequest struct {
	Nome string `json:"nome"`
}

// handleAddParticipant appends a name to the roster of an activity.
func (s *Server) handleAddParticipant(c *gin.Context) {
	id := c.Param("id")

	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	name, err := s.validator.ValidateParticipant(req.Nome)
	if s.handleValidationError(c, err) {
		return
	}

	ok, err := s.repo.AddParticipant(c.Request.Context(), id, name)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		respondNotFound(c)
		return
	}
	s.respondRoster(c, id, http.StatusCreated)
}

// handleRemoveParticipant drops the roster entry at the given position.
func (s *Server) handleRemoveParticipant(c *gin.Context) {
	id := c.Param("id")

	index, ok := parseIndex(c, "index")
	if !ok {
		return
	}

	removed, err := s.repo.RemoveParticipant(c.Request.Context(), id, index)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Participante não encontrado"})
		return
	}
	s.respondRoster(c, id, http.StatusOK)
}

// respondRoster answers with the current participant list of an activity.
func (s *Server) respondRoster(c *gin.Context, id string, status int) {
	activity, found, err := s.repo.GetActivityByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if !found {
		respondNotFound(c)
		return
	}
	respondSuccess(c, status, gin.H{"participantes": activity.Participantes})
}

// parseIndex converts a path parameter to a roster position.
func parseIndex(c *gin.Context, name string) (int, bool) {
	index, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant index"})
		return 0, false
	}
	return index, true
}
