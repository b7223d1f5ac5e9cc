package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cvillegar/Odontologia/internal/models"
)

// --- EVOLUTION NOTES ---

// ListEvolutions returns a patient's clinical history, oldest first.
func (h *Handler) ListEvolutions(c *gin.Context) {
	c.JSON(http.StatusOK, h.Evolutions.List(c.Param("cedula")))
}

// CreateEvolution appends a note. An empty fecha means today.
func (h *Handler) CreateEvolution(c *gin.Context) {
	var note models.EvolutionNote
	if err := c.ShouldBindJSON(&note); err != nil {
		badJSON(c, err)
		return
	}
	saved, err := h.Evolutions.Add(c.Request.Context(), c.Param("cedula"), note)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Evolución registrada", "evolution": saved})
}
