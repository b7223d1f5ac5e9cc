package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports the service as up with the row count of every table.
// Tables that failed to load, fully or partly, are listed under warnings.
func (h *Handler) Health(c *gin.Context) {
	warnings := h.Repo.Warnings()
	status := "ok"
	if len(warnings) > 0 {
		status = "degraded"
	} else {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "warnings": warnings, "tables": h.Repo.Counts()})
}
