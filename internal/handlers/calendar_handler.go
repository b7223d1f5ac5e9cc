package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cvillegar/Odontologia/internal/calendar"
)

// --- CALENDAR ---

// GetCalendarEvents projects appointments into calendar events. With
// ?ledger=true every event also carries the patient's balance.
func (h *Handler) GetCalendarEvents(c *gin.Context) {
	var lookup calendar.LedgerLookup
	if c.Query("ledger") == "true" {
		lookup = h.Payments.Lookup
	}
	events := calendar.Project(h.Scheduler.List(c.Query("cedula")), lookup)
	c.JSON(http.StatusOK, gin.H{"events": events, "options": calendar.DefaultOptions})
}

// DescribeSelection turns the widget's click callback into the detail panel.
// A callback without a click selects nothing.
func (h *Handler) DescribeSelection(c *gin.Context) {
	var sel calendar.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		badJSON(c, err)
		return
	}
	if sel.EventClick == nil {
		c.Status(http.StatusNoContent)
		return
	}
	detail, err := calendar.Describe(sel.EventClick.Event)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}
