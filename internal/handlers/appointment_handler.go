package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cvillegar/Odontologia/internal/export"
	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/scheduling"
)

// defaultDuration is preselected in the booking form.
const defaultDuration = 30

// --- CREATE APPOINTMENT ---

// CreateAppointment books a slot and texts the patient a confirmation.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req scheduling.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	if req.DuracionMinutos == 0 {
		req.DuracionMinutos = defaultDuration
	}
	apt, err := h.Scheduler.Schedule(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Metrics.AppointmentBooked()
	c.JSON(http.StatusCreated, gin.H{"message": "Cita agendada", "appointment": apt})
}

// --- GET APPOINTMENTS ---

// GetAppointments lists every appointment, optionally for one cedula.
func (h *Handler) GetAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, h.Scheduler.List(c.Query("cedula")))
}

// GetUpcomingAppointments lists appointments from ?from= (default today) on.
func (h *Handler) GetUpcomingAppointments(c *gin.Context) {
	from, err := h.fromDate(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Scheduler.ListUpcoming(from))
}

// ExportAppointments sends the upcoming agenda as an Excel workbook.
func (h *Handler) ExportAppointments(c *gin.Context) {
	from, err := h.fromDate(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.Appointments(&buf, h.Scheduler.ListUpcoming(from)); err != nil {
		h.respondError(c, err)
		return
	}
	sendWorkbook(c, fmt.Sprintf("citas_%s.xlsx", from.Format(models.DateLayout)), buf.Bytes())
}

func (h *Handler) GetAppointmentOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"durations": scheduling.AllowedDurations, "default": defaultDuration})
}

// --- DELETE APPOINTMENT ---

func (h *Handler) DeleteAppointment(c *gin.Context) {
	if err := h.Scheduler.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cita eliminada"})
}

// DeleteAppointmentBySlot removes the appointments booked for a cedula at a
// date and start time.
func (h *Handler) DeleteAppointmentBySlot(c *gin.Context) {
	cedula, fecha, hora := c.Query("cedula"), c.Query("fecha"), c.Query("hora")
	if cedula == "" || fecha == "" || hora == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cedula, fecha and hora are required"})
		return
	}
	n, err := h.Scheduler.DeleteMatching(c.Request.Context(), cedula, fecha, hora)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cita eliminada", "deleted": n})
}

// fromDate reads ?from=, defaulting to today.
func (h *Handler) fromDate(c *gin.Context) (time.Time, error) {
	raw := c.Query("from")
	if raw == "" {
		return h.now(), nil
	}
	from, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: from %q", scheduling.ErrInvalidSlot, raw)
	}
	return from, nil
}
