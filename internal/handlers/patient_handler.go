package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/reminders"
)

// --- PATIENTS ---

// ListPatients returns every registered patient.
func (h *Handler) ListPatients(c *gin.Context) {
	c.JSON(http.StatusOK, h.Patients.List())
}

// CreatePatient registers a patient. cedula, nombre and telefono are required.
func (h *Handler) CreatePatient(c *gin.Context) {
	var req models.Patient
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	patient, err := h.Patients.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Paciente registrado exitosamente", "patient": patient})
}

func (h *Handler) GetPatient(c *gin.Context) {
	patient, err := h.Patients.Get(c.Param("cedula"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// UpdatePatientTotal sets the treatment total and returns the new ledger.
func (h *Handler) UpdatePatientTotal(c *gin.Context) {
	var req struct {
		ValorTotal *float64 `json:"valor_total" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	patient, err := h.Patients.UpdateTotal(c.Request.Context(), c.Param("cedula"), *req.ValorTotal)
	if err != nil {
		h.respondError(c, err)
		return
	}
	summary, err := h.Payments.Ledger(patient.Cedula)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": patient, "ledger": summary})
}

// --- REMINDERS ---

// GetReminderLink builds the WhatsApp reminder link for a patient.
func (h *Handler) GetReminderLink(c *gin.Context) {
	patient, err := h.Patients.Get(c.Param("cedula"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	message := c.Query("message")
	if message == "" {
		message = reminders.DefaultMessage(patient.Nombre)
	}
	link, err := reminders.Link(patient.Telefono, message, h.CountryCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link, "message": message})
}
