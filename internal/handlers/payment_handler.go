package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cvillegar/Odontologia/internal/export"
	"github.com/cvillegar/Odontologia/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// --- PAYMENTS ---

// GetLedger returns the patient's abonos with total, abonado and saldo.
func (h *Handler) GetLedger(c *gin.Context) {
	summary, err := h.Payments.Ledger(c.Param("cedula"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreatePayment records an abono, optionally replacing the treatment total.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req services.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	payment, summary, err := h.Payments.Record(c.Request.Context(), c.Param("cedula"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Metrics.PaymentRecorded()
	c.JSON(http.StatusCreated, gin.H{"message": "Abono registrado", "payment": payment, "ledger": summary})
}

// ExportPayments sends the patient's ledger as an Excel workbook.
func (h *Handler) ExportPayments(c *gin.Context) {
	patient, err := h.Patients.Get(c.Param("cedula"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	summary, err := h.Payments.Ledger(patient.Cedula)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.Payments(&buf, patient, summary); err != nil {
		h.respondError(c, err)
		return
	}
	sendWorkbook(c, fmt.Sprintf("pagos_%s.xlsx", patient.Cedula), buf.Bytes())
}

func sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
