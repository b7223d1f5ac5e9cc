// Package ledger derives a patient's outstanding balance from their abonos.
package ledger

import "github.com/cvillegar/Odontologia/internal/models"

// Where the treatment total came from.
const (
	SourcePatient  = "patient"
	SourcePayments = "payments"
	SourceNone     = "none"
)

type Summary struct {
	Cedula       string  `json:"cedula"`
	ValorTotal   float64 `json:"valor_total"`
	TotalSource  string  `json:"total_source"`
	TotalAbonado float64 `json:"total_abonado"`
	Saldo        float64 `json:"saldo"`
	// Credito is the amount paid beyond the total. Saldo never goes negative.
	Credito float64 `json:"credito"`
	// Inconsistent is set when older payment rows disagree on valor_total;
	// the largest one is used.
	Inconsistent bool             `json:"inconsistent"`
	Payments     []models.Payment `json:"payments"`
}

// Compute summarizes the payments belonging to cedula. patientTotal is the
// total stored on the patient record and takes precedence over totals
// carried by payment rows.
func Compute(cedula string, payments []models.Payment, patientTotal *float64) Summary {
	s := Summary{Cedula: cedula, TotalSource: SourceNone, Payments: []models.Payment{}}

	var rowTotal *float64
	for _, p := range payments {
		if p.Cedula != cedula {
			continue
		}
		s.Payments = append(s.Payments, p)
		s.TotalAbonado += p.ValorAbono
		if p.ValorTotal == nil {
			continue
		}
		switch {
		case rowTotal == nil:
			v := *p.ValorTotal
			rowTotal = &v
		case *p.ValorTotal != *rowTotal:
			s.Inconsistent = true
			if *p.ValorTotal > *rowTotal {
				*rowTotal = *p.ValorTotal
			}
		}
	}

	switch {
	case patientTotal != nil:
		s.ValorTotal = *patientTotal
		s.TotalSource = SourcePatient
	case rowTotal != nil:
		s.ValorTotal = *rowTotal
		s.TotalSource = SourcePayments
	}

	s.Saldo = max(0, s.ValorTotal-s.TotalAbonado)
	s.Credito = max(0, s.TotalAbonado-s.ValorTotal)
	return s
}
