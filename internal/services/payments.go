package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cvillegar/Odontologia/internal/ledger"
	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/store"
)

type PaymentRequest struct {
	// ValorTotal, when set, replaces the treatment total on the patient.
	ValorTotal *float64 `json:"valor_total"`
	FechaAbono string   `json:"fecha_abono"`
	ValorAbono float64  `json:"valor_abono"`
}

type PaymentService struct {
	repo     *store.Repository
	patients *PatientService
	log      *logrus.Entry
	now      func() time.Time
}

func NewPaymentService(repo *store.Repository, patients *PatientService, log *logrus.Entry) *PaymentService {
	return &PaymentService{repo: repo, patients: patients, log: log, now: time.Now}
}

// Record stores an abono for an existing patient and returns the updated
// ledger.
func (s *PaymentService) Record(ctx context.Context, cedula string, req PaymentRequest) (models.Payment, ledger.Summary, error) {
	cedula = models.NormalizeCedula(cedula)
	if _, err := s.patients.Get(cedula); err != nil {
		return models.Payment{}, ledger.Summary{}, err
	}
	if req.ValorAbono < 0 || (req.ValorTotal != nil && *req.ValorTotal < 0) {
		return models.Payment{}, ledger.Summary{}, ErrInvalidAmount
	}

	fecha := s.now().Format(models.DateLayout)
	if req.FechaAbono != "" {
		var err error
		if fecha, err = models.NormalizeDate(req.FechaAbono); err != nil {
			return models.Payment{}, ledger.Summary{}, fmt.Errorf("%w: fecha_abono", ErrInvalidDate)
		}
	}

	if req.ValorTotal != nil {
		if _, err := s.patients.UpdateTotal(ctx, cedula, *req.ValorTotal); err != nil {
			return models.Payment{}, ledger.Summary{}, err
		}
	}

	payment := models.Payment{
		ID:         uuid.NewString(),
		Cedula:     cedula,
		FechaAbono: fecha,
		ValorAbono: req.ValorAbono,
	}
	if err := s.repo.Payments.Append(ctx, payment); err != nil {
		return models.Payment{}, ledger.Summary{}, err
	}
	s.log.WithFields(logrus.Fields{"cedula": cedula, "valor_abono": req.ValorAbono}).Info("Payment recorded")

	summary, err := s.Ledger(cedula)
	return payment, summary, err
}

// Ledger summarizes what the patient owes.
func (s *PaymentService) Ledger(cedula string) (ledger.Summary, error) {
	p, err := s.patients.Get(cedula)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Compute(p.Cedula, s.repo.Payments.Rows(), p.ValorTotal), nil
}

// Lookup adapts Ledger for callers that treat unknown patients as absent.
func (s *PaymentService) Lookup(cedula string) (ledger.Summary, bool) {
	summary, err := s.Ledger(cedula)
	return summary, err == nil
}
