package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/store"
)

var (
	ErrDuplicatePatient = errors.New("patient is already registered")
	ErrInvalidAmount    = errors.New("amount must not be negative")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
)

type PatientService struct {
	repo *store.Repository
	log  *logrus.Entry
}

func NewPatientService(repo *store.Repository, log *logrus.Entry) *PatientService {
	return &PatientService{repo: repo, log: log}
}

// Register adds a new patient. cedula, nombre and telefono are required and
// the cedula must not be taken.
func (s *PatientService) Register(ctx context.Context, p models.Patient) (models.Patient, error) {
	p.Cedula = models.NormalizeCedula(p.Cedula)
	p.Nombre = strings.TrimSpace(p.Nombre)
	p.Telefono = models.NormalizePhone(p.Telefono)
	p.Email = strings.TrimSpace(p.Email)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"cedula", p.Cedula},
		{"nombre", p.Nombre},
		{"telefono", p.Telefono},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return models.Patient{}, fmt.Errorf("%w: %s", models.ErrMissingRequiredField, strings.Join(missing, ", "))
	}
	if p.FechaNacimiento != "" {
		fecha, err := models.NormalizeDate(p.FechaNacimiento)
		if err != nil {
			return models.Patient{}, fmt.Errorf("%w: fecha_nacimiento", ErrInvalidDate)
		}
		p.FechaNacimiento = fecha
	}
	if p.ValorTotal != nil && *p.ValorTotal < 0 {
		return models.Patient{}, ErrInvalidAmount
	}

	cedula := p.Cedula
	err := s.repo.Patients.AppendUnless(ctx, p, func(existing models.Patient) bool {
		return existing.Cedula == cedula
	})
	if errors.Is(err, store.ErrConflict) {
		return models.Patient{}, ErrDuplicatePatient
	}
	if err != nil {
		return models.Patient{}, err
	}
	s.log.WithField("cedula", p.Cedula).Info("Patient registered")
	return p, nil
}

func (s *PatientService) Get(cedula string) (models.Patient, error) {
	cedula = models.NormalizeCedula(cedula)
	p, ok := s.repo.Patients.First(func(p models.Patient) bool { return p.Cedula == cedula })
	if !ok {
		return models.Patient{}, models.ErrPatientNotFound
	}
	return p, nil
}

// Lookup is Get without the error, for callers that treat a miss as empty.
func (s *PatientService) Lookup(cedula string) (models.Patient, bool) {
	p, err := s.Get(cedula)
	return p, err == nil
}

func (s *PatientService) List() []models.Patient {
	return s.repo.Patients.Rows()
}

// UpdateTotal sets the treatment total stored on the patient record.
func (s *PatientService) UpdateTotal(ctx context.Context, cedula string, valor float64) (models.Patient, error) {
	if valor < 0 {
		return models.Patient{}, ErrInvalidAmount
	}
	cedula = models.NormalizeCedula(cedula)
	n, err := s.repo.Patients.UpdateField(ctx, func(p models.Patient) bool { return p.Cedula == cedula },
		"valor_total", models.FormatAmount(&valor))
	if err != nil {
		return models.Patient{}, err
	}
	if n == 0 {
		return models.Patient{}, models.ErrPatientNotFound
	}
	s.log.WithFields(logrus.Fields{"cedula": cedula, "valor_total": valor}).Info("Treatment total updated")
	return s.Get(cedula)
}
