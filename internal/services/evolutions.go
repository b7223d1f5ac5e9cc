package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/store"
)

// EvolutionService keeps the append-only clinical history of each patient.
type EvolutionService struct {
	repo *store.Repository
	log  *logrus.Entry
	now  func() time.Time
}

func NewEvolutionService(repo *store.Repository, log *logrus.Entry) *EvolutionService {
	return &EvolutionService{repo: repo, log: log, now: time.Now}
}

// Add records a note for an existing patient. An empty date means today.
func (s *EvolutionService) Add(ctx context.Context, cedula string, note models.EvolutionNote) (models.EvolutionNote, error) {
	cedula = models.NormalizeCedula(cedula)
	if _, ok := s.repo.Patients.First(func(p models.Patient) bool { return p.Cedula == cedula }); !ok {
		return models.EvolutionNote{}, models.ErrPatientNotFound
	}

	note.ID = uuid.NewString()
	note.Cedula = cedula
	if note.Fecha == "" {
		note.Fecha = s.now().Format(models.DateLayout)
	} else {
		fecha, err := models.NormalizeDate(note.Fecha)
		if err != nil {
			return models.EvolutionNote{}, fmt.Errorf("%w: fecha", ErrInvalidDate)
		}
		note.Fecha = fecha
	}

	if err := s.repo.Evolutions.Append(ctx, note); err != nil {
		return models.EvolutionNote{}, err
	}
	s.log.WithField("cedula", cedula).Info("Evolution note recorded")
	return note, nil
}

// List returns a patient's notes in the order they were recorded. Unknown
// patients have no notes.
func (s *EvolutionService) List(cedula string) []models.EvolutionNote {
	cedula = models.NormalizeCedula(cedula)
	notes := s.repo.Evolutions.Find(func(e models.EvolutionNote) bool { return e.Cedula == cedula })
	if notes == nil {
		notes = make([]models.EvolutionNote, 0)
	}
	return notes
}
