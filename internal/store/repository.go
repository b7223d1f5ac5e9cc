package store

import (
	"context"
	"sync"

	"github.com/cvillegar/Odontologia/internal/models"
)

// Table names double as CSV file stems and Mongo collection names.
const (
	TablePatients     = "pacientes"
	TableEvolutions   = "evoluciones"
	TablePayments     = "pagos"
	TableAppointments = "citas"
	TableUsers        = "usuarios"
)

// Repository owns the clinic's tables.
type Repository struct {
	Patients     *Table[models.Patient]
	Evolutions   *Table[models.EvolutionNote]
	Payments     *Table[models.Payment]
	Appointments *Table[models.Appointment]
	Users        *Table[models.User]

	mu       sync.Mutex
	warnings []string
}

func NewRepository(backend Backend) *Repository {
	return &Repository{
		Patients: NewTable(TablePatients, Codec[models.Patient]{
			Columns: models.PatientColumns,
			Encode:  models.Patient.ToRecord,
			Decode:  models.PatientFromRecord,
		}, backend),
		Evolutions: NewTable(TableEvolutions, Codec[models.EvolutionNote]{
			Columns:  models.EvolutionColumns,
			IDColumn: "id",
			Encode:   models.EvolutionNote.ToRecord,
			Decode:   models.EvolutionFromRecord,
		}, backend),
		Payments: NewTable(TablePayments, Codec[models.Payment]{
			Columns:  models.PaymentColumns,
			IDColumn: "id",
			Encode:   models.Payment.ToRecord,
			Decode:   models.PaymentFromRecord,
		}, backend),
		Appointments: NewTable(TableAppointments, Codec[models.Appointment]{
			Columns:  models.AppointmentColumns,
			IDColumn: "id",
			Encode:   models.Appointment.ToRecord,
			Decode:   models.AppointmentFromRecord,
		}, backend),
		Users: NewTable(TableUsers, Codec[models.User]{
			Columns:  models.UserColumns,
			IDColumn: "id",
			Encode:   models.User.ToRecord,
			Decode:   models.UserFromRecord,
		}, backend),
	}
}

type loader interface {
	Name() string
	Load(ctx context.Context) error
	Len() int
}

func (r *Repository) tables() []loader {
	return []loader{r.Patients, r.Evolutions, r.Payments, r.Appointments, r.Users}
}

// Load reads every table. Tables that fail to load are served empty; their
// errors are returned and kept for Warnings.
func (r *Repository) Load(ctx context.Context) []error {
	var errs []error
	for _, t := range r.tables() {
		if err := t.Load(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = r.warnings[:0]
	for _, err := range errs {
		r.warnings = append(r.warnings, err.Error())
	}
	return errs
}

// Warnings lists the problems found by the last Load.
func (r *Repository) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warnings...)
}

// Counts returns the number of loaded rows per table name.
func (r *Repository) Counts() map[string]int {
	counts := make(map[string]int)
	for _, t := range r.tables() {
		counts[t.Name()] = t.Len()
	}
	return counts
}
