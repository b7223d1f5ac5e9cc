package handlers

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cvillegar/Odontologia/internal/middleware"
	"github.com/cvillegar/Odontologia/internal/scheduling"
	"github.com/cvillegar/Odontologia/internal/services"
	"github.com/cvillegar/Odontologia/internal/store"
	"github.com/cvillegar/Odontologia/internal/utils"
)

// Handler carries everything the HTTP routes need.
type Handler struct {
	Repo       *store.Repository
	Patients   *services.PatientService
	Evolutions *services.EvolutionService
	Payments   *services.PaymentService
	Scheduler  *scheduling.Scheduler
	Issuer     *utils.TokenIssuer
	Metrics    *middleware.Metrics

	// CountryCode is prefixed to local numbers in WhatsApp links.
	CountryCode string

	log *logrus.Entry
	now func() time.Time
}

// NewHandler builds the services on top of repo. notifier may be nil.
func NewHandler(repo *store.Repository, notifier scheduling.Notifier, issuer *utils.TokenIssuer,
	metrics *middleware.Metrics, countryCode string, log *logrus.Entry) *Handler {
	patients := services.NewPatientService(repo, log.WithField("service", "patients"))
	return &Handler{
		Repo:        repo,
		Patients:    patients,
		Evolutions:  services.NewEvolutionService(repo, log.WithField("service", "evolutions")),
		Payments:    services.NewPaymentService(repo, patients, log.WithField("service", "payments")),
		Scheduler:   scheduling.New(repo, notifier, log.WithField("service", "scheduling")),
		Issuer:      issuer,
		Metrics:     metrics,
		CountryCode: countryCode,
		log:         log,
		now:         time.Now,
	}
}
