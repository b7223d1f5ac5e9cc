// Package scheduling books, lists and removes appointments.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/store"
)

var (
	ErrDuplicateAppointment = errors.New("appointment already exists")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrCrossesMidnight      = errors.New("appointment must end on the day it starts")
	ErrInvalidDuration      = errors.New("duration must be a positive number of minutes")
	ErrInvalidSlot          = errors.New("invalid appointment date or time")
)

// AllowedDurations are the lengths offered by the booking form, in minutes.
var AllowedDurations = []int{15, 30, 45, 60, 90, 120}

// Notifier is told about every appointment that was booked.
type Notifier interface {
	SendAppointmentConfirmation(patient models.Patient, apt models.Appointment)
}

type Request struct {
	Cedula          string `json:"cedula"`
	Fecha           string `json:"fecha"`
	Hora            string `json:"hora"`
	DuracionMinutos int    `json:"duracion_minutos"`
	Motivo          string `json:"motivo"`
}

// Entry is an appointment joined with the patient's name. Nombre is empty
// when the cedula has no patient record.
type Entry struct {
	models.Appointment
	Nombre string `json:"nombre"`
}

type Scheduler struct {
	repo     *store.Repository
	notifier Notifier
	log      *logrus.Entry
}

func New(repo *store.Repository, notifier Notifier, log *logrus.Entry) *Scheduler {
	return &Scheduler{repo: repo, notifier: notifier, log: log}
}

// EndTime adds minutes to hora on fecha and returns the HH:MM end. Spans
// that would end on a later day are rejected.
func EndTime(fecha, hora string, minutes int) (string, error) {
	if minutes <= 0 {
		return "", ErrInvalidDuration
	}
	start, err := time.Parse(models.DateLayout+" "+models.ClockLayout, fecha+" "+hora)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	end := start.Add(time.Duration(minutes) * time.Minute)
	if end.YearDay() != start.YearDay() || end.Year() != start.Year() {
		return "", ErrCrossesMidnight
	}
	return end.Format(models.ClockLayout), nil
}

// Schedule books an appointment unless the patient already has one at the
// same date and start time.
func (s *Scheduler) Schedule(ctx context.Context, req Request) (models.Appointment, error) {
	cedula := models.NormalizeCedula(req.Cedula)
	if cedula == "" {
		return models.Appointment{}, fmt.Errorf("%w: cedula", models.ErrMissingRequiredField)
	}
	patient, ok := s.repo.Patients.First(func(p models.Patient) bool { return p.Cedula == cedula })
	if !ok {
		return models.Appointment{}, models.ErrPatientNotFound
	}

	fecha, err := models.NormalizeDate(req.Fecha)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: fecha %q", ErrInvalidSlot, req.Fecha)
	}
	hora, err := models.NormalizeClock(req.Hora)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: hora %q", ErrInvalidSlot, req.Hora)
	}
	fin, err := EndTime(fecha, hora, req.DuracionMinutos)
	if err != nil {
		return models.Appointment{}, err
	}

	apt := models.Appointment{
		ID:      uuid.NewString(),
		Cedula:  cedula,
		Fecha:   fecha,
		Hora:    hora,
		HoraFin: fin,
		Motivo:  strings.TrimSpace(req.Motivo),
	}
	err = s.repo.Appointments.AppendUnless(ctx, apt, func(a models.Appointment) bool {
		return a.Slot(cedula, fecha, hora)
	})
	if errors.Is(err, store.ErrConflict) {
		return models.Appointment{}, ErrDuplicateAppointment
	}
	if err != nil {
		return models.Appointment{}, err
	}

	s.log.WithFields(logrus.Fields{"cedula": cedula, "fecha": fecha, "hora": hora}).Info("Appointment scheduled")
	if s.notifier != nil {
		s.notifier.SendAppointmentConfirmation(patient, apt)
	}
	return apt, nil
}

// ListUpcoming returns appointments on or after from, ordered by date and
// start time.
func (s *Scheduler) ListUpcoming(from time.Time) []Entry {
	day := from.Format(models.DateLayout)
	return s.join(s.repo.Appointments.Find(func(a models.Appointment) bool { return a.Fecha >= day }))
}

// List returns every appointment, or only cedula's when it is not empty.
func (s *Scheduler) List(cedula string) []Entry {
	cedula = models.NormalizeCedula(cedula)
	return s.join(s.repo.Appointments.Find(func(a models.Appointment) bool {
		return cedula == "" || a.Cedula == cedula
	}))
}

// Due returns the appointments booked on day.
func (s *Scheduler) Due(day time.Time) []Entry {
	fecha := day.Format(models.DateLayout)
	return s.join(s.repo.Appointments.Find(func(a models.Appointment) bool { return a.Fecha == fecha }))
}

// Delete removes the appointment with the given id.
func (s *Scheduler) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Appointments.DeleteWhere(ctx, func(a models.Appointment) bool { return a.ID == id })
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAppointmentNotFound
	}
	s.log.WithField("id", id).Info("Appointment deleted")
	return nil
}

// DeleteMatching removes the appointments booked for cedula at fecha/hora
// and returns how many were removed.
func (s *Scheduler) DeleteMatching(ctx context.Context, cedula, fecha, hora string) (int, error) {
	cedula = models.NormalizeCedula(cedula)
	fecha, err := models.NormalizeDate(fecha)
	if err != nil {
		return 0, fmt.Errorf("%w: fecha", ErrInvalidSlot)
	}
	hora, err = models.NormalizeClock(hora)
	if err != nil {
		return 0, fmt.Errorf("%w: hora", ErrInvalidSlot)
	}
	n, err := s.repo.Appointments.DeleteWhere(ctx, func(a models.Appointment) bool {
		return a.Slot(cedula, fecha, hora)
	})
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrAppointmentNotFound
	}
	return n, nil
}

func (s *Scheduler) join(apts []models.Appointment) []Entry {
	names := make(map[string]string)
	for _, p := range s.repo.Patients.Rows() {
		if _, seen := names[p.Cedula]; !seen {
			names[p.Cedula] = p.Nombre
		}
	}
	slices.SortStableFunc(apts, func(a, b models.Appointment) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
	entries := make([]Entry, 0, len(apts))
	for _, a := range apts {
		entries = append(entries, Entry{Appointment: a, Nombre: names[a.Cedula]})
	}
	return entries
}
