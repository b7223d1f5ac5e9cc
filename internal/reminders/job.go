package reminders

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/scheduling"
)

// Sender delivers one reminder to a patient.
type Sender interface {
	SendReminder(patient models.Patient, apt models.Appointment)
}

// Agenda lists the appointments booked on a day.
type Agenda interface {
	Due(day time.Time) []scheduling.Entry
}

// PatientLookup resolves a cedula to its patient record.
type PatientLookup func(cedula string) (models.Patient, bool)

// Job reminds patients of their appointments one day ahead.
type Job struct {
	agenda   Agenda
	patients PatientLookup
	sender   Sender
	log      *logrus.Entry
	now      func() time.Time
}

func NewJob(agenda Agenda, patients PatientLookup, sender Sender, log *logrus.Entry) *Job {
	return &Job{agenda: agenda, patients: patients, sender: sender, log: log, now: time.Now}
}

// Run sends a reminder for every appointment booked tomorrow and returns how
// many were handed to the sender.
func (j *Job) Run() int {
	tomorrow := j.now().AddDate(0, 0, 1)
	sent := 0
	for _, e := range j.agenda.Due(tomorrow) {
		patient, ok := j.patients(e.Cedula)
		if !ok {
			j.log.WithField("cedula", e.Cedula).Warn("Reminder skipped: unknown patient")
			continue
		}
		if patient.Telefono == "" {
			continue
		}
		j.sender.SendReminder(patient, e.Appointment)
		sent++
	}
	j.log.WithFields(logrus.Fields{"fecha": tomorrow.Format(models.DateLayout), "sent": sent}).Info("Reminder run finished")
	return sent
}

// Start runs the job every day at the given HH:MM, local time.
func (j *Job) Start(at string) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.Local)
	if _, err := scheduler.Every(1).Day().At(at).Do(func() { j.Run() }); err != nil {
		return nil, err
	}
	scheduler.StartAsync()
	j.log.WithField("at", at).Info("Appointment reminder cron job started")
	return scheduler, nil
}
