package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/reminders"
)

const DefaultTextbeltURL = "https://textbelt.com/text"

var ErrNotificationsDisabled = errors.New("notifications are disabled: no TEXTBELT_API_KEY")

// NotificationService sends SMS through the Textbelt API.
type NotificationService struct {
	endpoint string
	apiKey   string
	client   *http.Client
	log      *logrus.Entry
	wg       sync.WaitGroup
}

func NewNotificationService(endpoint, apiKey string, log *logrus.Entry) *NotificationService {
	if endpoint == "" {
		endpoint = DefaultTextbeltURL
	}
	return &NotificationService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
}

func (s *NotificationService) Enabled() bool { return s.apiKey != "" }

// Send posts one SMS and waits for Textbelt's verdict.
func (s *NotificationService) Send(ctx context.Context, phone, message string) error {
	if !s.Enabled() {
		return ErrNotificationsDisabled
	}
	if phone == "" {
		return reminders.ErrNoPhone
	}

	postBody, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(postBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("textbelt response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	return nil
}

// SendAppointmentConfirmation texts the patient about a booked appointment
// without blocking the caller.
func (s *NotificationService) SendAppointmentConfirmation(patient models.Patient, apt models.Appointment) {
	body := fmt.Sprintf("Cita confirmada: %s el %s a las %s.", apt.Motivo, apt.Fecha, apt.Hora)
	s.sendAsync(patient, body)
}

// SendReminder texts the patient the day before an appointment.
func (s *NotificationService) SendReminder(patient models.Patient, apt models.Appointment) {
	body := fmt.Sprintf("%s Te esperamos el %s a las %s.", reminders.DefaultMessage(patient.Nombre), apt.Fecha, apt.Hora)
	s.sendAsync(patient, body)
}

// Wait blocks until every pending message has been handled.
func (s *NotificationService) Wait() { s.wg.Wait() }

func (s *NotificationService) sendAsync(patient models.Patient, body string) {
	if !s.Enabled() {
		s.log.WithField("cedula", patient.Cedula).Debug("SMS not sent: notifications disabled")
		return
	}
	if patient.Telefono == "" {
		s.log.WithField("cedula", patient.Cedula).Info("SMS not sent: patient has no phone number")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		entry := s.log.WithField("cedula", patient.Cedula)
		if err := s.Send(ctx, patient.Telefono, body); err != nil {
			entry.WithError(err).Warn("Failed to send SMS")
			return
		}
		entry.Info("SMS sent")
	}()
}
