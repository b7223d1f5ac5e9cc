package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvillegar/Odontologia/internal/logger"
	"github.com/cvillegar/Odontologia/internal/models"
)

type textbeltStub struct {
	mu       sync.Mutex
	received []map[string]string
	reply    string
}

func (s *textbeltStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.mu.Lock()
	s.received = append(s.received, body)
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(s.reply))
}

func TestNotificationService_Send(t *testing.T) {
	stub := &textbeltStub{reply: `{"success": true}`}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	svc := NewNotificationService(srv.URL, "key-1", logger.Discard().WithComponent("notifications"))
	require.NoError(t, svc.Send(context.Background(), "3001234567", "hola"))

	require.Len(t, stub.received, 1)
	assert.Equal(t, map[string]string{"phone": "3001234567", "message": "hola", "key": "key-1"}, stub.received[0])
}

func TestNotificationService_SendRejected(t *testing.T) {
	srv := httptest.NewServer(&textbeltStub{reply: `{"success": false, "error": "Out of quota"}`})
	defer srv.Close()

	svc := NewNotificationService(srv.URL, "key-1", logger.Discard().WithComponent("notifications"))
	err := svc.Send(context.Background(), "3001234567", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Out of quota")
}

func TestNotificationService_Disabled(t *testing.T) {
	svc := NewNotificationService("", "", logger.Discard().WithComponent("notifications"))
	assert.False(t, svc.Enabled())
	assert.ErrorIs(t, svc.Send(context.Background(), "3001234567", "hola"), ErrNotificationsDisabled)

	// must not block or panic
	svc.SendAppointmentConfirmation(models.Patient{Cedula: "1", Telefono: "300"}, models.Appointment{})
	svc.Wait()
}

func TestNotificationService_AppointmentConfirmation(t *testing.T) {
	stub := &textbeltStub{reply: `{"success": true}`}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	svc := NewNotificationService(srv.URL, "key-1", logger.Discard().WithComponent("notifications"))
	svc.SendAppointmentConfirmation(
		models.Patient{Cedula: "123", Nombre: "Ana", Telefono: "3001234567"},
		models.Appointment{Fecha: "2024-06-01", Hora: "09:00", Motivo: "Limpieza"},
	)
	svc.SendReminder(models.Patient{Cedula: "456", Nombre: "Luis"}, models.Appointment{})
	svc.Wait()

	require.Len(t, stub.received, 1)
	assert.Equal(t, "Cita confirmada: Limpieza el 2024-06-01 a las 09:00.", stub.received[0]["message"])
}
