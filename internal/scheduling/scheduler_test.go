package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvillegar/Odontologia/internal/logger"
	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/store"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Appointment
}

func (r *recordingNotifier) SendAppointmentConfirmation(_ models.Patient, apt models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, apt)
}

func setupScheduler(t *testing.T) (*Scheduler, *store.Repository, *recordingNotifier) {
	t.Helper()
	repo := store.NewRepository(store.NewCSVBackend(t.TempDir()))
	require.Empty(t, repo.Load(context.Background()))
	for _, p := range []models.Patient{
		{Cedula: "123", Nombre: "Ana Gomez", Telefono: "3001234567"},
		{Cedula: "456", Nombre: "Luis Perez", Telefono: "3017654321"},
	} {
		require.NoError(t, repo.Patients.Append(context.Background(), p))
	}
	n := &recordingNotifier{}
	return New(repo, n, logger.Discard().WithComponent("scheduling")), repo, n
}

func TestEndTime(t *testing.T) {
	end, err := EndTime("2024-06-01", "09:45", 30)
	require.NoError(t, err)
	assert.Equal(t, "10:15", end)

	end, err = EndTime("2024-06-01", "22:00", 120)
	require.ErrorIs(t, err, ErrCrossesMidnight)
	assert.Empty(t, end)

	_, err = EndTime("2024-12-31", "23:30", 45)
	assert.ErrorIs(t, err, ErrCrossesMidnight)

	_, err = EndTime("2024-06-01", "09:00", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestSchedule_StoresEndTimeAndRejectsDuplicate(t *testing.T) {
	s, repo, n := setupScheduler(t)
	ctx := context.Background()
	req := Request{Cedula: "123", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30, Motivo: "Control"}

	apt, err := s.Schedule(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "09:30", apt.HoraFin)
	assert.NotEmpty(t, apt.ID)

	_, err = s.Schedule(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateAppointment)

	rows := repo.Appointments.Find(func(a models.Appointment) bool { return a.Slot("123", "2024-06-01", "09:00") })
	assert.Len(t, rows, 1)
	assert.Len(t, n.sent, 1)
}

func TestSchedule_NormalizesInput(t *testing.T) {
	s, _, _ := setupScheduler(t)
	ctx := context.Background()

	_, err := s.Schedule(ctx, Request{Cedula: "123", Fecha: "2024-06-01", Hora: "9:00", DuracionMinutos: 15})
	require.NoError(t, err)

	_, err = s.Schedule(ctx, Request{Cedula: "123", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 15})
	assert.ErrorIs(t, err, ErrDuplicateAppointment)
}

func TestSchedule_Validation(t *testing.T) {
	s, repo, _ := setupScheduler(t)
	ctx := context.Background()

	_, err := s.Schedule(ctx, Request{Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30})
	assert.ErrorIs(t, err, models.ErrMissingRequiredField)

	_, err = s.Schedule(ctx, Request{Cedula: "000", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30})
	assert.ErrorIs(t, err, models.ErrPatientNotFound)

	_, err = s.Schedule(ctx, Request{Cedula: "123", Fecha: "junio", Hora: "09:00", DuracionMinutos: 30})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = s.Schedule(ctx, Request{Cedula: "123", Fecha: "2024-06-01", Hora: "23:50", DuracionMinutos: 15})
	assert.ErrorIs(t, err, ErrCrossesMidnight)

	assert.Zero(t, repo.Appointments.Len())
}

func TestSchedule_ConcurrentDuplicatesInsertOnce(t *testing.T) {
	s, repo, _ := setupScheduler(t)
	req := Request{Cedula: "123", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Schedule(context.Background(), req)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.Appointments.Len())
}

func TestListUpcoming_FiltersSortsAndJoinsNames(t *testing.T) {
	s, repo, _ := setupScheduler(t)
	ctx := context.Background()
	for _, a := range []models.Appointment{
		{ID: "1", Cedula: "456", Fecha: "2024-06-02", Hora: "08:00", HoraFin: "08:30"},
		{ID: "2", Cedula: "123", Fecha: "2024-05-31", Hora: "10:00", HoraFin: "10:30"},
		{ID: "3", Cedula: "123", Fecha: "2024-06-01", Hora: "15:00", HoraFin: "15:30"},
		{ID: "4", Cedula: "789", Fecha: "2024-06-01", Hora: "09:00", HoraFin: "09:30"},
	} {
		require.NoError(t, repo.Appointments.Append(ctx, a))
	}

	got := s.ListUpcoming(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	require.Len(t, got, 3)
	assert.Equal(t, []string{"4", "3", "1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "", got[0].Nombre)
	assert.Equal(t, "Ana Gomez", got[1].Nombre)
	assert.Equal(t, "Luis Perez", got[2].Nombre)
	for _, e := range got {
		assert.GreaterOrEqual(t, e.Fecha, "2024-06-01")
	}
}

func TestDelete_ByID(t *testing.T) {
	s, repo, _ := setupScheduler(t)
	ctx := context.Background()
	a, err := s.Schedule(ctx, Request{Cedula: "123", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30})
	require.NoError(t, err)
	b, err := s.Schedule(ctx, Request{Cedula: "123", Fecha: "2024-06-01", Hora: "10:00", DuracionMinutos: 30})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Delete(ctx, a.ID), ErrAppointmentNotFound)

	rows := repo.Appointments.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, b.ID, rows[0].ID)
}

func TestDeleteMatching_RemovesOnlyThatSlot(t *testing.T) {
	s, repo, _ := setupScheduler(t)
	ctx := context.Background()
	for _, r := range []Request{
		{Cedula: "123", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30},
		{Cedula: "123", Fecha: "2024-06-01", Hora: "10:00", DuracionMinutos: 30},
		{Cedula: "456", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30},
	} {
		_, err := s.Schedule(ctx, r)
		require.NoError(t, err)
	}

	n, err := s.DeleteMatching(ctx, "123", "2024-06-01", "9:00")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	left := repo.Appointments.Rows()
	require.Len(t, left, 2)
	assert.True(t, left[0].Slot("123", "2024-06-01", "10:00"))
	assert.True(t, left[1].Slot("456", "2024-06-01", "09:00"))

	_, err = s.DeleteMatching(ctx, "123", "2024-06-01", "09:00")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_FiltersByPatient(t *testing.T) {
	s, _, _ := setupScheduler(t)
	ctx := context.Background()
	_, err := s.Schedule(ctx, Request{Cedula: "123", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30})
	require.NoError(t, err)
	_, err = s.Schedule(ctx, Request{Cedula: "456", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30})
	require.NoError(t, err)

	assert.Len(t, s.List(""), 2)
	only := s.List("456")
	require.Len(t, only, 1)
	assert.Equal(t, "Luis Perez", only[0].Nombre)

	assert.Len(t, s.Due(time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)), 2)
}

func TestSchedule_CedulaIsCanonical(t *testing.T) {
	s, _, _ := setupScheduler(t)
	ctx := context.Background()

	apt, err := s.Schedule(ctx, Request{Cedula: "123.0", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30})
	require.NoError(t, err)
	assert.Equal(t, "123", apt.Cedula)

	_, err = s.Schedule(ctx, Request{Cedula: "123", Fecha: "2024-06-01", Hora: "09:00", DuracionMinutos: 30})
	assert.ErrorIs(t, err, ErrDuplicateAppointment)
	assert.Len(t, s.List("123.0"), 1)

	n, err := s.DeleteMatching(ctx, "123.0", "2024-06-01", "09:00")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
