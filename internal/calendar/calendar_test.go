package calendar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvillegar/Odontologia/internal/ledger"
	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/scheduling"
)

func entries() []scheduling.Entry {
	return []scheduling.Entry{
		{
			Appointment: models.Appointment{ID: "a1", Cedula: "123", Fecha: "2024-06-01", Hora: "09:00", HoraFin: "09:30", Motivo: "Limpieza"},
			Nombre:      "Ana Gomez",
		},
		{
			Appointment: models.Appointment{ID: "a2", Cedula: "999", Fecha: "2024-06-02", Hora: "14:00", HoraFin: "15:00", Motivo: "Control"},
		},
	}
}

func TestProject_WithoutLedger(t *testing.T) {
	events := Project(entries(), nil)

	require.Len(t, events, 2)
	ev := events[0]
	assert.Equal(t, "a1", ev.ID)
	assert.Equal(t, "Ana Gomez - Limpieza", ev.Title)
	assert.Equal(t, "2024-06-01T09:00:00", ev.Start)
	assert.Equal(t, "2024-06-01T09:30:00", ev.End)
	assert.Equal(t, "123", ev.ExtendedProps.Cedula)
	assert.Nil(t, ev.ExtendedProps.ValorTotal)
	assert.Nil(t, ev.ExtendedProps.Saldo)

	assert.Equal(t, " - Control", events[1].Title)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "valor_total")
}

func TestProject_WithLedger(t *testing.T) {
	lookup := func(cedula string) (ledger.Summary, bool) {
		if cedula != "123" {
			return ledger.Summary{}, false
		}
		return ledger.Compute("123", []models.Payment{{Cedula: "123", ValorAbono: 300000}}, models.Float(1000000)), true
	}

	events := Project(entries(), lookup)

	props := events[0].ExtendedProps
	require.NotNil(t, props.ValorTotal)
	assert.Equal(t, 1000000.0, *props.ValorTotal)
	assert.Equal(t, 300000.0, *props.Abono)
	assert.Equal(t, 700000.0, *props.Saldo)
	assert.Nil(t, events[1].ExtendedProps.Saldo)
}

func TestDescribe(t *testing.T) {
	var sel Selection
	payload := `{"eventClick":{"event":{"title":"Ana Gomez - Limpieza","start":"2024-06-01T09:00:00","extendedProps":{"cedula":"123","motivo":"Limpieza","valor_total":1000000,"abono":"300000","saldo":"N/A"}}}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &sel))
	require.NotNil(t, sel.EventClick)

	d, err := Describe(sel.EventClick.Event)
	require.NoError(t, err)

	assert.Equal(t, Detail{
		Paciente:   "Ana Gomez - Limpieza",
		Cedula:     "123",
		Motivo:     "Limpieza",
		Fecha:      "2024-06-01",
		Hora:       "09:00",
		ValorTotal: "$1,000,000",
		Abono:      "$300,000",
		Saldo:      "N/A",
	}, d)
}

func TestDescribe_MissingStart(t *testing.T) {
	_, err := Describe(SelectedEvent{Title: "x"})
	assert.ErrorIs(t, err, ErrMissingStart)

	_, err = Describe(SelectedEvent{Start: "2024-06-01"})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "N/A", FormatMoney(nil))
	assert.Equal(t, "$0", FormatMoney(models.Float(0)))
	assert.Equal(t, "$1,500", FormatMoney(models.Float(1499.6)))
}
