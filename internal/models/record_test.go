package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	cases := map[string]string{
		"9:00":     "09:00",
		"09:30":    "09:30",
		"14:05:00": "14:05",
	}
	for in, want := range cases {
		got, err := NormalizeClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := NormalizeClock("25:00")
	assert.Error(t, err)
}

func TestParseDate_AcceptsPandasDatetime(t *testing.T) {
	got, err := NormalizeDate("2024-06-01 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got)

	_, err = NormalizeDate("01/06/2024")
	assert.Error(t, err)
}

func TestPatientFromRecord_LegacyRow(t *testing.T) {
	p, err := PatientFromRecord(Record{
		"cedula":      "123.0",
		"nombre":      "Ana Gomez",
		"telefono":    "3001234567",
		"valor_total": "1000000.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "123", p.Cedula)
	require.NotNil(t, p.ValorTotal)
	assert.Equal(t, 1000000.0, *p.ValorTotal)
	assert.Equal(t, "123 - Ana Gomez", p.Label())
	assert.Equal(t, "1000000", p.ToRecord()["valor_total"])
}

func TestPatientFromRecord_MissingCedula(t *testing.T) {
	_, err := PatientFromRecord(Record{"nombre": "Ana"})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestPaymentFromRecord_BadAmount(t *testing.T) {
	_, err := PaymentFromRecord(Record{
		"id":          "p1",
		"cedula":      "123",
		"fecha_abono": "2024-06-01",
		"valor_abono": "mucho",
	})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestAppointment_Before(t *testing.T) {
	a := Appointment{Fecha: "2024-06-01", Hora: "09:00"}
	b := Appointment{Fecha: "2024-06-01", Hora: "10:00"}
	c := Appointment{Fecha: "2024-05-31", Hora: "18:00"}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, c.Before(a))
}
