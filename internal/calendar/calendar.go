// Package calendar turns appointments into events for the calendar widget
// and reads back the event the user clicked.
package calendar

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cvillegar/Odontologia/internal/ledger"
	"github.com/cvillegar/Odontologia/internal/scheduling"
)

var ErrMissingStart = errors.New("selected event has no start")

// Options configures the widget the events are rendered in.
type Options struct {
	InitialView string `json:"initialView"`
	Locale      string `json:"locale"`
	SlotMinTime string `json:"slotMinTime"`
	SlotMaxTime string `json:"slotMaxTime"`
}

var DefaultOptions = Options{
	InitialView: "timeGridWeek",
	Locale:      "es",
	SlotMinTime: "07:00:00",
	SlotMaxTime: "20:00:00",
}

type Props struct {
	Cedula     string   `json:"cedula"`
	ValorTotal *float64 `json:"valor_total,omitempty"`
	Abono      *float64 `json:"abono,omitempty"`
	Saldo      *float64 `json:"saldo,omitempty"`
	Motivo     string   `json:"motivo"`
}

type Event struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Start         string `json:"start"`
	End           string `json:"end"`
	ExtendedProps Props  `json:"extendedProps"`
}

// LedgerLookup returns the ledger of a patient, if any.
type LedgerLookup func(cedula string) (ledger.Summary, bool)

// Project builds one event per entry. Money fields are only filled in when
// lookup is not nil and knows the patient.
func Project(entries []scheduling.Entry, lookup LedgerLookup) []Event {
	events := make([]Event, 0, len(entries))
	for _, e := range entries {
		ev := Event{
			ID:    e.ID,
			Title: fmt.Sprintf("%s - %s", e.Nombre, e.Motivo),
			Start: fmt.Sprintf("%sT%s:00", e.Fecha, e.Hora),
			End:   fmt.Sprintf("%sT%s:00", e.Fecha, e.HoraFin),
			ExtendedProps: Props{
				Cedula: e.Cedula,
				Motivo: e.Motivo,
			},
		}
		if lookup != nil {
			if s, ok := lookup(e.Cedula); ok && s.TotalSource != ledger.SourceNone {
				total, paid, saldo := s.ValorTotal, s.TotalAbonado, s.Saldo
				ev.ExtendedProps.ValorTotal = &total
				ev.ExtendedProps.Abono = &paid
				ev.ExtendedProps.Saldo = &saldo
			}
		}
		events = append(events, ev)
	}
	return events
}

// SelectedEvent is the event the widget reports on a click. Props are
// echoed back loosely typed: money fields arrive as numbers, digit strings
// or "N/A".
type SelectedEvent struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Start         string         `json:"start"`
	ExtendedProps map[string]any `json:"extendedProps"`
}

// Selection is the widget's callback payload.
type Selection struct {
	EventClick *struct {
		Event SelectedEvent `json:"event"`
	} `json:"eventClick"`
}

type Detail struct {
	Paciente   string `json:"paciente"`
	Cedula     string `json:"cedula"`
	Motivo     string `json:"motivo"`
	Fecha      string `json:"fecha"`
	Hora       string `json:"hora"`
	ValorTotal string `json:"valor_total"`
	Abono      string `json:"abono"`
	Saldo      string `json:"saldo"`
}

// Describe extracts the detail view of a clicked event.
func Describe(ev SelectedEvent) (Detail, error) {
	if ev.Start == "" {
		return Detail{}, ErrMissingStart
	}
	if len(ev.Start) < 16 {
		return Detail{}, fmt.Errorf("start %q is not YYYY-MM-DDTHH:MM", ev.Start)
	}
	props := ev.ExtendedProps
	return Detail{
		Paciente:   ev.Title,
		Cedula:     text(props["cedula"]),
		Motivo:     text(props["motivo"]),
		Fecha:      ev.Start[:10],
		Hora:       ev.Start[11:16],
		ValorTotal: money(props["valor_total"]),
		Abono:      money(props["abono"]),
		Saldo:      money(props["saldo"]),
	}, nil
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders whole pesos as "$1,000,000"; nil is "N/A".
func FormatMoney(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return printer.Sprintf("$%d", int64(math.Round(*v)))
}

func money(v any) string {
	switch val := v.(type) {
	case float64:
		return FormatMoney(&val)
	case string:
		if n, err := strconv.ParseUint(val, 10, 63); err == nil {
			f := float64(n)
			return FormatMoney(&f)
		}
	}
	return text(v)
}

func text(v any) string {
	switch val := v.(type) {
	case nil:
		return "N/A"
	case string:
		if val == "" {
			return "N/A"
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
