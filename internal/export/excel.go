// Package export writes clinic data as Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/cvillegar/Odontologia/internal/ledger"
	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/scheduling"
)

const (
	PaymentsSheet     = "Pagos"
	AppointmentsSheet = "Citas"
)

var columns = []string{"A", "B", "C", "D", "E", "F"}

func newWorkbook(sheet string, headers []string) *excelize.File {
	file := excelize.NewFile()
	index := file.NewSheet(sheet)
	file.SetActiveSheet(index)
	file.DeleteSheet("Sheet1")
	for i, h := range headers {
		file.SetCellValue(sheet, columns[i]+"1", h)
	}
	return file
}

func setRow(file *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		file.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), v)
	}
}

// Payments writes the patient's abonos followed by the ledger totals.
func Payments(w io.Writer, patient models.Patient, summary ledger.Summary) error {
	file := newWorkbook(PaymentsSheet, []string{"Fecha abono", "Valor abono"})
	row := 2
	for _, p := range summary.Payments {
		setRow(file, PaymentsSheet, row, p.FechaAbono, p.ValorAbono)
		row++
	}

	row++
	setRow(file, PaymentsSheet, row, "Paciente", patient.Label())
	setRow(file, PaymentsSheet, row+1, "Total del tratamiento", summary.ValorTotal)
	setRow(file, PaymentsSheet, row+2, "Total abonado", summary.TotalAbonado)
	setRow(file, PaymentsSheet, row+3, "Saldo pendiente", summary.Saldo)
	return file.Write(w)
}

// Appointments writes one row per appointment.
func Appointments(w io.Writer, entries []scheduling.Entry) error {
	file := newWorkbook(AppointmentsSheet, []string{"Fecha", "Hora", "Hora fin", "Cedula", "Nombre", "Motivo"})
	for i, e := range entries {
		setRow(file, AppointmentsSheet, i+2, e.Fecha, e.Hora, e.HoraFin, e.Cedula, e.Nombre, e.Motivo)
	}
	return file.Write(w)
}
