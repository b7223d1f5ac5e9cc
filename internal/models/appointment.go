package models

var AppointmentColumns = []string{"id", "cedula", "fecha", "hora", "hora_fin", "motivo"}

type Appointment struct {
	ID      string `json:"id"`
	Cedula  string `json:"cedula"`
	Fecha   string `json:"fecha"`
	Hora    string `json:"hora"`
	HoraFin string `json:"hora_fin"`
	Motivo  string `json:"motivo"`
}

// Slot reports whether a is booked for cedula at fecha/hora.
func (a Appointment) Slot(cedula, fecha, hora string) bool {
	return a.Cedula == cedula && a.Fecha == fecha && a.Hora == hora
}

// Before orders appointments by date, then start time.
func (a Appointment) Before(b Appointment) bool {
	if a.Fecha != b.Fecha {
		return a.Fecha < b.Fecha
	}
	return a.Hora < b.Hora
}

func (a Appointment) ToRecord() Record {
	return Record{
		"id":       a.ID,
		"cedula":   a.Cedula,
		"fecha":    a.Fecha,
		"hora":     a.Hora,
		"hora_fin": a.HoraFin,
		"motivo":   a.Motivo,
	}
}

func AppointmentFromRecord(r Record) (Appointment, error) {
	id, err := required("id", r["id"])
	if err != nil {
		return Appointment{}, err
	}
	cedula, err := required("cedula", NormalizeCedula(r["cedula"]))
	if err != nil {
		return Appointment{}, err
	}
	fecha, err := NormalizeDate(r["fecha"])
	if err != nil {
		return Appointment{}, fieldError("fecha", r["fecha"], err)
	}
	hora, err := NormalizeClock(r["hora"])
	if err != nil {
		return Appointment{}, fieldError("hora", r["hora"], err)
	}
	fin, err := NormalizeClock(r["hora_fin"])
	if err != nil {
		return Appointment{}, fieldError("hora_fin", r["hora_fin"], err)
	}
	return Appointment{
		ID:      id,
		Cedula:  cedula,
		Fecha:   fecha,
		Hora:    hora,
		HoraFin: fin,
		Motivo:  r["motivo"],
	}, nil
}
