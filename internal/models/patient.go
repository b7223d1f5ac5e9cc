package models

import "fmt"

var PatientColumns = []string{"cedula", "nombre", "telefono", "fecha_nacimiento", "email", "valor_total"}

type Patient struct {
	Cedula          string   `json:"cedula"`
	Nombre          string   `json:"nombre"`
	Telefono        string   `json:"telefono"`
	FechaNacimiento string   `json:"fecha_nacimiento"`
	Email           string   `json:"email"`
	ValorTotal      *float64 `json:"valor_total,omitempty"`
}

// Label is the "cedula - nombre" text the patient selector shows.
func (p Patient) Label() string {
	return fmt.Sprintf("%s - %s", p.Cedula, p.Nombre)
}

func (p Patient) ToRecord() Record {
	return Record{
		"cedula":           p.Cedula,
		"nombre":           p.Nombre,
		"telefono":         p.Telefono,
		"fecha_nacimiento": p.FechaNacimiento,
		"email":            p.Email,
		"valor_total":      FormatAmount(p.ValorTotal),
	}
}

func PatientFromRecord(r Record) (Patient, error) {
	cedula, err := required("cedula", NormalizeCedula(r["cedula"]))
	if err != nil {
		return Patient{}, err
	}
	total, err := ParseAmount(r["valor_total"])
	if err != nil {
		return Patient{}, fieldError("valor_total", r["valor_total"], err)
	}
	return Patient{
		Cedula:          cedula,
		Nombre:          r["nombre"],
		Telefono:        NormalizePhone(r["telefono"]),
		FechaNacimiento: r["fecha_nacimiento"],
		Email:           r["email"],
		ValorTotal:      total,
	}, nil
}
