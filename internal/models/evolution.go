package models

var EvolutionColumns = []string{"id", "cedula", "fecha", "motivo", "diagnostico", "tratamiento", "evolucion"}

// EvolutionNote is one clinical visit in a patient's history.
type EvolutionNote struct {
	ID          string `json:"id"`
	Cedula      string `json:"cedula"`
	Fecha       string `json:"fecha"`
	Motivo      string `json:"motivo"`
	Diagnostico string `json:"diagnostico"`
	Tratamiento string `json:"tratamiento"`
	Evolucion   string `json:"evolucion"`
}

func (e EvolutionNote) ToRecord() Record {
	return Record{
		"id":          e.ID,
		"cedula":      e.Cedula,
		"fecha":       e.Fecha,
		"motivo":      e.Motivo,
		"diagnostico": e.Diagnostico,
		"tratamiento": e.Tratamiento,
		"evolucion":   e.Evolucion,
	}
}

func EvolutionFromRecord(r Record) (EvolutionNote, error) {
	id, err := required("id", r["id"])
	if err != nil {
		return EvolutionNote{}, err
	}
	cedula, err := required("cedula", NormalizeCedula(r["cedula"]))
	if err != nil {
		return EvolutionNote{}, err
	}
	fecha, err := NormalizeDate(r["fecha"])
	if err != nil {
		return EvolutionNote{}, fieldError("fecha", r["fecha"], err)
	}
	return EvolutionNote{
		ID:          id,
		Cedula:      cedula,
		Fecha:       fecha,
		Motivo:      r["motivo"],
		Diagnostico: r["diagnostico"],
		Tratamiento: r["tratamiento"],
		Evolucion:   r["evolucion"],
	}, nil
}
