package models

var PaymentColumns = []string{"id", "cedula", "valor_total", "fecha_abono", "valor_abono"}

// Payment is one abono toward a patient's treatment. ValorTotal is only
// present on rows written before the treatment total moved to the patient
// record.
type Payment struct {
	ID         string   `json:"id"`
	Cedula     string   `json:"cedula"`
	ValorTotal *float64 `json:"valor_total,omitempty"`
	FechaAbono string   `json:"fecha_abono"`
	ValorAbono float64  `json:"valor_abono"`
}

func (p Payment) ToRecord() Record {
	abono := p.ValorAbono
	return Record{
		"id":          p.ID,
		"cedula":      p.Cedula,
		"valor_total": FormatAmount(p.ValorTotal),
		"fecha_abono": p.FechaAbono,
		"valor_abono": FormatAmount(&abono),
	}
}

func PaymentFromRecord(r Record) (Payment, error) {
	id, err := required("id", r["id"])
	if err != nil {
		return Payment{}, err
	}
	cedula, err := required("cedula", NormalizeCedula(r["cedula"]))
	if err != nil {
		return Payment{}, err
	}
	total, err := ParseAmount(r["valor_total"])
	if err != nil {
		return Payment{}, fieldError("valor_total", r["valor_total"], err)
	}
	abono, err := ParseAmount(r["valor_abono"])
	if err != nil {
		return Payment{}, fieldError("valor_abono", r["valor_abono"], err)
	}
	fecha, err := NormalizeDate(r["fecha_abono"])
	if err != nil {
		return Payment{}, fieldError("fecha_abono", r["fecha_abono"], err)
	}
	p := Payment{ID: id, Cedula: cedula, ValorTotal: total, FechaAbono: fecha}
	if abono != nil {
		p.ValorAbono = *abono
	}
	return p, nil
}
