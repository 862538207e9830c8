package entity

import "time"

// ControlNumberBatch es un lote de números de control autorizado a la empresa
// por la imprenta digital. Los números de control son correlativos dentro del
// rango [Desde, Hasta]; Siguiente es el próximo a asignar.
type ControlNumberBatch struct {
	ID        string
	CompanyID string
	Serie     string // serie del lote, ej. "00"
	Desde     int64
	Hasta     int64
	Siguiente int64
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Agotado indica si el lote no tiene números disponibles.
func (b *ControlNumberBatch) Agotado() bool {
	return b.Siguiente > b.Hasta
}
