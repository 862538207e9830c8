package entity

import "time"

// Customer representa un cliente de la empresa (facturación).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	RIF       string // RIF o cédula (V-12345678)
	Address   string // dirección fiscal, requerida en el documento electrónico
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
