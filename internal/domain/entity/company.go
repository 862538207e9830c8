package entity

import "time"

// Company representa la empresa emisora de facturas (contribuyente, enfoque Venezuela).
type Company struct {
	ID        string
	Name      string
	RIF       string // RIF venezolano: letra + 8 dígitos + dígito verificador (J-12345678-9)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
