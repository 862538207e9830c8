package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"      // administra usuarios, tasas y numeración
	RoleFacturador = "facturador" // crea y emite facturas
	RoleConsulta   = "consulta"   // solo lectura (reportes, libro de ventas)
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, facturador, consulta
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
