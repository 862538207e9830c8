package fiscal

import "errors"

// Errores del cálculo fiscal.
var (
	// ErrTasaNoDisponible: no hay tasa BCV positiva para calcular el equivalente
	// en divisa. El caller debe bloquear la emisión hasta registrar la tasa del día.
	ErrTasaNoDisponible = errors.New("tasa de cambio BCV no disponible")

	// ErrMontoNegativo: el monto a convertir en letras es negativo.
	ErrMontoNegativo = errors.New("el monto no puede ser negativo")
)
