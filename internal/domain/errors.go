package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Facturación.
	ErrEstadoInvalido      = errors.New("el documento no está en un estado válido para la operación")
	ErrPagosIncompletos    = errors.New("la suma de pagos no cubre el total de la factura")
	ErrLoteAgotado         = errors.New("el lote de números de control está agotado")
	ErrSinLoteActivo       = errors.New("la empresa no tiene un lote de números de control activo")
	ErrDocumentoNoAfectado = errors.New("la nota no referencia un documento emitido")
)
