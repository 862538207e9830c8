package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem del catálogo.
// Alicuota opcional: en cero se aplica la alícuota estatutaria del código IVA.
type CreateItemRequest struct {
	Codigo      string          `json:"codigo" validate:"required,min=1,max=50"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CodigoIVA   string          `json:"codigo_iva" validate:"required,oneof=G R A E NS"`
	Alicuota    decimal.Decimal `json:"alicuota,omitempty"`
	UnitMeasure string          `json:"unit_measure"`
}

// UpdateItemRequest entrada para actualizar un ítem (campos opcionales).
type UpdateItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CodigoIVA   *string          `json:"codigo_iva" validate:"omitempty,oneof=G R A E NS"`
	Alicuota    *decimal.Decimal `json:"alicuota"`
	UnitMeasure *string          `json:"unit_measure"`
	Active      *bool            `json:"active"`
}

// ItemResponse ítem del catálogo en respuestas.
type ItemResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Codigo      string          `json:"codigo"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CodigoIVA   string          `json:"codigo_iva"`
	Alicuota    decimal.Decimal `json:"alicuota"`
	UnitMeasure string          `json:"unit_measure"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
