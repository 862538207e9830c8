package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/internal/domain/repository"
	"github.com/facturave/facturave-api/pkg/seniat"
)

// ItemUseCase aplica reglas de negocio para el catálogo de ítems.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso con el puerto de persistencia.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

var validCodigosIVA = map[fiscal.CodigoIVA]bool{
	fiscal.IVAGeneral: true, fiscal.IVAReducida: true, fiscal.IVAAdicional: true,
	fiscal.IVAExento: true, fiscal.IVANoSujeto: true,
}

// Create crea un ítem. El código (PLU) es único por empresa; la alícuota en
// cero usa la estatutaria del código IVA al facturar.
func (uc *ItemUseCase) Create(companyID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Codigo == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	codigoIVA := fiscal.CodigoIVA(in.CodigoIVA)
	if !validCodigosIVA[codigoIVA] {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.Alicuota.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	unit := in.UnitMeasure
	if unit == "" {
		unit = seniat.UnidadUnidad
	}
	if !seniat.ValidUnidades[unit] {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndCodigo(companyID, in.Codigo)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Codigo:      in.Codigo,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CodigoIVA:   codigoIVA,
		Alicuota:    in.Alicuota,
		UnitMeasure: unit,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return entityToItemResponse(item), nil
}

// GetByID obtiene un ítem validando pertenencia a la empresa.
func (uc *ItemUseCase) GetByID(companyID, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return entityToItemResponse(item), nil
}

// Update actualiza campos editables del ítem. El código no es editable:
// identifica al ítem en las líneas ya facturadas.
func (uc *ItemUseCase) Update(companyID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.CodigoIVA != nil {
		codigoIVA := fiscal.CodigoIVA(*in.CodigoIVA)
		if !validCodigosIVA[codigoIVA] {
			return nil, domain.ErrInvalidInput
		}
		item.CodigoIVA = codigoIVA
	}
	if in.Alicuota != nil {
		if in.Alicuota.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.Alicuota = *in.Alicuota
	}
	if in.UnitMeasure != nil {
		if !seniat.ValidUnidades[*in.UnitMeasure] {
			return nil, domain.ErrInvalidInput
		}
		item.UnitMeasure = *in.UnitMeasure
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return entityToItemResponse(item), nil
}

// List lista los ítems de la empresa con paginación.
func (uc *ItemUseCase) List(companyID string, limit, offset int) (*dto.ItemListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *entityToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:          it.ID,
		CompanyID:   it.CompanyID,
		Codigo:      it.Codigo,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		CodigoIVA:   string(it.CodigoIVA),
		Alicuota:    it.Alicuota,
		UnitMeasure: it.UnitMeasure,
		Active:      it.Active,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
