package repository

import "github.com/facturave/facturave-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para el catálogo de ítems (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCompanyAndCodigo(companyID, codigo string) (*entity.Item, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	Delete(id string) error
}
