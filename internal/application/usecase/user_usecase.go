package usecase

import (
	"time"

	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios (administración de la
// empresa: listar, cambiar rol, desactivar). El alta con password vive en auth.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

// ListByCompany lista los usuarios de la empresa.
func (uc *UserUseCase) ListByCompany(companyID string, limit, offset int) ([]*dto.UserResponse, error) {
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
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, entityToUserResponse(u))
	}
	return out, nil
}

// ChangeRole cambia el rol de un usuario de la empresa.
func (uc *UserUseCase) ChangeRole(companyID, userID, role string) (*dto.UserResponse, error) {
	if role != entity.RoleAdmin && role != entity.RoleFacturador && role != entity.RoleConsulta {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil || user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Deactivate desactiva un usuario (no se elimina: sus documentos lo referencian).
func (uc *UserUseCase) Deactivate(companyID, userID string) error {
	user, err := uc.repo.GetByID(userID)
	if err != nil || user == nil {
		return domain.ErrUserNotFound
	}
	if user.CompanyID != companyID {
		return domain.ErrForbidden
	}
	user.Status = "inactive"
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
