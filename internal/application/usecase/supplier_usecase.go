package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(organizationID string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		TaxID:          in.TaxID,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID obtiene un proveedor de la organización.
func (uc *SupplierUseCase) GetByID(organizationID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List lista los proveedores de la organización.
func (uc *SupplierUseCase) List(organizationID string, limit, offset int) ([]*entity.Supplier, error) {
	return uc.repo.ListByOrganization(organizationID, limit, offset)
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(organizationID, id string) error {
	if _, err := uc.GetByID(organizationID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
