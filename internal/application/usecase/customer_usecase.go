package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(organizationID string, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
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
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID obtiene un cliente de la organización.
func (uc *CustomerUseCase) GetByID(organizationID, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List lista los clientes de la organización.
func (uc *CustomerUseCase) List(organizationID string, limit, offset int) ([]*entity.Customer, error) {
	return uc.repo.ListByOrganization(organizationID, limit, offset)
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(organizationID, id string) error {
	if _, err := uc.GetByID(organizationID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
