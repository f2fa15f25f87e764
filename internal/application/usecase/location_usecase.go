package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones de planta.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación.
func (uc *LocationUseCase) Create(organizationID string, in dto.CreateLocationRequest) (*entity.Location, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	l := &entity.Location{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(l); err != nil {
		return nil, err
	}
	return l, nil
}

// List lista las ubicaciones de la organización.
func (uc *LocationUseCase) List(organizationID string, limit, offset int) ([]*entity.Location, error) {
	return uc.repo.ListByOrganization(organizationID, limit, offset)
}

// Delete elimina una ubicación.
func (uc *LocationUseCase) Delete(organizationID, id string) error {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if l == nil || l.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
