package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
	"github.com/agroconserva/trazabilidad-api/pkg/normalize"
)

// ProductUseCase casos de uso CRUD para productos (datos maestros).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(organizationID string, in dto.CreateProductRequest) (*entity.Product, error) {
	code := normalize.Code(in.Code)
	if code == "" || in.Name == "" || in.DefaultUnit == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(organizationID, code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Code:           code,
		Name:           in.Name,
		Variety:        in.Variety,
		Type:           in.Type,
		DefaultUnit:    in.DefaultUnit,
		ShelfLifeDays:  in.ShelfLifeDays,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto de la organización.
func (uc *ProductUseCase) GetByID(organizationID, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Update actualiza un producto. Campos nil no cambian.
func (uc *ProductUseCase) Update(organizationID, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	p, err := uc.GetByID(organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Variety != nil {
		p.Variety = *in.Variety
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.DefaultUnit != nil {
		p.DefaultUnit = *in.DefaultUnit
	}
	if in.ShelfLifeDays != nil {
		p.ShelfLifeDays = *in.ShelfLifeDays
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// List lista los productos de la organización.
func (uc *ProductUseCase) List(organizationID string, limit, offset int) ([]*entity.Product, error) {
	return uc.repo.ListByOrganization(organizationID, limit, offset)
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(organizationID, id string) error {
	if _, err := uc.GetByID(organizationID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
