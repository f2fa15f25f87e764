package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, organization_id, code, product_id, supplier_id, initial_quantity, quantity,
	unit, temperature, truck_plate, delivery_note, location_id, status,
	manufactured_at, expires_at, arrived_at, processed_at, created_at, updated_at`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(b *entity.Batch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.OrganizationID, b.Code, b.ProductID, b.SupplierID, b.InitialQuantity, b.Quantity,
		b.Unit, b.Temperature, b.TruckPlate, b.DeliveryNote, b.LocationID, b.Status,
		b.ManufacturedAt, b.ExpiresAt, b.ArrivedAt, b.ProcessedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, b.Code)
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (r *BatchRepo) scanOne(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.OrganizationID, &b.Code, &b.ProductID, &b.SupplierID, &b.InitialQuantity, &b.Quantity,
		&b.Unit, &b.Temperature, &b.TruckPlate, &b.DeliveryNote, &b.LocationID, &b.Status,
		&b.ManufacturedAt, &b.ExpiresAt, &b.ArrivedAt, &b.ProcessedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	return &b, nil
}

// GetByID obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene y bloquea la fila del lote (SELECT FOR UPDATE).
func (r *BatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCode obtiene un lote por código dentro de la organización.
func (r *BatchRepo) GetByCode(organizationID, code string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE organization_id = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, organizationID, code))
}

// Update persiste los campos mutables de un lote.
func (r *BatchRepo) Update(b *entity.Batch) error {
	query := `
		UPDATE batches SET
			product_id = $2, supplier_id = $3, initial_quantity = $4, quantity = $5,
			unit = $6, temperature = $7, truck_plate = $8, delivery_note = $9,
			location_id = $10, status = $11, manufactured_at = $12, expires_at = $13,
			processed_at = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		b.ID, b.ProductID, b.SupplierID, b.InitialQuantity, b.Quantity,
		b.Unit, b.Temperature, b.TruckPlate, b.DeliveryNote,
		b.LocationID, b.Status, b.ManufacturedAt, b.ExpiresAt,
		b.ProcessedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila del lote. Las dependencias las borra el caso de uso.
func (r *BatchRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// ListByStatus lista lotes de la organización en un estado, más recientes primero.
func (r *BatchRepo) ListByStatus(organizationID, status string, limit, offset int) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM batches
		WHERE organization_id = $1 AND status = $2
		ORDER BY arrived_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, organizationID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches by status: %w", err)
	}
	return r.collect(rows)
}

// ListApproved lista lotes APROBADO con cantidad > 0, con filtro opcional de producto.
func (r *BatchRepo) ListApproved(organizationID, productID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM batches
		WHERE organization_id = $1 AND status = $2 AND quantity > 0`
	args := []any{organizationID, entity.StatusAprobado}
	if productID != "" {
		query += ` AND product_id = $3`
		args = append(args, productID)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approved batches: %w", err)
	}
	return r.collect(rows)
}

func (r *BatchRepo) collect(rows pgx.Rows) ([]*entity.Batch, error) {
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(
			&b.ID, &b.OrganizationID, &b.Code, &b.ProductID, &b.SupplierID, &b.InitialQuantity, &b.Quantity,
			&b.Unit, &b.Temperature, &b.TruckPlate, &b.DeliveryNote, &b.LocationID, &b.Status,
			&b.ManufacturedAt, &b.ExpiresAt, &b.ArrivedAt, &b.ProcessedAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
