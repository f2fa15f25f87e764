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

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, organization_id, customer_id, batch_id, batch_code,
	quantity, unit, truck_plate, delivery_note, processed_at, created_at, created_by`

// ShipmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.OrganizationID, shipment.CustomerID,
		shipment.BatchID, shipment.BatchCode, shipment.Quantity, shipment.Unit,
		shipment.TruckPlate, shipment.DeliveryNote, shipment.ProcessedAt,
		shipment.CreatedAt, shipment.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: albarán duplicado", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByDeliveryNote localiza una expedición por albarán dentro de la organización.
func (r *ShipmentRepo) GetByDeliveryNote(organizationID, deliveryNote string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE organization_id = $1 AND delivery_note = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, organizationID, deliveryNote))
}

func (r *ShipmentRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + ` FROM shipments
		WHERE organization_id = $1 ORDER BY processed_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(
			&s.ID, &s.OrganizationID, &s.CustomerID,
			&s.BatchID, &s.BatchCode, &s.Quantity, &s.Unit,
			&s.TruckPlate, &s.DeliveryNote, &s.ProcessedAt,
			&s.CreatedAt, &s.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *ShipmentRepo) scanOne(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	err := row.Scan(
		&s.ID, &s.OrganizationID, &s.CustomerID,
		&s.BatchID, &s.BatchCode, &s.Quantity, &s.Unit,
		&s.TruckPlate, &s.DeliveryNote, &s.ProcessedAt,
		&s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}
