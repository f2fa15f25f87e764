package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

var _ repository.ProductStockRepository = (*ProductStockRepo)(nil)

// ProductStockRepo implementación de ProductStockRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductStockRepo struct {
	q Querier
}

// NewProductStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewProductStockRepository(q Querier) *ProductStockRepo {
	return &ProductStockRepo{q: q}
}

// Get obtiene el stock actual de (producto, unidad). Fila ausente = cero.
func (r *ProductStockRepo) Get(organizationID, productID, unit string) (*entity.ProductStock, error) {
	query := `
		SELECT organization_id, product_id, unit, quantity, updated_at
		FROM product_stock WHERE organization_id = $1 AND product_id = $2 AND unit = $3`
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, organizationID, productID, unit).Scan(
		&s.OrganizationID, &s.ProductID, &s.Unit, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.ProductStock{
				OrganizationID: organizationID, ProductID: productID, Unit: unit, Quantity: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get product stock: %w", err)
	}
	return &s, nil
}

// ApplyDelta suma un delta al stock de (producto, unidad) en una sola
// sentencia. El upsert aditivo crea la fila si no existe y hace el incremento
// atómico en el servidor: dos escritores concurrentes nunca se pisan, ni
// siquiera en la primera escritura de un par producto/unidad.
func (r *ProductStockRepo) ApplyDelta(organizationID, productID, unit string, delta decimal.Decimal) error {
	query := `
		INSERT INTO product_stock (organization_id, product_id, unit, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (organization_id, product_id, unit)
		DO UPDATE SET quantity = product_stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, organizationID, productID, unit, delta)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// List devuelve el stock de la organización ordenado por producto y unidad.
func (r *ProductStockRepo) List(organizationID string) ([]*entity.ProductStock, error) {
	query := `
		SELECT organization_id, product_id, unit, quantity, updated_at
		FROM product_stock WHERE organization_id = $1
		ORDER BY product_id, unit`
	rows, err := r.q.Query(context.Background(), query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list product stock: %w", err)
	}
	return collectStock(rows)
}

// Recompute recalcula el stock desde cero: suma de lotes en RECEPCION por
// (producto, unidad). Verificación de consistencia del mantenimiento incremental.
func (r *ProductStockRepo) Recompute(organizationID string) ([]*entity.ProductStock, error) {
	query := `
		SELECT organization_id, product_id, unit, SUM(quantity) AS quantity, now() AS updated_at
		FROM batches
		WHERE organization_id = $1 AND status = $2
		GROUP BY organization_id, product_id, unit
		ORDER BY product_id, unit`
	rows, err := r.q.Query(context.Background(), query, organizationID, entity.StatusRecepcion)
	if err != nil {
		return nil, fmt.Errorf("recompute product stock: %w", err)
	}
	return collectStock(rows)
}

func collectStock(rows pgx.Rows) ([]*entity.ProductStock, error) {
	defer rows.Close()
	var list []*entity.ProductStock
	for rows.Next() {
		var s entity.ProductStock
		if err := rows.Scan(&s.OrganizationID, &s.ProductID, &s.Unit, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
