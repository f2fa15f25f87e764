package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

var _ repository.ProductionRecordRepository = (*ProductionRecordRepo)(nil)

const productionColumns = `id, organization_id, stage, output_batch_id, output_batch_code,
	input_quantity, output_quantity, unit, notes, performed_at, created_at, created_by`

// ProductionRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
// El manifiesto de entrada vive en production_record_inputs, relación
// uno-a-muchos, nunca arrays serializados en texto.
type ProductionRecordRepo struct {
	q Querier
}

// NewProductionRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRecordRepository(q Querier) *ProductionRecordRepo {
	return &ProductionRecordRepo{q: q}
}

// Create persiste el registro y sus líneas de manifiesto.
func (r *ProductionRecordRepo) Create(rec *entity.ProductionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_records (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.OrganizationID, rec.Stage, rec.OutputBatchID, rec.OutputBatchCode,
		rec.InputQuantity, rec.OutputQuantity, rec.Unit, rec.Notes,
		rec.PerformedAt, rec.CreatedAt, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert production record: %w", err)
	}
	for i := range rec.Inputs {
		line := &rec.Inputs[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.ProductionID = rec.ID
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO production_record_inputs (id, production_id, input_batch_id, input_batch_code, quantity_consumed, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, line.ProductionID, line.InputBatchID, line.InputBatchCode, line.QuantityConsumed, i,
		)
		if err != nil {
			return fmt.Errorf("insert production input: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un registro con su manifiesto.
func (r *ProductionRecordRepo) GetByID(id string) (*entity.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records WHERE id = $1`
	var rec entity.ProductionRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.OrganizationID, &rec.Stage, &rec.OutputBatchID, &rec.OutputBatchCode,
		&rec.InputQuantity, &rec.OutputQuantity, &rec.Unit, &rec.Notes,
		&rec.PerformedAt, &rec.CreatedAt, &rec.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production record: %w", err)
	}
	if err := r.loadInputs(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByOutputBatch lista los registros cuya salida es el lote dado.
func (r *ProductionRecordRepo) ListByOutputBatch(outputBatchID string) ([]*entity.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records WHERE output_batch_id = $1 ORDER BY performed_at`
	return r.list(query, outputBatchID)
}

// ListByOrganization lista registros de la organización, más recientes primero.
func (r *ProductionRecordRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.ProductionRecord, error) {
	query := `
		SELECT ` + productionColumns + ` FROM production_records
		WHERE organization_id = $1 ORDER BY performed_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, organizationID, limit, offset)
}

// DeleteByOutputBatch borra registros y manifiestos de un lote de salida (cascada).
func (r *ProductionRecordRepo) DeleteByOutputBatch(outputBatchID string) error {
	_, err := r.q.Exec(context.Background(), `
		DELETE FROM production_record_inputs
		WHERE production_id IN (SELECT id FROM production_records WHERE output_batch_id = $1)`,
		outputBatchID)
	if err != nil {
		return fmt.Errorf("delete production inputs: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`DELETE FROM production_records WHERE output_batch_id = $1`, outputBatchID)
	if err != nil {
		return fmt.Errorf("delete production records: %w", err)
	}
	return nil
}

func (r *ProductionRecordRepo) list(query string, args ...any) ([]*entity.ProductionRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production records: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionRecord
	for rows.Next() {
		var rec entity.ProductionRecord
		if err := rows.Scan(
			&rec.ID, &rec.OrganizationID, &rec.Stage, &rec.OutputBatchID, &rec.OutputBatchCode,
			&rec.InputQuantity, &rec.OutputQuantity, &rec.Unit, &rec.Notes,
			&rec.PerformedAt, &rec.CreatedAt, &rec.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan production record: %w", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range list {
		if err := r.loadInputs(rec); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *ProductionRecordRepo) loadInputs(rec *entity.ProductionRecord) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, production_id, input_batch_id, input_batch_code, quantity_consumed
		FROM production_record_inputs WHERE production_id = $1 ORDER BY position`,
		rec.ID)
	if err != nil {
		return fmt.Errorf("load production inputs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.ProductionInput
		if err := rows.Scan(&line.ID, &line.ProductionID, &line.InputBatchID, &line.InputBatchCode, &line.QuantityConsumed); err != nil {
			return fmt.Errorf("scan production input: %w", err)
		}
		rec.Inputs = append(rec.Inputs, line)
	}
	return rows.Err()
}
