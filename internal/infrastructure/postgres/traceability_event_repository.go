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

var _ repository.TraceabilityEventRepository = (*TraceabilityEventRepo)(nil)

const eventColumns = `id, organization_id, type, from_stage, to_stage,
	output_batch_id, output_batch_code, quantity, unit,
	supplier_id, product_id, quality_approved, quality_check_id,
	shipment_id, customer_id, delivery_note, temperature, notary_ref,
	performed_at, created_at, created_by`

// TraceabilityEventRepo implementación sobre PostgreSQL (usable con pool o tx).
// Registro append-only: solo Create, SetNotaryRef y el borrado en cascada
// administrativo tocan filas existentes.
type TraceabilityEventRepo struct {
	q Querier
}

// NewTraceabilityEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTraceabilityEventRepository(q Querier) *TraceabilityEventRepo {
	return &TraceabilityEventRepo{q: q}
}

// Create persiste el evento y sus referencias de entrada.
func (r *TraceabilityEventRepo) Create(event *entity.TraceabilityEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	query := `
		INSERT INTO traceability_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.OrganizationID, event.Type, event.FromStage, event.ToStage,
		event.OutputBatchID, event.OutputBatchCode, event.Quantity, event.Unit,
		event.SupplierID, event.ProductID, event.QualityApproved, event.QualityCheckID,
		event.ShipmentID, event.CustomerID, event.DeliveryNote, event.Temperature, event.NotaryRef,
		event.PerformedAt, event.CreatedAt, event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert traceability event: %w", err)
	}
	for i := range event.Inputs {
		in := &event.Inputs[i]
		in.EventID = event.ID
		in.Position = i
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO traceability_event_inputs (event_id, batch_id, batch_code, position)
			VALUES ($1, $2, $3, $4)`,
			in.EventID, in.BatchID, in.BatchCode, in.Position,
		)
		if err != nil {
			return fmt.Errorf("insert traceability event input: %w", err)
		}
	}
	return nil
}

func (r *TraceabilityEventRepo) GetByID(id string) (*entity.TraceabilityEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM traceability_events WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByTypeAndOutputCodes es la consulta base del recorrido hacia atrás:
// eventos de un tipo cuya salida está en el conjunto de códigos.
func (r *TraceabilityEventRepo) ListByTypeAndOutputCodes(organizationID, eventType string, outputCodes []string) ([]*entity.TraceabilityEvent, error) {
	if len(outputCodes) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + eventColumns + ` FROM traceability_events
		WHERE organization_id = $1 AND type = $2 AND output_batch_code = ANY($3)
		ORDER BY performed_at ASC`
	return r.list(query, organizationID, eventType, outputCodes)
}

func (r *TraceabilityEventRepo) FindByShipment(organizationID, shipmentID string) (*entity.TraceabilityEvent, error) {
	query := `
		SELECT ` + eventColumns + ` FROM traceability_events
		WHERE organization_id = $1 AND shipment_id = $2 AND type = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, organizationID, shipmentID, entity.EventExpedicion))
}

func (r *TraceabilityEventRepo) DeleteByOutputBatch(outputBatchID string) error {
	_, err := r.q.Exec(context.Background(), `
		DELETE FROM traceability_event_inputs
		WHERE event_id IN (SELECT id FROM traceability_events WHERE output_batch_id = $1)`,
		outputBatchID)
	if err != nil {
		return fmt.Errorf("delete event inputs: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`DELETE FROM traceability_events WHERE output_batch_id = $1`, outputBatchID)
	if err != nil {
		return fmt.Errorf("delete traceability events: %w", err)
	}
	return nil
}

func (r *TraceabilityEventRepo) SetNotaryRef(eventID, ref string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE traceability_events SET notary_ref = $2 WHERE id = $1`, eventID, ref)
	if err != nil {
		return fmt.Errorf("set notary ref: %w", err)
	}
	return nil
}

func (r *TraceabilityEventRepo) scanOne(row pgx.Row) (*entity.TraceabilityEvent, error) {
	var e entity.TraceabilityEvent
	err := row.Scan(
		&e.ID, &e.OrganizationID, &e.Type, &e.FromStage, &e.ToStage,
		&e.OutputBatchID, &e.OutputBatchCode, &e.Quantity, &e.Unit,
		&e.SupplierID, &e.ProductID, &e.QualityApproved, &e.QualityCheckID,
		&e.ShipmentID, &e.CustomerID, &e.DeliveryNote, &e.Temperature, &e.NotaryRef,
		&e.PerformedAt, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get traceability event: %w", err)
	}
	if err := r.loadInputs(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *TraceabilityEventRepo) list(query string, args ...any) ([]*entity.TraceabilityEvent, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list traceability events: %w", err)
	}
	defer rows.Close()
	var list []*entity.TraceabilityEvent
	for rows.Next() {
		var e entity.TraceabilityEvent
		if err := rows.Scan(
			&e.ID, &e.OrganizationID, &e.Type, &e.FromStage, &e.ToStage,
			&e.OutputBatchID, &e.OutputBatchCode, &e.Quantity, &e.Unit,
			&e.SupplierID, &e.ProductID, &e.QualityApproved, &e.QualityCheckID,
			&e.ShipmentID, &e.CustomerID, &e.DeliveryNote, &e.Temperature, &e.NotaryRef,
			&e.PerformedAt, &e.CreatedAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan traceability event: %w", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, e := range list {
		if err := r.loadInputs(e); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *TraceabilityEventRepo) loadInputs(e *entity.TraceabilityEvent) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT event_id, batch_id, batch_code, position
		FROM traceability_event_inputs WHERE event_id = $1 ORDER BY position`,
		e.ID)
	if err != nil {
		return fmt.Errorf("load event inputs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var in entity.EventInput
		if err := rows.Scan(&in.EventID, &in.BatchID, &in.BatchCode, &in.Position); err != nil {
			return fmt.Errorf("scan event input: %w", err)
		}
		e.Inputs = append(e.Inputs, in)
	}
	return rows.Err()
}
