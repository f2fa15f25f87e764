package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

var _ repository.BatchHistoryRepository = (*BatchHistoryRepo)(nil)

// BatchHistoryRepo implementación sobre PostgreSQL (usable con pool o tx).
type BatchHistoryRepo struct {
	q Querier
}

func NewBatchHistoryRepository(q Querier) *BatchHistoryRepo {
	return &BatchHistoryRepo{q: q}
}

func (r *BatchHistoryRepo) Create(history *entity.BatchHistory) error {
	if history.ID == "" {
		history.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO batch_history (id, organization_id, batch_id, from_status, to_status,
			from_location_id, to_location_id, notes, changed_at, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		history.ID, history.OrganizationID, history.BatchID,
		history.FromStatus, history.ToStatus,
		history.FromLocationID, history.ToLocationID,
		history.Notes, history.ChangedAt, history.ChangedBy,
	)
	if err != nil {
		return fmt.Errorf("insert batch history: %w", err)
	}
	return nil
}

func (r *BatchHistoryRepo) ListByBatch(batchID string) ([]*entity.BatchHistory, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, organization_id, batch_id, from_status, to_status,
			from_location_id, to_location_id, notes, changed_at, changed_by
		FROM batch_history WHERE batch_id = $1 ORDER BY changed_at`,
		batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch history: %w", err)
	}
	defer rows.Close()
	var list []*entity.BatchHistory
	for rows.Next() {
		var h entity.BatchHistory
		if err := rows.Scan(
			&h.ID, &h.OrganizationID, &h.BatchID, &h.FromStatus, &h.ToStatus,
			&h.FromLocationID, &h.ToLocationID, &h.Notes, &h.ChangedAt, &h.ChangedBy,
		); err != nil {
			return nil, fmt.Errorf("scan batch history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

func (r *BatchHistoryRepo) DeleteByBatch(batchID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM batch_history WHERE batch_id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete batch history: %w", err)
	}
	return nil
}
