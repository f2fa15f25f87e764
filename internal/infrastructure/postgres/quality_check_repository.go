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

var _ repository.QualityCheckRepository = (*QualityCheckRepo)(nil)

const qualityColumns = `id, organization_id, batch_id, batch_code, result, notes,
	expires_at, decided_at, created_at, created_by`

// QualityCheckRepo implementación sobre PostgreSQL (usable con pool o tx).
type QualityCheckRepo struct {
	q Querier
}

func NewQualityCheckRepository(q Querier) *QualityCheckRepo {
	return &QualityCheckRepo{q: q}
}

func (r *QualityCheckRepo) Create(check *entity.QualityCheck) error {
	if check.ID == "" {
		check.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quality_checks (` + qualityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		check.ID, check.OrganizationID, check.BatchID, check.BatchCode,
		check.Result, check.Notes, check.ExpiresAt, check.DecidedAt,
		check.CreatedAt, check.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert quality check: %w", err)
	}
	return nil
}

func (r *QualityCheckRepo) GetByID(id string) (*entity.QualityCheck, error) {
	query := `SELECT ` + qualityColumns + ` FROM quality_checks WHERE id = $1`
	var c entity.QualityCheck
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.OrganizationID, &c.BatchID, &c.BatchCode,
		&c.Result, &c.Notes, &c.ExpiresAt, &c.DecidedAt,
		&c.CreatedAt, &c.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quality check: %w", err)
	}
	return &c, nil
}

func (r *QualityCheckRepo) ListByBatch(batchID string) ([]*entity.QualityCheck, error) {
	query := `SELECT ` + qualityColumns + ` FROM quality_checks WHERE batch_id = $1 ORDER BY decided_at`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list quality checks: %w", err)
	}
	defer rows.Close()
	var list []*entity.QualityCheck
	for rows.Next() {
		var c entity.QualityCheck
		if err := rows.Scan(
			&c.ID, &c.OrganizationID, &c.BatchID, &c.BatchCode,
			&c.Result, &c.Notes, &c.ExpiresAt, &c.DecidedAt,
			&c.CreatedAt, &c.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan quality check: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *QualityCheckRepo) DeleteByBatch(batchID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM quality_checks WHERE batch_id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete quality checks: %w", err)
	}
	return nil
}
