package postgres

import (
	"context"
	"errors"

	"mockzen-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type batchRepo struct {
	db *pgxpool.Pool
}

func NewBatchRepository(db *pgxpool.Pool) domain.BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) Create(ctx context.Context, batch *domain.Batch) error {
	query := `INSERT INTO batches (institution_id, name, description, join_code, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		batch.InstitutionID, batch.Name, batch.Description, batch.JoinCode, batch.CreatedByID,
	).Scan(&batch.ID, &batch.CreatedAt)
}

func (r *batchRepo) GetByJoinCode(ctx context.Context, code string) (*domain.Batch, string, error) {
	query := `SELECT b.id, b.institution_id, b.name, b.description, b.join_code, b.created_by_id, b.created_at, i.name
		FROM batches b
		JOIN institutions i ON i.id = b.institution_id
		WHERE b.join_code = $1`

	var batch domain.Batch
	var institutionName string
	err := r.db.QueryRow(ctx, query, code).Scan(
		&batch.ID, &batch.InstitutionID, &batch.Name, &batch.Description,
		&batch.JoinCode, &batch.CreatedByID, &batch.CreatedAt, &institutionName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", err
	}
	return &batch, institutionName, nil
}

func (r *batchRepo) ListByInstitution(ctx context.Context, institutionID string) ([]domain.Batch, error) {
	query := `SELECT b.id, b.institution_id, b.name, b.description, b.join_code, b.created_by_id, b.created_at,
		COUNT(bm.id)
		FROM batches b
		LEFT JOIN batch_members bm ON bm.batch_id = b.id
		WHERE b.institution_id = $1
		GROUP BY b.id
		ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []domain.Batch
	for rows.Next() {
		var b domain.Batch
		if err := rows.Scan(&b.ID, &b.InstitutionID, &b.Name, &b.Description,
			&b.JoinCode, &b.CreatedByID, &b.CreatedAt, &b.MemberCount); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func (r *batchRepo) Delete(ctx context.Context, id, institutionID string) error {
	query := `DELETE FROM batches WHERE id = $1 AND institution_id = $2`
	tag, err := r.db.Exec(ctx, query, id, institutionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
