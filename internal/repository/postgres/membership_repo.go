package postgres

import (
	"context"
	"errors"

	"mockzen-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type membershipRepo struct {
	db *pgxpool.Pool
}

func NewMembershipRepository(db *pgxpool.Pool) domain.MembershipRepository {
	return &membershipRepo{db: db}
}

func (r *membershipRepo) IsInstitutionMember(ctx context.Context, institutionID, userID string) (bool, error) {
	query := `SELECT id FROM institution_members WHERE institution_id = $1 AND user_id = $2`
	var id string
	err := r.db.QueryRow(ctx, query, institutionID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *membershipRepo) IsBatchMember(ctx context.Context, batchID, userID string) (bool, error) {
	query := `SELECT id FROM batch_members WHERE batch_id = $1 AND user_id = $2`
	var id string
	err := r.db.QueryRow(ctx, query, batchID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *membershipRepo) AddInstitutionMember(ctx context.Context, institutionID, userID, role string) error {
	query := `INSERT INTO institution_members (institution_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, NOW())`
	_, err := r.db.Exec(ctx, query, institutionID, userID, role)
	return err
}

func (r *membershipRepo) AddBatchMember(ctx context.Context, batchID, userID string) error {
	query := `INSERT INTO batch_members (batch_id, user_id, added_at) VALUES ($1, $2, NOW())`
	_, err := r.db.Exec(ctx, query, batchID, userID)
	return err
}

func (r *membershipRepo) ListInstitutionMembers(ctx context.Context, institutionID string) ([]domain.Membership, error) {
	query := `SELECT im.id, im.institution_id, im.user_id, im.role, im.joined_at, u.name, u.email
		FROM institution_members im
		LEFT JOIN users u ON u.id = im.user_id
		WHERE im.institution_id = $1
		ORDER BY im.joined_at DESC`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.InstitutionID, &m.UserID, &m.Role, &m.JoinedAt, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *membershipRepo) MemberIDs(ctx context.Context, institutionID string) ([]string, error) {
	query := `SELECT user_id FROM institution_members WHERE institution_id = $1`
	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *membershipRepo) RemoveInstitutionMember(ctx context.Context, institutionID, userID string) error {
	query := `DELETE FROM institution_members WHERE institution_id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, institutionID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *membershipRepo) UpdateRole(ctx context.Context, institutionID, userID, role string) error {
	query := `UPDATE institution_members SET role = $3 WHERE institution_id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, institutionID, userID, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
