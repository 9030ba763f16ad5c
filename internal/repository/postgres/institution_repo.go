package postgres

import (
	"context"
	"errors"

	"mockzen-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type institutionRepo struct {
	db *pgxpool.Pool
}

func NewInstitutionRepository(db *pgxpool.Pool) domain.InstitutionRepository {
	return &institutionRepo{db: db}
}

func (r *institutionRepo) Create(ctx context.Context, inst *domain.Institution) error {
	query := `INSERT INTO institutions (name, email_domain, created_at)
		VALUES ($1, $2, NOW()) RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, inst.Name, inst.EmailDomain).Scan(&inst.ID, &inst.CreatedAt)
}

func (r *institutionRepo) GetByID(ctx context.Context, id string) (*domain.Institution, error) {
	query := `SELECT id, name, email_domain, invite_code, created_at FROM institutions WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *institutionRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Institution, error) {
	query := `SELECT id, name, email_domain, invite_code, created_at FROM institutions WHERE invite_code = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, code))
}

func (r *institutionRepo) scanOne(row pgx.Row) (*domain.Institution, error) {
	var inst domain.Institution
	err := row.Scan(&inst.ID, &inst.Name, &inst.EmailDomain, &inst.InviteCode, &inst.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &inst, nil
}

func (r *institutionRepo) List(ctx context.Context) ([]domain.Institution, error) {
	query := `SELECT i.id, i.name, i.email_domain, i.invite_code, i.created_at,
		COUNT(DISTINCT im.user_id), COALESCE(ic.balance, 0)
		FROM institutions i
		LEFT JOIN institution_members im ON im.institution_id = i.id
		LEFT JOIN institution_credits ic ON ic.institution_id = i.id
		GROUP BY i.id, ic.balance
		ORDER BY i.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insts []domain.Institution
	for rows.Next() {
		var inst domain.Institution
		if err := rows.Scan(&inst.ID, &inst.Name, &inst.EmailDomain, &inst.InviteCode,
			&inst.CreatedAt, &inst.MemberCount, &inst.Balance); err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}
	return insts, rows.Err()
}

func (r *institutionRepo) SetInviteCode(ctx context.Context, id, code string) error {
	query := `UPDATE institutions SET invite_code = $2 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
