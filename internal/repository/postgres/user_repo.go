package postgres

import (
	"context"
	"errors"

	"mockzen-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, name, bio, phone, location, skills, education, experience,
	COALESCE(user_type, 'member'), institution_id, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Bio, &u.Phone, &u.Location, pq.Array(&u.Skills),
		&u.Education, &u.Experience, &u.UserType, &u.InstitutionID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, updated_at = NOW()`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Name)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, update *domain.ProfileUpdate) (*domain.User, error) {
	query := `UPDATE users SET
		name = COALESCE($2, name),
		bio = COALESCE($3, bio),
		phone = COALESCE($4, phone),
		location = COALESCE($5, location),
		skills = COALESCE($6, skills),
		education = COALESCE($7, education),
		experience = COALESCE($8, experience),
		updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var skills interface{}
	if update.Skills != nil {
		skills = pq.Array(update.Skills)
	}

	return scanUser(r.db.QueryRow(ctx, query, id,
		update.Name, update.Bio, update.Phone, update.Location,
		skills, update.Education, update.Experience,
	))
}

func (r *userRepo) SetInstitution(ctx context.Context, id string, institutionID string) error {
	query := `UPDATE users SET institution_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, institutionID)
	return err
}
