package postgres

import (
	"context"
	"errors"
	"time"

	"mockzen-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type scheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) domain.ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Insert(ctx context.Context, schedule *domain.ScheduledInterview, withDuration bool) error {
	if withDuration {
		query := `INSERT INTO scheduled_interviews
			(institution_id, scheduled_by_id, member_id, course, difficulty, scheduled_date, deadline, duration, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()) RETURNING id`
		return r.db.QueryRow(ctx, query,
			schedule.InstitutionID, schedule.ScheduledByID, schedule.MemberID,
			schedule.Course, schedule.Difficulty, schedule.ScheduledDate,
			schedule.Deadline, schedule.Duration, schedule.Status,
		).Scan(&schedule.ID)
	}

	query := `INSERT INTO scheduled_interviews
		(institution_id, scheduled_by_id, member_id, course, difficulty, scheduled_date, deadline, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW()) RETURNING id`
	return r.db.QueryRow(ctx, query,
		schedule.InstitutionID, schedule.ScheduledByID, schedule.MemberID,
		schedule.Course, schedule.Difficulty, schedule.ScheduledDate,
		schedule.Deadline, schedule.Status,
	).Scan(&schedule.ID)
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduledInterview, error) {
	query := `SELECT id, institution_id, scheduled_by_id, member_id, course, difficulty,
		scheduled_date, deadline, COALESCE(duration, 30), status, created_at
		FROM scheduled_interviews WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *scheduleRepo) GetForMember(ctx context.Context, id, memberID string) (*domain.ScheduledInterview, error) {
	query := `SELECT id, institution_id, scheduled_by_id, member_id, course, difficulty,
		scheduled_date, deadline, COALESCE(duration, 30), status, created_at
		FROM scheduled_interviews WHERE id = $1 AND member_id = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, id, memberID))
}

func (r *scheduleRepo) scanOne(row pgx.Row) (*domain.ScheduledInterview, error) {
	var s domain.ScheduledInterview
	err := row.Scan(
		&s.ID, &s.InstitutionID, &s.ScheduledByID, &s.MemberID, &s.Course, &s.Difficulty,
		&s.ScheduledDate, &s.Deadline, &s.Duration, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepo) ListByInstitution(ctx context.Context, institutionID string) ([]domain.ScheduledInterview, error) {
	query := `SELECT s.id, s.institution_id, s.scheduled_by_id, s.member_id, s.course, s.difficulty,
		s.scheduled_date, s.deadline, COALESCE(s.duration, 30), s.status, s.created_at,
		m.name, m.email, a.name
		FROM scheduled_interviews s
		LEFT JOIN users m ON m.id = s.member_id
		LEFT JOIN users a ON a.id = s.scheduled_by_id
		WHERE s.institution_id = $1
		ORDER BY s.scheduled_date ASC`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.ScheduledInterview
	for rows.Next() {
		var s domain.ScheduledInterview
		if err := rows.Scan(
			&s.ID, &s.InstitutionID, &s.ScheduledByID, &s.MemberID, &s.Course, &s.Difficulty,
			&s.ScheduledDate, &s.Deadline, &s.Duration, &s.Status, &s.CreatedAt,
			&s.MemberName, &s.MemberEmail, &s.ScheduledByName,
		); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *scheduleRepo) ListPendingForMember(ctx context.Context, memberID string, from time.Time) ([]domain.ScheduledInterview, error) {
	query := `SELECT s.id, s.institution_id, s.scheduled_by_id, s.member_id, s.course, s.difficulty,
		s.scheduled_date, s.deadline, COALESCE(s.duration, 30), s.status, s.created_at,
		i.name, a.name
		FROM scheduled_interviews s
		LEFT JOIN institutions i ON i.id = s.institution_id
		LEFT JOIN users a ON a.id = s.scheduled_by_id
		WHERE s.member_id = $1 AND s.status = 'pending' AND s.scheduled_date >= $2
		ORDER BY s.scheduled_date ASC`

	rows, err := r.db.Query(ctx, query, memberID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.ScheduledInterview
	for rows.Next() {
		var s domain.ScheduledInterview
		if err := rows.Scan(
			&s.ID, &s.InstitutionID, &s.ScheduledByID, &s.MemberID, &s.Course, &s.Difficulty,
			&s.ScheduledDate, &s.Deadline, &s.Duration, &s.Status, &s.CreatedAt,
			&s.InstitutionName, &s.ScheduledByName,
		); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *scheduleRepo) CountPending(ctx context.Context, institutionID string) (int, error) {
	query := `SELECT COUNT(*) FROM scheduled_interviews WHERE institution_id = $1 AND status = 'pending'`
	var count int
	err := r.db.QueryRow(ctx, query, institutionID).Scan(&count)
	return count, err
}

func (r *scheduleRepo) SetStatus(ctx context.Context, id, status string) error {
	query := `UPDATE scheduled_interviews SET status = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

func (r *scheduleRepo) Delete(ctx context.Context, id, institutionID string) error {
	query := `DELETE FROM scheduled_interviews WHERE id = $1 AND institution_id = $2`
	tag, err := r.db.Exec(ctx, query, id, institutionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
