package postgres

import (
	"context"
	"errors"

	"mockzen-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const sessionColumns = `id, user_id, interview_type, status, difficulty, question_count,
	scheduled_interview_id, started_at, finished_at`

func scanSession(row pgx.Row) (*domain.InterviewSession, error) {
	var s domain.InterviewSession
	err := row.Scan(
		&s.ID, &s.UserID, &s.InterviewType, &s.Status, &s.Difficulty, &s.QuestionCount,
		&s.ScheduledInterviewID, &s.StartedAt, &s.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *interviewRepo) Create(ctx context.Context, session *domain.InterviewSession) error {
	if session.ScheduledInterviewID != nil {
		query := `INSERT INTO interviews (user_id, interview_type, status, difficulty, question_count, scheduled_interview_id, started_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, started_at`
		return r.db.QueryRow(ctx, query,
			session.UserID, session.InterviewType, session.Status, session.Difficulty,
			session.QuestionCount, *session.ScheduledInterviewID,
		).Scan(&session.ID, &session.StartedAt)
	}

	query := `INSERT INTO interviews (user_id, interview_type, status, difficulty, question_count, started_at)
		VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, started_at`
	return r.db.QueryRow(ctx, query,
		session.UserID, session.InterviewType, session.Status, session.Difficulty, session.QuestionCount,
	).Scan(&session.ID, &session.StartedAt)
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.InterviewSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM interviews WHERE id = $1`
	return scanSession(r.db.QueryRow(ctx, query, id))
}

func (r *interviewRepo) Complete(ctx context.Context, id, userID string) (*domain.InterviewSession, error) {
	query := `UPDATE interviews SET status = 'completed', finished_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = 'in_progress'
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, id, userID))
}

func (r *interviewRepo) LatestForSchedule(ctx context.Context, scheduleID string, statuses []string) (*domain.InterviewSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM interviews
		WHERE scheduled_interview_id = $1 AND status = ANY($2)
		ORDER BY started_at DESC LIMIT 1`
	return scanSession(r.db.QueryRow(ctx, query, scheduleID, pq.Array(statuses)))
}

func (r *interviewRepo) CountCompletedForUsers(ctx context.Context, userIDs []string) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	query := `SELECT COUNT(*) FROM interviews WHERE user_id = ANY($1) AND status = 'completed'`
	var count int
	err := r.db.QueryRow(ctx, query, pq.Array(userIDs)).Scan(&count)
	return count, err
}

func (r *interviewRepo) AverageScoreForUsers(ctx context.Context, userIDs []string) (float64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	query := `SELECT COALESCE(AVG(ir.overall_score), 0)
		FROM interview_results ir
		JOIN interviews i ON i.id = ir.interview_id
		WHERE i.user_id = ANY($1) AND i.status = 'completed'`
	var avg float64
	err := r.db.QueryRow(ctx, query, pq.Array(userIDs)).Scan(&avg)
	return avg, err
}
