package postgres

import (
	"context"
	"encoding/json"

	"mockzen-backend/pkg/security"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SecurityEventStore persists security events alongside the file/stdout
// sinks so they survive log rotation.
type SecurityEventStore struct {
	db *pgxpool.Pool
}

func NewSecurityEventStore(db *pgxpool.Pool) *SecurityEventStore {
	return &SecurityEventStore{db: db}
}

func (s *SecurityEventStore) Insert(ctx context.Context, event security.SecurityEvent) error {
	var details []byte
	if len(event.Details) > 0 {
		var err error
		details, err = json.Marshal(event.Details)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO security_events
			(occurred_at, service, env, level, event, subject_type, subject_value, ip, user_agent, request_id, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.Exec(ctx, query,
		event.Timestamp, event.Service, event.Environment, event.Level, string(event.Event),
		nullIfEmpty(event.SubjectType), nullIfEmpty(event.SubjectValue),
		nullIfEmpty(event.IP), nullIfEmpty(event.UserAgent), nullIfEmpty(event.RequestID),
		details,
	)
	return err
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
