package domain

import (
	"context"
	"time"
)

// Scheduled interview statuses. pending -> in_progress -> completed;
// pending -> cancelled via delete. Terminal states do not transition back.
const (
	SchedulePending    = "pending"
	ScheduleInProgress = "in_progress"
	ScheduleCompleted  = "completed"
	ScheduleCancelled  = "cancelled"
)

type ScheduledInterview struct {
	ID            string     `json:"id"`
	InstitutionID string     `json:"institution_id"`
	ScheduledByID string     `json:"scheduled_by_id"`
	MemberID      string     `json:"member_id"`
	Course        string     `json:"course"`
	Difficulty    string     `json:"difficulty"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Duration      int        `json:"duration"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	// Joined display fields, populated on list queries
	MemberName      *string `json:"member_name,omitempty"`
	MemberEmail     *string `json:"member_email,omitempty"`
	ScheduledByName *string `json:"scheduled_by_name,omitempty"`
	InstitutionName *string `json:"institution_name,omitempty"`
}

type CreateScheduleInput struct {
	MemberID      string
	Course        string
	Difficulty    string
	ScheduledDate time.Time
	Deadline      *time.Time
	Duration      int
}

type ScheduleRepository interface {
	// Insert writes the schedule row. When withDuration is false the
	// duration column is omitted (schema-compatibility fallback).
	Insert(ctx context.Context, schedule *ScheduledInterview, withDuration bool) error
	GetByID(ctx context.Context, id string) (*ScheduledInterview, error)
	GetForMember(ctx context.Context, id, memberID string) (*ScheduledInterview, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]ScheduledInterview, error)
	ListPendingForMember(ctx context.Context, memberID string, from time.Time) ([]ScheduledInterview, error)
	CountPending(ctx context.Context, institutionID string) (int, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id, institutionID string) error
}

type ScheduleUsecase interface {
	Create(ctx context.Context, adminID string, input CreateScheduleInput) error
	ListByInstitution(ctx context.Context, callerID, institutionID string) ([]ScheduledInterview, error)
	ListForMember(ctx context.Context, memberID string) ([]ScheduledInterview, error)
	Delete(ctx context.Context, adminID, scheduleID string) error
}
