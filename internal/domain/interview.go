package domain

import (
	"context"
	"time"
)

// Interview session statuses.
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
)

type InterviewSession struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	InterviewType        string     `json:"interview_type"`
	Status               string     `json:"status"`
	Difficulty           string     `json:"difficulty"`
	QuestionCount        int        `json:"question_count"`
	ScheduledInterviewID *string    `json:"scheduled_interview_id,omitempty"`
	StartedAt            time.Time  `json:"started_at"`
	FinishedAt           *time.Time `json:"finished_at,omitempty"`
}

type InterviewResult struct {
	ID           string    `json:"id"`
	InterviewID  string    `json:"interview_id"`
	OverallScore int       `json:"overall_score"`
	Feedback     *string   `json:"feedback,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type StartSessionInput struct {
	UserID         string
	UserEmail      string
	UserName       string
	InterviewType  string
	Referer        string
	Duration       int
	Difficulty     string
	CustomScenario string
}

type InterviewRepository interface {
	Create(ctx context.Context, session *InterviewSession) error
	GetByID(ctx context.Context, id string) (*InterviewSession, error)
	Complete(ctx context.Context, id, userID string) (*InterviewSession, error)
	LatestForSchedule(ctx context.Context, scheduleID string, statuses []string) (*InterviewSession, error)
	CountCompletedForUsers(ctx context.Context, userIDs []string) (int, error)
	AverageScoreForUsers(ctx context.Context, userIDs []string) (float64, error)
}

type InterviewUsecase interface {
	StartSession(ctx context.Context, input StartSessionInput) (*InterviewSession, error)
	CompleteSession(ctx context.Context, sessionID, userID string) (*InterviewSession, error)
	StartScheduled(ctx context.Context, userID, scheduleID string) (*ScheduledStart, error)
}

// ScheduledStart is the result of starting (or resuming) a scheduled
// interview session.
type ScheduledStart struct {
	InterviewID    string     `json:"interviewId"`
	AlreadyStarted bool       `json:"alreadyStarted,omitempty"`
	InterviewType  string     `json:"interviewType"`
	Difficulty     string     `json:"difficulty"`
	ScheduledDate  time.Time  `json:"scheduledDate"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Duration       int        `json:"duration"`
}
