package domain

import (
	"context"
	"time"
)

type Institution struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	EmailDomain string    `json:"email_domain"`
	InviteCode  *string   `json:"invite_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	// Populated on super-admin listings
	MemberCount int `json:"member_count,omitempty"`
	Balance     int `json:"balance,omitempty"`
}

type Batch struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	JoinCode      string    `json:"join_code"`
	CreatedByID   string    `json:"created_by_id"`
	CreatedAt     time.Time `json:"created_at"`
	MemberCount   int       `json:"member_count"`
}

type Membership struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	UserID        string    `json:"user_id"`
	Role          string    `json:"role"`
	JoinedAt      time.Time `json:"joined_at"`
	// Joined display fields
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// InstitutionStats is the admin dashboard summary.
type InstitutionStats struct {
	MemberCount       int     `json:"member_count"`
	PendingSchedules  int     `json:"pending_schedules"`
	CompletedSessions int     `json:"completed_sessions"`
	AverageScore      float64 `json:"average_score"`
}

type InstitutionRepository interface {
	Create(ctx context.Context, inst *Institution) error
	GetByID(ctx context.Context, id string) (*Institution, error)
	GetByInviteCode(ctx context.Context, code string) (*Institution, error)
	List(ctx context.Context) ([]Institution, error)
	SetInviteCode(ctx context.Context, id, code string) error
}

type BatchRepository interface {
	Create(ctx context.Context, batch *Batch) error
	GetByJoinCode(ctx context.Context, code string) (*Batch, string, error) // batch, institution name
	ListByInstitution(ctx context.Context, institutionID string) ([]Batch, error)
	Delete(ctx context.Context, id, institutionID string) error
}

type MembershipRepository interface {
	IsInstitutionMember(ctx context.Context, institutionID, userID string) (bool, error)
	IsBatchMember(ctx context.Context, batchID, userID string) (bool, error)
	AddInstitutionMember(ctx context.Context, institutionID, userID, role string) error
	AddBatchMember(ctx context.Context, batchID, userID string) error
	ListInstitutionMembers(ctx context.Context, institutionID string) ([]Membership, error)
	MemberIDs(ctx context.Context, institutionID string) ([]string, error)
	RemoveInstitutionMember(ctx context.Context, institutionID, userID string) error
	UpdateRole(ctx context.Context, institutionID, userID, role string) error
}

// JoinResult names the group(s) a self-service enrollment landed in.
type JoinResult struct {
	BatchName       string `json:"batchName,omitempty"`
	InstitutionName string `json:"institutionName"`
}

type MembershipUsecase interface {
	JoinBatch(ctx context.Context, userID, joinCode string) (*JoinResult, error)
	JoinInstitution(ctx context.Context, userID, inviteCode string) (*JoinResult, error)
}

type InstitutionUsecase interface {
	ListBatches(ctx context.Context, adminID string) ([]Batch, error)
	CreateBatch(ctx context.Context, adminID, name, description string) (*Batch, error)
	ListMembers(ctx context.Context, adminID string) ([]Membership, error)
	AddMemberByEmail(ctx context.Context, adminID, email, role string) (string, error)
	RemoveMember(ctx context.Context, adminID, userID string) error
	UpdateMemberRole(ctx context.Context, adminID, userID, role string) error
	GetOrCreateInviteCode(ctx context.Context, adminID string) (string, error)
	Stats(ctx context.Context, adminID string) (*InstitutionStats, error)
	Credits(ctx context.Context, adminID string) (int, []CreditTransaction, error)
}

type SuperAdminUsecase interface {
	CreateInstitution(ctx context.Context, name, emailDomain string) (*Institution, error)
	ListInstitutions(ctx context.Context) ([]Institution, error)
	InstitutionCredits(ctx context.Context, institutionID string) (int, []CreditTransaction, error)
	AdjustInstitutionCredits(ctx context.Context, institutionID string, amount, setTo *int, reason string) (int, error)
	UserCredits(ctx context.Context, userID string) (int, []CreditTransaction, error)
	AdjustUserCredits(ctx context.Context, userID string, amount int, reason string) (int, error)
}
