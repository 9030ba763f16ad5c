package domain

import (
	"context"
	"time"
)

// Transaction reason codes written to the ledger logs.
const (
	ReasonWelcomeBonus    = "welcome_bonus"
	ReasonInterviewStart  = "interview_start"
	ReasonSuperAdminTopup = "super_admin_topup"
)

// WelcomeBonusCredits is granted once per user when their balance row is
// first created.
const WelcomeBonusCredits = 5

type CreditBalance struct {
	OwnerID   string    `json:"owner_id"`
	Balance   int       `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreditTransaction is an append-only ledger record. The sum of deltas for
// an owner should equal that owner's current balance; this is not enforced
// by a database constraint.
type CreditTransaction struct {
	ID        int64          `json:"id"`
	OwnerID   string         `json:"owner_id"`
	Delta     int            `json:"delta"`
	Reason    string         `json:"reason"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// CreditRepository is implemented once for the user ledger and once for the
// institution ledger; the two differ only in backing tables.
type CreditRepository interface {
	GetBalance(ctx context.Context, ownerID string) (int, bool, error)
	InsertBalance(ctx context.Context, ownerID string, balance int) error
	SetBalance(ctx context.Context, ownerID string, balance int) error
	UpsertBalance(ctx context.Context, ownerID string, balance int) error
	AppendTransaction(ctx context.Context, txn *CreditTransaction) error
	ListTransactions(ctx context.Context, ownerID string, limit int) ([]CreditTransaction, error)
}

type CreditUsecase interface {
	GetBalance(ctx context.Context, ownerID string) (int, error)
	EnsureInitialBalance(ctx context.Context, userID string) (int, error)
	Adjust(ctx context.Context, ownerID string, delta int, reason string, metadata map[string]any) (int, error)
	AdjustTo(ctx context.Context, ownerID string, target int, reason string, metadata map[string]any) (int, error)
	ListTransactions(ctx context.Context, ownerID string, limit int) ([]CreditTransaction, error)
}
