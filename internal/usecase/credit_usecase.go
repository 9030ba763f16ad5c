package usecase

import (
	"context"

	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"
	"mockzen-backend/pkg/logger"
)

// InterviewCost returns the credit cost of a session as a step function of
// the requested duration in minutes.
func InterviewCost(duration int) int {
	switch {
	case duration <= 15:
		return 1
	case duration <= 30:
		return 2
	case duration <= 45:
		return 3
	default:
		return (duration + 14) / 15
	}
}

type creditUsecase struct {
	repo domain.CreditRepository
}

func NewCreditUsecase(repo domain.CreditRepository) domain.CreditUsecase {
	return &creditUsecase{repo: repo}
}

func (u *creditUsecase) GetBalance(ctx context.Context, ownerID string) (int, error) {
	balance, _, err := u.repo.GetBalance(ctx, ownerID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return balance, nil
}

// EnsureInitialBalance grants the welcome bonus exactly once. Returns the
// number of credits added (0 when the balance row already exists).
func (u *creditUsecase) EnsureInitialBalance(ctx context.Context, userID string) (int, error) {
	_, exists, err := u.repo.GetBalance(ctx, userID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if exists {
		return 0, nil
	}

	if err := u.repo.InsertBalance(ctx, userID, domain.WelcomeBonusCredits); err != nil {
		return 0, apperror.Internal(err)
	}

	u.logTransaction(ctx, &domain.CreditTransaction{
		OwnerID:  userID,
		Delta:    domain.WelcomeBonusCredits,
		Reason:   domain.ReasonWelcomeBonus,
		Metadata: map[string]any{"source": "new_user_signup"},
	})

	return domain.WelcomeBonusCredits, nil
}

// Adjust applies a signed delta to the owner's balance, creating the balance
// row when missing.
func (u *creditUsecase) Adjust(ctx context.Context, ownerID string, delta int, reason string, metadata map[string]any) (int, error) {
	if delta == 0 {
		return 0, apperror.BadRequest("Invalid amount provided")
	}

	balance, _, err := u.repo.GetBalance(ctx, ownerID)
	if err != nil {
		return 0, apperror.Internal(err)
	}

	newBalance := balance + delta
	if err := u.repo.UpsertBalance(ctx, ownerID, newBalance); err != nil {
		return 0, apperror.Internal(err)
	}

	u.logTransaction(ctx, &domain.CreditTransaction{
		OwnerID:  ownerID,
		Delta:    delta,
		Reason:   reason,
		Metadata: metadata,
	})

	return newBalance, nil
}

// AdjustTo sets the balance to an absolute target, logged as the delta
// against the current balance.
func (u *creditUsecase) AdjustTo(ctx context.Context, ownerID string, target int, reason string, metadata map[string]any) (int, error) {
	balance, _, err := u.repo.GetBalance(ctx, ownerID)
	if err != nil {
		return 0, apperror.Internal(err)
	}

	delta := target - balance
	if delta == 0 {
		return balance, nil
	}

	if err := u.repo.UpsertBalance(ctx, ownerID, target); err != nil {
		return 0, apperror.Internal(err)
	}

	u.logTransaction(ctx, &domain.CreditTransaction{
		OwnerID:  ownerID,
		Delta:    delta,
		Reason:   reason,
		Metadata: metadata,
	})

	return target, nil
}

func (u *creditUsecase) ListTransactions(ctx context.Context, ownerID string, limit int) ([]domain.CreditTransaction, error) {
	if limit < 1 {
		limit = 100
	}
	txns, err := u.repo.ListTransactions(ctx, ownerID, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return txns, nil
}

// logTransaction appends a ledger record best-effort. A failed write is
// logged and never fails the parent operation.
func (u *creditUsecase) logTransaction(ctx context.Context, txn *domain.CreditTransaction) {
	if err := u.repo.AppendTransaction(ctx, txn); err != nil {
		logger.Log.Error("Failed to record credit transaction",
			"owner_id", txn.OwnerID, "reason", txn.Reason, "error", err)
	}
}
