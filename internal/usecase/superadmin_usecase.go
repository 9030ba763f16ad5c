package usecase

import (
	"context"
	"strings"

	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"
)

type superAdminUsecase struct {
	institutionRepo    domain.InstitutionRepository
	institutionCredits domain.CreditUsecase
	userCredits        domain.CreditUsecase
}

func NewSuperAdminUsecase(
	institutionRepo domain.InstitutionRepository,
	institutionCredits domain.CreditUsecase,
	userCredits domain.CreditUsecase,
) domain.SuperAdminUsecase {
	return &superAdminUsecase{
		institutionRepo:    institutionRepo,
		institutionCredits: institutionCredits,
		userCredits:        userCredits,
	}
}

func (u *superAdminUsecase) CreateInstitution(ctx context.Context, name, emailDomain string) (*domain.Institution, error) {
	if name == "" || emailDomain == "" {
		return nil, apperror.BadRequest("Name and email_domain are required")
	}

	inst := &domain.Institution{
		Name:        name,
		EmailDomain: strings.ToLower(emailDomain),
	}
	if err := u.institutionRepo.Create(ctx, inst); err != nil {
		return nil, apperror.New(500, "Failed to create institution", err)
	}
	return inst, nil
}

func (u *superAdminUsecase) ListInstitutions(ctx context.Context) ([]domain.Institution, error) {
	insts, err := u.institutionRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return insts, nil
}

func (u *superAdminUsecase) InstitutionCredits(ctx context.Context, institutionID string) (int, []domain.CreditTransaction, error) {
	balance, err := u.institutionCredits.GetBalance(ctx, institutionID)
	if err != nil {
		return 0, nil, err
	}
	txns, err := u.institutionCredits.ListTransactions(ctx, institutionID, 100)
	if err != nil {
		return 0, nil, err
	}
	return balance, txns, nil
}

// AdjustInstitutionCredits accepts either a signed delta (amount) or an
// absolute target (setTo); exactly one must be provided.
func (u *superAdminUsecase) AdjustInstitutionCredits(ctx context.Context, institutionID string, amount, setTo *int, reason string) (int, error) {
	if reason == "" {
		reason = domain.ReasonSuperAdminTopup
	}

	metadata := map[string]any{"added_by": "super_admin"}
	if setTo != nil {
		metadata["set_to"] = *setTo
		return u.institutionCredits.AdjustTo(ctx, institutionID, *setTo, reason, metadata)
	}
	if amount != nil {
		metadata["set_to"] = nil
		return u.institutionCredits.Adjust(ctx, institutionID, *amount, reason, metadata)
	}
	return 0, apperror.BadRequest("Invalid payload: provide amount (delta) or set_to (absolute)")
}

func (u *superAdminUsecase) UserCredits(ctx context.Context, userID string) (int, []domain.CreditTransaction, error) {
	balance, err := u.userCredits.GetBalance(ctx, userID)
	if err != nil {
		return 0, nil, err
	}
	txns, err := u.userCredits.ListTransactions(ctx, userID, 100)
	if err != nil {
		return 0, nil, err
	}
	return balance, txns, nil
}

func (u *superAdminUsecase) AdjustUserCredits(ctx context.Context, userID string, amount int, reason string) (int, error) {
	if reason == "" {
		reason = domain.ReasonSuperAdminTopup
	}
	return u.userCredits.Adjust(ctx, userID, amount, reason, map[string]any{"added_by": "super_admin"})
}
