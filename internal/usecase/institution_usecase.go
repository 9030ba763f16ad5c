package usecase

import (
	"context"
	"errors"
	"strings"

	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"
)

type institutionUsecase struct {
	institutionRepo domain.InstitutionRepository
	batchRepo       domain.BatchRepository
	membershipRepo  domain.MembershipRepository
	userRepo        domain.UserRepository
	scheduleRepo    domain.ScheduleRepository
	interviewRepo   domain.InterviewRepository
	credits         domain.CreditUsecase
}

func NewInstitutionUsecase(
	institutionRepo domain.InstitutionRepository,
	batchRepo domain.BatchRepository,
	membershipRepo domain.MembershipRepository,
	userRepo domain.UserRepository,
	scheduleRepo domain.ScheduleRepository,
	interviewRepo domain.InterviewRepository,
	credits domain.CreditUsecase,
) domain.InstitutionUsecase {
	return &institutionUsecase{
		institutionRepo: institutionRepo,
		batchRepo:       batchRepo,
		membershipRepo:  membershipRepo,
		userRepo:        userRepo,
		scheduleRepo:    scheduleRepo,
		interviewRepo:   interviewRepo,
		credits:         credits,
	}
}

func (u *institutionUsecase) requireAdmin(ctx context.Context, userID string) (string, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil || user.UserType != domain.UserTypeInstitutionAdmin || user.InstitutionID == nil {
		return "", apperror.Forbidden("Not authorized as institution admin")
	}
	return *user.InstitutionID, nil
}

func (u *institutionUsecase) ListBatches(ctx context.Context, adminID string) ([]domain.Batch, error) {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	batches, err := u.batchRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, apperror.New(500, "Failed to fetch batches", err)
	}
	return batches, nil
}

func (u *institutionUsecase) CreateBatch(ctx context.Context, adminID, name, description string) (*domain.Batch, error) {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, apperror.BadRequest("Batch name is required")
	}

	batch := &domain.Batch{
		InstitutionID: institutionID,
		Name:          name,
		JoinCode:      GenerateCode(),
		CreatedByID:   adminID,
	}
	if description != "" {
		batch.Description = &description
	}

	if err := u.batchRepo.Create(ctx, batch); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.BadRequest("A batch with this name already exists")
		}
		return nil, apperror.New(500, "Failed to create batch", err)
	}
	return batch, nil
}

// isUniqueViolation matches Postgres error code 23505.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

func (u *institutionUsecase) ListMembers(ctx context.Context, adminID string) ([]domain.Membership, error) {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	members, err := u.membershipRepo.ListInstitutionMembers(ctx, institutionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return members, nil
}

// AddMemberByEmail attaches an existing user to the institution. Unknown
// emails are acknowledged without a row; the user is added when they sign up.
func (u *institutionUsecase) AddMemberByEmail(ctx context.Context, adminID, email, role string) (string, error) {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return "", err
	}

	if email == "" {
		return "", apperror.BadRequest("Email is required")
	}
	if role == "" {
		role = domain.UserTypeMember
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "Invitation sent. User will be added when they sign up.", nil
		}
		return "", apperror.Internal(err)
	}

	alreadyMember, err := u.membershipRepo.IsInstitutionMember(ctx, institutionID, user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if alreadyMember {
		return "", apperror.BadRequest("User is already a member")
	}

	if err := u.membershipRepo.AddInstitutionMember(ctx, institutionID, user.ID, role); err != nil {
		return "", apperror.Internal(err)
	}
	return "Member added successfully", nil
}

func (u *institutionUsecase) RemoveMember(ctx context.Context, adminID, userID string) error {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return err
	}

	if err := u.membershipRepo.RemoveInstitutionMember(ctx, institutionID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Member not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *institutionUsecase) UpdateMemberRole(ctx context.Context, adminID, userID, role string) error {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return err
	}

	if role != domain.UserTypeMember && role != domain.UserTypeInstitutionAdmin {
		return apperror.BadRequest("Invalid role")
	}

	if err := u.membershipRepo.UpdateRole(ctx, institutionID, userID, role); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Member not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// GetOrCreateInviteCode returns the institution's invite code, generating
// and persisting one when the institution has none yet.
func (u *institutionUsecase) GetOrCreateInviteCode(ctx context.Context, adminID string) (string, error) {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return "", err
	}

	institution, err := u.institutionRepo.GetByID(ctx, institutionID)
	if err != nil {
		return "", apperror.Internal(err)
	}

	if institution.InviteCode != nil && *institution.InviteCode != "" {
		return *institution.InviteCode, nil
	}

	code := GenerateCode()
	if err := u.institutionRepo.SetInviteCode(ctx, institutionID, code); err != nil {
		return "", apperror.Internal(err)
	}
	return code, nil
}

func (u *institutionUsecase) Stats(ctx context.Context, adminID string) (*domain.InstitutionStats, error) {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := u.membershipRepo.MemberIDs(ctx, institutionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	pending, err := u.scheduleRepo.CountPending(ctx, institutionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	completed, err := u.interviewRepo.CountCompletedForUsers(ctx, memberIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	avgScore, err := u.interviewRepo.AverageScoreForUsers(ctx, memberIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.InstitutionStats{
		MemberCount:       len(memberIDs),
		PendingSchedules:  pending,
		CompletedSessions: completed,
		AverageScore:      avgScore,
	}, nil
}

func (u *institutionUsecase) Credits(ctx context.Context, adminID string) (int, []domain.CreditTransaction, error) {
	institutionID, err := u.requireAdmin(ctx, adminID)
	if err != nil {
		return 0, nil, err
	}

	balance, err := u.credits.GetBalance(ctx, institutionID)
	if err != nil {
		return 0, nil, err
	}

	txns, err := u.credits.ListTransactions(ctx, institutionID, 100)
	if err != nil {
		return 0, nil, err
	}
	return balance, txns, nil
}
