package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"
	"mockzen-backend/pkg/logger"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// GenerateCode returns an 8-character join/invite code drawn from [A-Z0-9].
// Codes are not checked for collision at generation time.
func GenerateCode() string {
	code := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}

type membershipUsecase struct {
	batchRepo       domain.BatchRepository
	institutionRepo domain.InstitutionRepository
	membershipRepo  domain.MembershipRepository
	userRepo        domain.UserRepository
}

func NewMembershipUsecase(
	batchRepo domain.BatchRepository,
	institutionRepo domain.InstitutionRepository,
	membershipRepo domain.MembershipRepository,
	userRepo domain.UserRepository,
) domain.MembershipUsecase {
	return &membershipUsecase{
		batchRepo:       batchRepo,
		institutionRepo: institutionRepo,
		membershipRepo:  membershipRepo,
		userRepo:        userRepo,
	}
}

func (u *membershipUsecase) JoinBatch(ctx context.Context, userID, joinCode string) (*domain.JoinResult, error) {
	if joinCode == "" {
		return nil, apperror.BadRequest("Join code is required")
	}

	batch, institutionName, err := u.batchRepo.GetByJoinCode(ctx, strings.ToUpper(joinCode))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Invalid join code")
		}
		return nil, apperror.Internal(err)
	}

	alreadyMember, err := u.membershipRepo.IsBatchMember(ctx, batch.ID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if alreadyMember {
		return nil, apperror.BadRequest("You are already a member of this batch")
	}

	// Joining a batch implies joining its institution first.
	inInstitution, err := u.membershipRepo.IsInstitutionMember(ctx, batch.InstitutionID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !inInstitution {
		if err := u.membershipRepo.AddInstitutionMember(ctx, batch.InstitutionID, userID, domain.UserTypeMember); err != nil {
			return nil, apperror.New(500, "Failed to join institution", err)
		}
		// Denormalized affiliation on the user row; failure tolerated.
		if err := u.userRepo.SetInstitution(ctx, userID, batch.InstitutionID); err != nil {
			logger.Log.Error("Failed to update user institution", "user_id", userID, "error", err)
		}
	}

	if err := u.membershipRepo.AddBatchMember(ctx, batch.ID, userID); err != nil {
		return nil, apperror.New(500, "Failed to join batch", err)
	}

	return &domain.JoinResult{
		BatchName:       batch.Name,
		InstitutionName: institutionName,
	}, nil
}

func (u *membershipUsecase) JoinInstitution(ctx context.Context, userID, inviteCode string) (*domain.JoinResult, error) {
	if inviteCode == "" {
		return nil, apperror.BadRequest("Invite code is required")
	}

	institution, err := u.institutionRepo.GetByInviteCode(ctx, strings.ToUpper(inviteCode))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Invalid invite code")
		}
		return nil, apperror.Internal(err)
	}

	alreadyMember, err := u.membershipRepo.IsInstitutionMember(ctx, institution.ID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if alreadyMember {
		return nil, apperror.BadRequest("You are already a member of this institution")
	}

	if err := u.membershipRepo.AddInstitutionMember(ctx, institution.ID, userID, domain.UserTypeMember); err != nil {
		return nil, apperror.New(500, "Failed to join institution", err)
	}

	if err := u.userRepo.SetInstitution(ctx, userID, institution.ID); err != nil {
		logger.Log.Error("Failed to update user institution", "user_id", userID, "error", err)
	}

	return &domain.JoinResult{InstitutionName: institution.Name}, nil
}
