package usecase_test

import (
	"context"
	"strings"
	"testing"

	"mockzen-backend/internal/domain"
	"mockzen-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := usecase.GenerateCode()
		assert.Len(t, code, 8)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", ch),
				"unexpected character %q in code %s", ch, code)
		}
		seen[code] = true
	}
	// 50 draws from a 36^8 space colliding would indicate a broken RNG
	assert.Greater(t, len(seen), 45)
}

func newMembershipUC(batchRepo *MockBatchRepo, institutionRepo *MockInstitutionRepo, membershipRepo *MockMembershipRepo, userRepo *MockUserRepo) domain.MembershipUsecase {
	return usecase.NewMembershipUsecase(batchRepo, institutionRepo, membershipRepo, userRepo)
}

func TestJoinBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Uppercases the code before lookup", func(t *testing.T) {
		batchRepo := new(MockBatchRepo)
		membershipRepo := new(MockMembershipRepo)
		userRepo := new(MockUserRepo)
		uc := newMembershipUC(batchRepo, new(MockInstitutionRepo), membershipRepo, userRepo)

		batch := &domain.Batch{ID: "b1", InstitutionID: "inst1", Name: "Spring Cohort"}
		batchRepo.On("GetByJoinCode", ctx, "AB12CD34").Return(batch, "Acme University", nil)
		membershipRepo.On("IsBatchMember", ctx, "b1", "user1").Return(false, nil)
		membershipRepo.On("IsInstitutionMember", ctx, "inst1", "user1").Return(true, nil)
		membershipRepo.On("AddBatchMember", ctx, "b1", "user1").Return(nil)

		result, err := uc.JoinBatch(ctx, "user1", "ab12cd34")
		assert.NoError(t, err)
		assert.Equal(t, "Spring Cohort", result.BatchName)
		assert.Equal(t, "Acme University", result.InstitutionName)
	})

	t.Run("Implies institution membership for a first join", func(t *testing.T) {
		batchRepo := new(MockBatchRepo)
		membershipRepo := new(MockMembershipRepo)
		userRepo := new(MockUserRepo)
		uc := newMembershipUC(batchRepo, new(MockInstitutionRepo), membershipRepo, userRepo)

		batch := &domain.Batch{ID: "b1", InstitutionID: "inst1", Name: "Spring Cohort"}
		batchRepo.On("GetByJoinCode", ctx, "AB12CD34").Return(batch, "Acme University", nil)
		membershipRepo.On("IsBatchMember", ctx, "b1", "user1").Return(false, nil)
		membershipRepo.On("IsInstitutionMember", ctx, "inst1", "user1").Return(false, nil)
		membershipRepo.On("AddInstitutionMember", ctx, "inst1", "user1", domain.UserTypeMember).Return(nil)
		userRepo.On("SetInstitution", ctx, "user1", "inst1").Return(nil)
		membershipRepo.On("AddBatchMember", ctx, "b1", "user1").Return(nil)

		_, err := uc.JoinBatch(ctx, "user1", "AB12CD34")
		assert.NoError(t, err)
		membershipRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("Joining twice reports already a member without a duplicate row", func(t *testing.T) {
		batchRepo := new(MockBatchRepo)
		membershipRepo := new(MockMembershipRepo)
		uc := newMembershipUC(batchRepo, new(MockInstitutionRepo), membershipRepo, new(MockUserRepo))

		batch := &domain.Batch{ID: "b1", InstitutionID: "inst1"}
		batchRepo.On("GetByJoinCode", ctx, "AB12CD34").Return(batch, "Acme University", nil)
		membershipRepo.On("IsBatchMember", ctx, "b1", "user1").Return(true, nil)

		_, err := uc.JoinBatch(ctx, "user1", "AB12CD34")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already a member")
		membershipRepo.AssertNotCalled(t, "AddBatchMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown code is reported as invalid, not as missing", func(t *testing.T) {
		batchRepo := new(MockBatchRepo)
		uc := newMembershipUC(batchRepo, new(MockInstitutionRepo), new(MockMembershipRepo), new(MockUserRepo))

		batchRepo.On("GetByJoinCode", ctx, "ZZZZZZZZ").Return(nil, "", domain.ErrNotFound)

		_, err := uc.JoinBatch(ctx, "user1", "zzzzzzzz")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid join code")
	})

	t.Run("Tolerates a failed denormalized institution write", func(t *testing.T) {
		batchRepo := new(MockBatchRepo)
		membershipRepo := new(MockMembershipRepo)
		userRepo := new(MockUserRepo)
		uc := newMembershipUC(batchRepo, new(MockInstitutionRepo), membershipRepo, userRepo)

		batch := &domain.Batch{ID: "b1", InstitutionID: "inst1", Name: "Spring Cohort"}
		batchRepo.On("GetByJoinCode", ctx, "AB12CD34").Return(batch, "Acme University", nil)
		membershipRepo.On("IsBatchMember", ctx, "b1", "user1").Return(false, nil)
		membershipRepo.On("IsInstitutionMember", ctx, "inst1", "user1").Return(false, nil)
		membershipRepo.On("AddInstitutionMember", ctx, "inst1", "user1", domain.UserTypeMember).Return(nil)
		userRepo.On("SetInstitution", ctx, "user1", "inst1").Return(assert.AnError)
		membershipRepo.On("AddBatchMember", ctx, "b1", "user1").Return(nil)

		_, err := uc.JoinBatch(ctx, "user1", "AB12CD34")
		assert.NoError(t, err)
	})
}

func TestJoinInstitution(t *testing.T) {
	ctx := context.Background()

	t.Run("Adds the member and records the affiliation", func(t *testing.T) {
		institutionRepo := new(MockInstitutionRepo)
		membershipRepo := new(MockMembershipRepo)
		userRepo := new(MockUserRepo)
		uc := newMembershipUC(new(MockBatchRepo), institutionRepo, membershipRepo, userRepo)

		institutionRepo.On("GetByInviteCode", ctx, "AB12CD34").Return(&domain.Institution{
			ID:   "inst1",
			Name: "Acme University",
		}, nil)
		membershipRepo.On("IsInstitutionMember", ctx, "inst1", "user1").Return(false, nil)
		membershipRepo.On("AddInstitutionMember", ctx, "inst1", "user1", domain.UserTypeMember).Return(nil)
		userRepo.On("SetInstitution", ctx, "user1", "inst1").Return(nil)

		result, err := uc.JoinInstitution(ctx, "user1", "ab12cd34")
		assert.NoError(t, err)
		assert.Equal(t, "Acme University", result.InstitutionName)
	})

	t.Run("Rejects a second join", func(t *testing.T) {
		institutionRepo := new(MockInstitutionRepo)
		membershipRepo := new(MockMembershipRepo)
		uc := newMembershipUC(new(MockBatchRepo), institutionRepo, membershipRepo, new(MockUserRepo))

		institutionRepo.On("GetByInviteCode", ctx, "AB12CD34").Return(&domain.Institution{ID: "inst1"}, nil)
		membershipRepo.On("IsInstitutionMember", ctx, "inst1", "user1").Return(true, nil)

		_, err := uc.JoinInstitution(ctx, "user1", "AB12CD34")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already a member")
	})
}
