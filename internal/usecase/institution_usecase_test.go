package usecase_test

import (
	"context"
	"errors"
	"testing"

	"mockzen-backend/internal/domain"
	"mockzen-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type institutionFixture struct {
	institutionRepo *MockInstitutionRepo
	batchRepo       *MockBatchRepo
	membershipRepo  *MockMembershipRepo
	userRepo        *MockUserRepo
	scheduleRepo    *MockScheduleRepo
	interviewRepo   *MockInterviewRepo
	creditRepo      *MockCreditRepo
	uc              domain.InstitutionUsecase
}

func newInstitutionFixture() *institutionFixture {
	f := &institutionFixture{
		institutionRepo: new(MockInstitutionRepo),
		batchRepo:       new(MockBatchRepo),
		membershipRepo:  new(MockMembershipRepo),
		userRepo:        new(MockUserRepo),
		scheduleRepo:    new(MockScheduleRepo),
		interviewRepo:   new(MockInterviewRepo),
		creditRepo:      new(MockCreditRepo),
	}
	f.uc = usecase.NewInstitutionUsecase(
		f.institutionRepo, f.batchRepo, f.membershipRepo, f.userRepo,
		f.scheduleRepo, f.interviewRepo, usecase.NewCreditUsecase(f.creditRepo))
	return f
}

func (f *institutionFixture) asAdmin(ctx context.Context) {
	f.userRepo.On("GetByID", ctx, "admin1").Return(adminUser("inst1"), nil)
}

func TestCreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Generates a join code on create", func(t *testing.T) {
		f := newInstitutionFixture()
		f.asAdmin(ctx)
		f.batchRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Batch) bool {
			return len(b.JoinCode) == 8 && b.InstitutionID == "inst1" && b.CreatedByID == "admin1"
		})).Return(nil)

		batch, err := f.uc.CreateBatch(ctx, "admin1", "Spring Cohort", "")
		assert.NoError(t, err)
		assert.Len(t, batch.JoinCode, 8)
	})

	t.Run("Maps a unique violation to a friendly message", func(t *testing.T) {
		f := newInstitutionFixture()
		f.asAdmin(ctx)
		f.batchRepo.On("Create", ctx, mock.Anything).
			Return(errors.New(`ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)`))

		_, err := f.uc.CreateBatch(ctx, "admin1", "Spring Cohort", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Rejects a non-admin caller", func(t *testing.T) {
		f := newInstitutionFixture()
		f.userRepo.On("GetByID", ctx, "member1").Return(&domain.User{
			ID:       "member1",
			UserType: domain.UserTypeMember,
		}, nil)

		_, err := f.uc.CreateBatch(ctx, "member1", "Spring Cohort", "")
		assert.Error(t, err)
		f.batchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAddMemberByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Acknowledges an unknown email without adding a row", func(t *testing.T) {
		f := newInstitutionFixture()
		f.asAdmin(ctx)
		f.userRepo.On("GetByEmail", ctx, "new@acme.edu").Return(nil, domain.ErrNotFound)

		msg, err := f.uc.AddMemberByEmail(ctx, "admin1", "new@acme.edu", "")
		assert.NoError(t, err)
		assert.Contains(t, msg, "Invitation sent")
		f.membershipRepo.AssertNotCalled(t, "AddInstitutionMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Adds an existing user as a member", func(t *testing.T) {
		f := newInstitutionFixture()
		f.asAdmin(ctx)
		f.userRepo.On("GetByEmail", ctx, "student@acme.edu").Return(&domain.User{ID: "user9"}, nil)
		f.membershipRepo.On("IsInstitutionMember", ctx, "inst1", "user9").Return(false, nil)
		f.membershipRepo.On("AddInstitutionMember", ctx, "inst1", "user9", domain.UserTypeMember).Return(nil)

		msg, err := f.uc.AddMemberByEmail(ctx, "admin1", "student@acme.edu", "")
		assert.NoError(t, err)
		assert.Contains(t, msg, "Member added")
	})
}

func TestUpdateMemberRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepts only the known roles", func(t *testing.T) {
		f := newInstitutionFixture()
		f.asAdmin(ctx)

		err := f.uc.UpdateMemberRole(ctx, "admin1", "user9", "super_admin")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid role")
		f.membershipRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetOrCreateInviteCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the existing code without regenerating", func(t *testing.T) {
		f := newInstitutionFixture()
		f.asAdmin(ctx)
		code := "AB12CD34"
		f.institutionRepo.On("GetByID", ctx, "inst1").Return(&domain.Institution{
			ID:         "inst1",
			InviteCode: &code,
		}, nil)

		got, err := f.uc.GetOrCreateInviteCode(ctx, "admin1")
		assert.NoError(t, err)
		assert.Equal(t, "AB12CD34", got)
		f.institutionRepo.AssertNotCalled(t, "SetInviteCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Generates and persists a code when missing", func(t *testing.T) {
		f := newInstitutionFixture()
		f.asAdmin(ctx)
		f.institutionRepo.On("GetByID", ctx, "inst1").Return(&domain.Institution{ID: "inst1"}, nil)
		f.institutionRepo.On("SetInviteCode", ctx, "inst1", mock.MatchedBy(func(code string) bool {
			return len(code) == 8
		})).Return(nil)

		got, err := f.uc.GetOrCreateInviteCode(ctx, "admin1")
		assert.NoError(t, err)
		assert.Len(t, got, 8)
	})
}

func TestInstitutionStats(t *testing.T) {
	ctx := context.Background()

	f := newInstitutionFixture()
	f.asAdmin(ctx)
	f.membershipRepo.On("MemberIDs", ctx, "inst1").Return([]string{"u1", "u2"}, nil)
	f.scheduleRepo.On("CountPending", ctx, "inst1").Return(3, nil)
	f.interviewRepo.On("CountCompletedForUsers", ctx, []string{"u1", "u2"}).Return(7, nil)
	f.interviewRepo.On("AverageScoreForUsers", ctx, []string{"u1", "u2"}).Return(71.5, nil)

	stats, err := f.uc.Stats(ctx, "admin1")
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.MemberCount)
	assert.Equal(t, 3, stats.PendingSchedules)
	assert.Equal(t, 7, stats.CompletedSessions)
	assert.InDelta(t, 71.5, stats.AverageScore, 0.001)
}
