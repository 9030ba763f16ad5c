package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mockzen-backend/internal/domain"
	"mockzen-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func adminUser(institutionID string) *domain.User {
	return &domain.User{
		ID:            "admin1",
		UserType:      domain.UserTypeInstitutionAdmin,
		InstitutionID: &institutionID,
	}
}

func TestCreateSchedule(t *testing.T) {
	ctx := context.Background()
	scheduledDate := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Clamps duration into the 5-180 range", func(t *testing.T) {
		cases := map[int]int{
			0:   30, // default
			2:   5,
			5:   5,
			45:  45,
			180: 180,
			500: 180,
		}
		for requested, want := range cases {
			scheduleRepo := new(MockScheduleRepo)
			userRepo := new(MockUserRepo)
			uc := usecase.NewScheduleUsecase(scheduleRepo, userRepo)

			userRepo.On("GetByID", ctx, "admin1").Return(adminUser("inst1"), nil)
			scheduleRepo.On("Insert", ctx, mock.MatchedBy(func(s *domain.ScheduledInterview) bool {
				return s.Duration == want
			}), true).Return(nil)

			err := uc.Create(ctx, "admin1", domain.CreateScheduleInput{
				MemberID:      "member1",
				Course:        "cs-algorithms",
				ScheduledDate: scheduledDate,
				Duration:      requested,
			})
			assert.NoError(t, err, "requested duration %d", requested)
			scheduleRepo.AssertExpectations(t)
		}
	})

	t.Run("Retries without the duration column only on a matching error", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewScheduleUsecase(scheduleRepo, userRepo)

		userRepo.On("GetByID", ctx, "admin1").Return(adminUser("inst1"), nil)
		scheduleRepo.On("Insert", ctx, mock.Anything, true).
			Return(errors.New(`column "duration" of relation "scheduled_interviews" does not exist`)).Once()
		scheduleRepo.On("Insert", ctx, mock.Anything, false).Return(nil).Once()

		err := uc.Create(ctx, "admin1", domain.CreateScheduleInput{
			MemberID:      "member1",
			Course:        "cs-algorithms",
			ScheduledDate: scheduledDate,
		})
		assert.NoError(t, err)
		scheduleRepo.AssertExpectations(t)
	})

	t.Run("Does not retry on an unrelated insert failure", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewScheduleUsecase(scheduleRepo, userRepo)

		userRepo.On("GetByID", ctx, "admin1").Return(adminUser("inst1"), nil)
		scheduleRepo.On("Insert", ctx, mock.Anything, true).Return(errors.New("connection reset")).Once()

		err := uc.Create(ctx, "admin1", domain.CreateScheduleInput{
			MemberID:      "member1",
			Course:        "cs-algorithms",
			ScheduledDate: scheduledDate,
		})
		assert.Error(t, err)
		scheduleRepo.AssertNotCalled(t, "Insert", ctx, mock.Anything, false)
	})

	t.Run("Rejects a non-admin caller", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewScheduleUsecase(scheduleRepo, userRepo)

		userRepo.On("GetByID", ctx, "member1").Return(&domain.User{
			ID:       "member1",
			UserType: domain.UserTypeMember,
		}, nil)

		err := uc.Create(ctx, "member1", domain.CreateScheduleInput{
			MemberID:      "member2",
			Course:        "cs-algorithms",
			ScheduledDate: scheduledDate,
		})
		assert.Error(t, err)
		scheduleRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Requires member and course", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewScheduleUsecase(new(MockScheduleRepo), userRepo)

		userRepo.On("GetByID", ctx, "admin1").Return(adminUser("inst1"), nil)

		err := uc.Create(ctx, "admin1", domain.CreateScheduleInput{ScheduledDate: scheduledDate})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Member and course are required")
	})
}

func TestDeleteSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("Scopes the delete to the admin's institution", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewScheduleUsecase(scheduleRepo, userRepo)

		userRepo.On("GetByID", ctx, "admin1").Return(adminUser("inst1"), nil)
		scheduleRepo.On("Delete", ctx, "sched1", "inst1").Return(nil)

		assert.NoError(t, uc.Delete(ctx, "admin1", "sched1"))
		scheduleRepo.AssertExpectations(t)
	})

	t.Run("A cross-tenant schedule id is a 404", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewScheduleUsecase(scheduleRepo, userRepo)

		userRepo.On("GetByID", ctx, "admin1").Return(adminUser("inst1"), nil)
		scheduleRepo.On("Delete", ctx, "sched-other", "inst1").Return(domain.ErrNotFound)

		err := uc.Delete(ctx, "admin1", "sched-other")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Schedule not found")
	})
}

func TestListByInstitution(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults to the caller's institution", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewScheduleUsecase(scheduleRepo, userRepo)

		instID := "inst1"
		userRepo.On("GetByID", ctx, "user1").Return(&domain.User{
			ID:            "user1",
			UserType:      domain.UserTypeMember,
			InstitutionID: &instID,
		}, nil)
		scheduleRepo.On("ListByInstitution", ctx, "inst1").Return([]domain.ScheduledInterview{}, nil)

		_, err := uc.ListByInstitution(ctx, "user1", "")
		assert.NoError(t, err)
	})

	t.Run("Rejects an outsider asking for another institution", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewScheduleUsecase(scheduleRepo, userRepo)

		instID := "inst1"
		userRepo.On("GetByID", ctx, "user1").Return(&domain.User{
			ID:            "user1",
			UserType:      domain.UserTypeMember,
			InstitutionID: &instID,
		}, nil)

		_, err := uc.ListByInstitution(ctx, "user1", "inst2")
		assert.Error(t, err)
		scheduleRepo.AssertNotCalled(t, "ListByInstitution", mock.Anything, mock.Anything)
	})
}
