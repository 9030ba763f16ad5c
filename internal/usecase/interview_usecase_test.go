package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"mockzen-backend/internal/domain"
	"mockzen-backend/internal/usecase"
	"mockzen-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQuestionCountFor(t *testing.T) {
	cases := map[int]int{
		10:  6,
		15:  6,
		30:  14,
		45:  25,
		60:  25,
		120: 50,
	}
	for duration, want := range cases {
		assert.Equal(t, want, usecase.QuestionCountFor(duration), "duration %d", duration)
	}
}

func newInterviewUC(interviewRepo *MockInterviewRepo, scheduleRepo *MockScheduleRepo, userRepo *MockUserRepo, creditRepo *MockCreditRepo) domain.InterviewUsecase {
	return usecase.NewInterviewUsecase(interviewRepo, scheduleRepo, userRepo, creditRepo)
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects with 402 and creates nothing when balance is short", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		creditRepo := new(MockCreditRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, userRepo, creditRepo)

		userRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		// 30 minutes costs 2; a balance of 1 is not enough
		creditRepo.On("GetBalance", mock.Anything, "user1").Return(1, true, nil)

		_, err := uc.StartSession(ctx, domain.StartSessionInput{UserID: "user1", Duration: 30})
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusPaymentRequired, appErr.Code)

		interviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		creditRepo.AssertNotCalled(t, "SetBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Deducts the duration-based cost and opens the session", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		creditRepo := new(MockCreditRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, userRepo, creditRepo)

		userRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		creditRepo.On("GetBalance", mock.Anything, "user1").Return(5, true, nil)
		creditRepo.On("SetBalance", mock.Anything, "user1", 3).Return(nil)
		interviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		creditRepo.On("AppendTransaction", mock.Anything, mock.MatchedBy(func(txn *domain.CreditTransaction) bool {
			return txn.Delta == -2 && txn.Reason == domain.ReasonInterviewStart
		})).Return(nil).Maybe()

		session, err := uc.StartSession(ctx, domain.StartSessionInput{
			UserID:        "user1",
			InterviewType: "behavioral",
			Duration:      30,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.SessionInProgress, session.Status)
		assert.Equal(t, "behavioral", session.InterviewType)
		assert.Equal(t, 14, session.QuestionCount)
		assert.Equal(t, "intermediate", session.Difficulty)

		creditRepo.AssertCalled(t, "SetBalance", mock.Anything, "user1", 3)
	})

	t.Run("Defaults a missing duration to 15 minutes", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		creditRepo := new(MockCreditRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, userRepo, creditRepo)

		userRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		creditRepo.On("GetBalance", mock.Anything, "user1").Return(5, true, nil)
		creditRepo.On("SetBalance", mock.Anything, "user1", 4).Return(nil)
		interviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		creditRepo.On("AppendTransaction", mock.Anything, mock.Anything).Return(nil).Maybe()

		session, err := uc.StartSession(ctx, domain.StartSessionInput{UserID: "user1"})
		assert.NoError(t, err)
		assert.Equal(t, 6, session.QuestionCount)
	})

	t.Run("Infers a course type from the referer when the explicit type is generic", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		creditRepo := new(MockCreditRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, userRepo, creditRepo)

		userRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		creditRepo.On("GetBalance", mock.Anything, "user1").Return(5, true, nil)
		creditRepo.On("SetBalance", mock.Anything, "user1", 4).Return(nil)
		interviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		creditRepo.On("AppendTransaction", mock.Anything, mock.Anything).Return(nil).Maybe()

		session, err := uc.StartSession(ctx, domain.StartSessionInput{
			UserID:        "user1",
			InterviewType: "technical",
			Referer:       "https://mockzen.com/interview/course/cs/algorithms",
		})
		assert.NoError(t, err)
		assert.Equal(t, "cs-algorithms", session.InterviewType)
	})

	t.Run("Keeps an explicit hyphenated type over the referer", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		userRepo := new(MockUserRepo)
		creditRepo := new(MockCreditRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, userRepo, creditRepo)

		userRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		creditRepo.On("GetBalance", mock.Anything, "user1").Return(5, true, nil)
		creditRepo.On("SetBalance", mock.Anything, "user1", 4).Return(nil)
		interviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		creditRepo.On("AppendTransaction", mock.Anything, mock.Anything).Return(nil).Maybe()

		session, err := uc.StartSession(ctx, domain.StartSessionInput{
			UserID:        "user1",
			InterviewType: "math-calculus",
			Referer:       "https://mockzen.com/interview/course/cs/algorithms",
		})
		assert.NoError(t, err)
		assert.Equal(t, "math-calculus", session.InterviewType)
	})

	t.Run("Requires a user ID", func(t *testing.T) {
		uc := newInterviewUC(new(MockInterviewRepo), new(MockScheduleRepo), new(MockUserRepo), new(MockCreditRepo))
		_, err := uc.StartSession(ctx, domain.StartSessionInput{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User ID required")
	})
}

func TestCompleteSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Flips a linked schedule to completed", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, new(MockUserRepo), new(MockCreditRepo))

		scheduleID := "sched1"
		done := time.Now()
		interviewRepo.On("Complete", ctx, "sess1", "user1").Return(&domain.InterviewSession{
			ID:                   "sess1",
			Status:               domain.SessionCompleted,
			ScheduledInterviewID: &scheduleID,
			FinishedAt:           &done,
		}, nil)
		scheduleRepo.On("SetStatus", ctx, "sched1", domain.ScheduleCompleted).Return(nil)

		session, err := uc.CompleteSession(ctx, "sess1", "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.SessionCompleted, session.Status)
		scheduleRepo.AssertExpectations(t)
	})

	t.Run("Maps a missing session to 404", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		uc := newInterviewUC(interviewRepo, new(MockScheduleRepo), new(MockUserRepo), new(MockCreditRepo))

		interviewRepo.On("Complete", ctx, "missing", "user1").Return(nil, domain.ErrNotFound)

		_, err := uc.CompleteSession(ctx, "missing", "user1")
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}

func TestStartScheduled(t *testing.T) {
	ctx := context.Background()

	t.Run("Completed schedule returns 409 with the latest interview id", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, new(MockUserRepo), new(MockCreditRepo))

		scheduleRepo.On("GetForMember", ctx, "sched1", "user1").Return(&domain.ScheduledInterview{
			ID:     "sched1",
			Status: domain.ScheduleCompleted,
		}, nil)
		interviewRepo.On("LatestForSchedule", ctx, "sched1", mock.Anything).Return(&domain.InterviewSession{ID: "sess9"}, nil)

		result, err := uc.StartScheduled(ctx, "user1", "sched1")
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, appErr.Code)
		assert.NotNil(t, result)
		assert.Equal(t, "sess9", result.InterviewID)
	})

	t.Run("In-progress schedule resumes the existing session", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, new(MockUserRepo), new(MockCreditRepo))

		scheduleRepo.On("GetForMember", ctx, "sched1", "user1").Return(&domain.ScheduledInterview{
			ID:         "sched1",
			Status:     domain.ScheduleInProgress,
			Course:     "cs-algorithms",
			Difficulty: "advanced",
			Duration:   30,
		}, nil)
		interviewRepo.On("LatestForSchedule", ctx, "sched1", []string{domain.SessionInProgress}).
			Return(&domain.InterviewSession{ID: "sess5"}, nil)

		result, err := uc.StartScheduled(ctx, "user1", "sched1")
		assert.NoError(t, err)
		assert.True(t, result.AlreadyStarted)
		assert.Equal(t, "sess5", result.InterviewID)
		interviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Pending schedule opens a linked session and marks it in progress", func(t *testing.T) {
		interviewRepo := new(MockInterviewRepo)
		scheduleRepo := new(MockScheduleRepo)
		uc := newInterviewUC(interviewRepo, scheduleRepo, new(MockUserRepo), new(MockCreditRepo))

		scheduleRepo.On("GetForMember", ctx, "sched1", "user1").Return(&domain.ScheduledInterview{
			ID:         "sched1",
			Status:     domain.SchedulePending,
			Course:     "cs-algorithms",
			Difficulty: "advanced",
			Duration:   45,
		}, nil)
		interviewRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.InterviewSession) bool {
			return s.ScheduledInterviewID != nil && *s.ScheduledInterviewID == "sched1" &&
				s.InterviewType == "cs-algorithms"
		})).Return(nil)
		scheduleRepo.On("SetStatus", ctx, "sched1", domain.ScheduleInProgress).Return(nil)

		result, err := uc.StartScheduled(ctx, "user1", "sched1")
		assert.NoError(t, err)
		assert.False(t, result.AlreadyStarted)
		assert.Equal(t, "cs-algorithms", result.InterviewType)
		assert.Equal(t, 45, result.Duration)
	})

	t.Run("Schedule assigned to someone else is a 404", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepo)
		uc := newInterviewUC(new(MockInterviewRepo), scheduleRepo, new(MockUserRepo), new(MockCreditRepo))

		scheduleRepo.On("GetForMember", ctx, "sched1", "intruder").Return(nil, domain.ErrNotFound)

		_, err := uc.StartScheduled(ctx, "intruder", "sched1")
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}
