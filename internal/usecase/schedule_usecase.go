package usecase

import (
	"context"
	"errors"
	"regexp"
	"time"

	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"
	"mockzen-backend/pkg/logger"
)

// missingColumnPattern matches the database error text produced when an
// insert names a column the schema does not have yet.
var missingColumnPattern = regexp.MustCompile(`(?i)column .* does not exist`)

// isMissingColumnError reports whether err looks like a missing-column
// schema error for the named column. This string matching is a
// compatibility shim for partially migrated databases.
func isMissingColumnError(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if missingColumnPattern.MatchString(msg) {
		return true
	}
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(column)).MatchString(msg) &&
		regexp.MustCompile(`(?i)does not exist|schema cache`).MatchString(msg)
}

type scheduleUsecase struct {
	scheduleRepo domain.ScheduleRepository
	userRepo     domain.UserRepository
}

func NewScheduleUsecase(scheduleRepo domain.ScheduleRepository, userRepo domain.UserRepository) domain.ScheduleUsecase {
	return &scheduleUsecase{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
	}
}

// requireInstitutionAdmin loads the caller and verifies the institution
// admin role, returning the admin's institution id.
func (u *scheduleUsecase) requireInstitutionAdmin(ctx context.Context, userID string) (string, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil || user.UserType != domain.UserTypeInstitutionAdmin || user.InstitutionID == nil {
		return "", apperror.Forbidden("Not authorized")
	}
	return *user.InstitutionID, nil
}

func (u *scheduleUsecase) Create(ctx context.Context, adminID string, input domain.CreateScheduleInput) error {
	institutionID, err := u.requireInstitutionAdmin(ctx, adminID)
	if err != nil {
		return err
	}

	if input.MemberID == "" || input.Course == "" {
		return apperror.BadRequest("Member and course are required")
	}

	// Duration is clamped to [5, 180] minutes, defaulting to 30.
	duration := input.Duration
	if duration == 0 {
		duration = 30
	}
	if duration < 5 {
		duration = 5
	}
	if duration > 180 {
		duration = 180
	}

	schedule := &domain.ScheduledInterview{
		InstitutionID: institutionID,
		ScheduledByID: adminID,
		MemberID:      input.MemberID,
		Course:        input.Course,
		Difficulty:    input.Difficulty,
		ScheduledDate: input.ScheduledDate,
		Deadline:      input.Deadline,
		Duration:      duration,
		Status:        domain.SchedulePending,
	}

	if err := u.scheduleRepo.Insert(ctx, schedule, true); err != nil {
		// The duration column landed in a later migration; retry without
		// it when the error points there.
		if !isMissingColumnError(err, "duration") {
			return apperror.Internal(err)
		}
		logger.Log.Warn("Schedule insert with duration failed, retrying without column",
			"institution_id", institutionID, "error", err)
		if err := u.scheduleRepo.Insert(ctx, schedule, false); err != nil {
			return apperror.Internal(err)
		}
	}

	return nil
}

func (u *scheduleUsecase) ListByInstitution(ctx context.Context, callerID, institutionID string) ([]domain.ScheduledInterview, error) {
	caller, err := u.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, apperror.New(500, "Failed to fetch user profile", err)
	}

	if institutionID == "" {
		if caller.InstitutionID == nil {
			return nil, apperror.BadRequest("No institution specified")
		}
		institutionID = *caller.InstitutionID
	}

	// The caller must belong to the institution or hold the admin role.
	belongs := caller.InstitutionID != nil && *caller.InstitutionID == institutionID
	if !belongs && caller.UserType != domain.UserTypeInstitutionAdmin {
		return nil, apperror.Forbidden("Not authorized")
	}

	schedules, err := u.scheduleRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return schedules, nil
}

func (u *scheduleUsecase) ListForMember(ctx context.Context, memberID string) ([]domain.ScheduledInterview, error) {
	schedules, err := u.scheduleRepo.ListPendingForMember(ctx, memberID, time.Now())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return schedules, nil
}

func (u *scheduleUsecase) Delete(ctx context.Context, adminID, scheduleID string) error {
	institutionID, err := u.requireInstitutionAdmin(ctx, adminID)
	if err != nil {
		return err
	}

	// Scoping the delete to the admin's institution prevents cross-tenant
	// cancellation.
	if err := u.scheduleRepo.Delete(ctx, scheduleID, institutionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Schedule not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
