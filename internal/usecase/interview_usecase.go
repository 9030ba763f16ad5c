package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"
	"mockzen-backend/pkg/logger"
)

// QuestionCountFor returns the number of questions asked in a session as a
// step function of the requested duration in minutes.
func QuestionCountFor(duration int) int {
	switch {
	case duration <= 15:
		return 6
	case duration <= 30:
		return 14
	case duration <= 60:
		return 25
	default:
		// ceil(duration/60 * 25) without floating point
		return (duration*25 + 59) / 60
	}
}

var courseRefererPattern = regexp.MustCompile(`(?i)/interview/course/([^/]+)/([^/?#]+)`)

// inferInterviewType derives a course-scoped interview type from the Referer
// path when the explicit type is generic (contains no hyphen).
func inferInterviewType(explicit, referer string) string {
	interviewType := explicit
	if interviewType == "" {
		interviewType = "technical"
	}
	if referer == "" || strings.Contains(interviewType, "-") {
		return interviewType
	}
	if match := courseRefererPattern.FindStringSubmatch(referer); match != nil {
		return match[1] + "-" + match[2]
	}
	return interviewType
}

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	scheduleRepo  domain.ScheduleRepository
	userRepo      domain.UserRepository
	creditRepo    domain.CreditRepository
}

func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	scheduleRepo domain.ScheduleRepository,
	userRepo domain.UserRepository,
	creditRepo domain.CreditRepository,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		scheduleRepo:  scheduleRepo,
		userRepo:      userRepo,
		creditRepo:    creditRepo,
	}
}

func (u *interviewUsecase) StartSession(ctx context.Context, input domain.StartSessionInput) (*domain.InterviewSession, error) {
	if input.UserID == "" {
		return nil, apperror.BadRequest("User ID required")
	}

	duration := input.Duration
	if duration <= 0 {
		duration = 15
	}

	interviewType := inferInterviewType(input.InterviewType, input.Referer)
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "intermediate"
	}

	cost := InterviewCost(duration)

	// The identity upsert keeps the denormalized user row fresh. It runs
	// alongside the balance check; its failure is not fatal.
	upsertDone := make(chan struct{})
	go func() {
		defer close(upsertDone)
		email := input.UserEmail
		if email == "" {
			email = "user_" + input.UserID + "@mockzen.app"
		}
		name := input.UserName
		if name == "" {
			name = "User"
		}
		if err := u.userRepo.Upsert(ctx, &domain.User{ID: input.UserID, Email: email, Name: name}); err != nil {
			logger.Log.Warn("User upsert failed during session start", "user_id", input.UserID, "error", err)
		}
	}()

	balance, _, err := u.creditRepo.GetBalance(ctx, input.UserID)
	<-upsertDone
	if err != nil {
		return nil, apperror.New(500, "Could not verify credits", err)
	}

	if balance < cost {
		return nil, apperror.PaymentRequired("Not enough credits")
	}

	session := &domain.InterviewSession{
		UserID:        input.UserID,
		InterviewType: interviewType,
		Status:        domain.SessionInProgress,
		Difficulty:    difficulty,
		QuestionCount: QuestionCountFor(duration),
	}

	// Deduction and session insert run concurrently. The balance check
	// above is not atomic with the deduction, and a failed insert does not
	// refund the spent credits; both are accepted gaps.
	deductErrCh := make(chan error, 1)
	go func() {
		deductErrCh <- u.creditRepo.SetBalance(ctx, input.UserID, balance-cost)
	}()

	insertErr := u.interviewRepo.Create(ctx, session)
	deductErr := <-deductErrCh

	if deductErr != nil {
		return nil, apperror.New(500, "Could not deduct credits", deductErr)
	}
	if insertErr != nil {
		return nil, apperror.Internal(insertErr)
	}

	// Ledger record is fire-and-forget: the session already exists and the
	// balance is already spent, so a failed log never fails the request.
	logCtx := context.WithoutCancel(ctx)
	go func() {
		txn := &domain.CreditTransaction{
			OwnerID: input.UserID,
			Delta:   -cost,
			Reason:  domain.ReasonInterviewStart,
			Metadata: map[string]any{
				"interviewType":  interviewType,
				"duration":       duration,
				"difficulty":     difficulty,
				"customScenario": input.CustomScenario,
			},
		}
		if err := u.creditRepo.AppendTransaction(logCtx, txn); err != nil {
			logger.Log.Error("Failed to record interview_start transaction",
				"user_id", input.UserID, "error", err)
		}
	}()

	return session, nil
}

func (u *interviewUsecase) CompleteSession(ctx context.Context, sessionID, userID string) (*domain.InterviewSession, error) {
	session, err := u.interviewRepo.Complete(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, apperror.Internal(err)
	}

	// A session linked to a schedule flips that schedule to completed.
	if session.ScheduledInterviewID != nil {
		if err := u.scheduleRepo.SetStatus(ctx, *session.ScheduledInterviewID, domain.ScheduleCompleted); err != nil {
			logger.Log.Error("Failed to mark schedule completed",
				"schedule_id", *session.ScheduledInterviewID, "error", err)
		}
	}

	return session, nil
}

// StartScheduled starts (or resumes) the interview session for an
// admin-assigned schedule. Scheduled sessions are institution-funded and do
// not charge the member's ledger.
func (u *interviewUsecase) StartScheduled(ctx context.Context, userID, scheduleID string) (*domain.ScheduledStart, error) {
	schedule, err := u.scheduleRepo.GetForMember(ctx, scheduleID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, apperror.Internal(err)
	}

	switch schedule.Status {
	case domain.ScheduleCompleted:
		// Surface the latest linked session so the client can show results.
		latest, err := u.interviewRepo.LatestForSchedule(ctx, scheduleID, []string{domain.SessionInProgress, domain.SessionCompleted})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Error("Failed to fetch latest session for completed schedule",
				"schedule_id", scheduleID, "error", err)
		}
		var result *domain.ScheduledStart
		if latest != nil {
			result = &domain.ScheduledStart{InterviewID: latest.ID}
		}
		return result, apperror.Conflict("Schedule already completed")

	case domain.ScheduleInProgress:
		existing, err := u.interviewRepo.LatestForSchedule(ctx, scheduleID, []string{domain.SessionInProgress})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Error("Failed to fetch in-progress session for schedule",
				"schedule_id", scheduleID, "error", err)
		}
		if existing != nil {
			return &domain.ScheduledStart{
				InterviewID:    existing.ID,
				AlreadyStarted: true,
				InterviewType:  schedule.Course,
				Difficulty:     schedule.Difficulty,
				ScheduledDate:  schedule.ScheduledDate,
				Deadline:       schedule.Deadline,
				Duration:       schedule.Duration,
			}, nil
		}
		// No session found despite the status; fall through and create one.
	}

	session := &domain.InterviewSession{
		UserID:               userID,
		InterviewType:        schedule.Course,
		Status:               domain.SessionInProgress,
		Difficulty:           schedule.Difficulty,
		QuestionCount:        QuestionCountFor(schedule.Duration),
		ScheduledInterviewID: &schedule.ID,
	}
	if err := u.interviewRepo.Create(ctx, session); err != nil {
		// Pre-migration schemas lack the scheduled_interview_id column;
		// retry the insert without the link.
		if !isMissingColumnError(err, "scheduled_interview_id") {
			return nil, apperror.Internal(err)
		}
		logger.Log.Warn("Session insert with schedule link failed, retrying unlinked", "error", err)
		session.ScheduledInterviewID = nil
		if err := u.interviewRepo.Create(ctx, session); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	if err := u.scheduleRepo.SetStatus(ctx, scheduleID, domain.ScheduleInProgress); err != nil {
		logger.Log.Error("Failed to mark schedule in progress", "schedule_id", scheduleID, "error", err)
	}

	return &domain.ScheduledStart{
		InterviewID:   session.ID,
		InterviewType: schedule.Course,
		Difficulty:    schedule.Difficulty,
		ScheduledDate: schedule.ScheduledDate,
		Deadline:      schedule.Deadline,
		Duration:      schedule.Duration,
	}, nil
}
