package usecase_test

import (
	"context"
	"os"
	"testing"
	"time"

	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockCreditRepo struct {
	mock.Mock
}

func (m *MockCreditRepo) GetBalance(ctx context.Context, ownerID string) (int, bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockCreditRepo) InsertBalance(ctx context.Context, ownerID string, balance int) error {
	return m.Called(ctx, ownerID, balance).Error(0)
}

func (m *MockCreditRepo) SetBalance(ctx context.Context, ownerID string, balance int) error {
	return m.Called(ctx, ownerID, balance).Error(0)
}

func (m *MockCreditRepo) UpsertBalance(ctx context.Context, ownerID string, balance int) error {
	return m.Called(ctx, ownerID, balance).Error(0)
}

func (m *MockCreditRepo) AppendTransaction(ctx context.Context, txn *domain.CreditTransaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockCreditRepo) ListTransactions(ctx context.Context, ownerID string, limit int) ([]domain.CreditTransaction, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransaction), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, id string, update *domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) SetInstitution(ctx context.Context, id string, institutionID string) error {
	return m.Called(ctx, id, institutionID).Error(0)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, session *domain.InterviewSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id string) (*domain.InterviewSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewSession), args.Error(1)
}

func (m *MockInterviewRepo) Complete(ctx context.Context, id, userID string) (*domain.InterviewSession, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewSession), args.Error(1)
}

func (m *MockInterviewRepo) LatestForSchedule(ctx context.Context, scheduleID string, statuses []string) (*domain.InterviewSession, error) {
	args := m.Called(ctx, scheduleID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewSession), args.Error(1)
}

func (m *MockInterviewRepo) CountCompletedForUsers(ctx context.Context, userIDs []string) (int, error) {
	args := m.Called(ctx, userIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockInterviewRepo) AverageScoreForUsers(ctx context.Context, userIDs []string) (float64, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).(float64), args.Error(1)
}

type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) Insert(ctx context.Context, schedule *domain.ScheduledInterview, withDuration bool) error {
	return m.Called(ctx, schedule, withDuration).Error(0)
}

func (m *MockScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduledInterview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledInterview), args.Error(1)
}

func (m *MockScheduleRepo) GetForMember(ctx context.Context, id, memberID string) (*domain.ScheduledInterview, error) {
	args := m.Called(ctx, id, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledInterview), args.Error(1)
}

func (m *MockScheduleRepo) ListByInstitution(ctx context.Context, institutionID string) ([]domain.ScheduledInterview, error) {
	args := m.Called(ctx, institutionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledInterview), args.Error(1)
}

func (m *MockScheduleRepo) ListPendingForMember(ctx context.Context, memberID string, from time.Time) ([]domain.ScheduledInterview, error) {
	args := m.Called(ctx, memberID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledInterview), args.Error(1)
}

func (m *MockScheduleRepo) CountPending(ctx context.Context, institutionID string) (int, error) {
	args := m.Called(ctx, institutionID)
	return args.Int(0), args.Error(1)
}

func (m *MockScheduleRepo) SetStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockScheduleRepo) Delete(ctx context.Context, id, institutionID string) error {
	return m.Called(ctx, id, institutionID).Error(0)
}

type MockBatchRepo struct {
	mock.Mock
}

func (m *MockBatchRepo) Create(ctx context.Context, batch *domain.Batch) error {
	return m.Called(ctx, batch).Error(0)
}

func (m *MockBatchRepo) GetByJoinCode(ctx context.Context, code string) (*domain.Batch, string, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.Batch), args.String(1), args.Error(2)
}

func (m *MockBatchRepo) ListByInstitution(ctx context.Context, institutionID string) ([]domain.Batch, error) {
	args := m.Called(ctx, institutionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}

func (m *MockBatchRepo) Delete(ctx context.Context, id, institutionID string) error {
	return m.Called(ctx, id, institutionID).Error(0)
}

type MockInstitutionRepo struct {
	mock.Mock
}

func (m *MockInstitutionRepo) Create(ctx context.Context, inst *domain.Institution) error {
	return m.Called(ctx, inst).Error(0)
}

func (m *MockInstitutionRepo) GetByID(ctx context.Context, id string) (*domain.Institution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Institution), args.Error(1)
}

func (m *MockInstitutionRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Institution, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Institution), args.Error(1)
}

func (m *MockInstitutionRepo) List(ctx context.Context) ([]domain.Institution, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Institution), args.Error(1)
}

func (m *MockInstitutionRepo) SetInviteCode(ctx context.Context, id, code string) error {
	return m.Called(ctx, id, code).Error(0)
}

type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) IsInstitutionMember(ctx context.Context, institutionID, userID string) (bool, error) {
	args := m.Called(ctx, institutionID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepo) IsBatchMember(ctx context.Context, batchID, userID string) (bool, error) {
	args := m.Called(ctx, batchID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepo) AddInstitutionMember(ctx context.Context, institutionID, userID, role string) error {
	return m.Called(ctx, institutionID, userID, role).Error(0)
}

func (m *MockMembershipRepo) AddBatchMember(ctx context.Context, batchID, userID string) error {
	return m.Called(ctx, batchID, userID).Error(0)
}

func (m *MockMembershipRepo) ListInstitutionMembers(ctx context.Context, institutionID string) ([]domain.Membership, error) {
	args := m.Called(ctx, institutionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockMembershipRepo) MemberIDs(ctx context.Context, institutionID string) ([]string, error) {
	args := m.Called(ctx, institutionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMembershipRepo) RemoveInstitutionMember(ctx context.Context, institutionID, userID string) error {
	return m.Called(ctx, institutionID, userID).Error(0)
}

func (m *MockMembershipRepo) UpdateRole(ctx context.Context, institutionID, userID, role string) error {
	return m.Called(ctx, institutionID, userID, role).Error(0)
}
