package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	"github.com/finacct/accrual_subledger_app/internal/core/services"
	"github.com/finacct/accrual_subledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccrualService is a mock type for the AccrualSvcFacade interface
type MockAccrualService struct {
	mock.Mock
}

func (m *MockAccrualService) CreateAccrual(ctx context.Context, tenantID string, req dto.CreateAccrualRequest, actor string) (*domain.Accrual, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualService) CreateAccrualFromTemplate(ctx context.Context, tenantID string, req dto.CreateAccrualRequest, template domain.Accrual, actor string) (*domain.Accrual, error) {
	args := m.Called(ctx, tenantID, req, template, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualService) ApproveAccrual(ctx context.Context, tenantID, accrualID string, req dto.ApproveAccrualRequest, approver string) (*domain.Accrual, error) {
	args := m.Called(ctx, tenantID, accrualID, req, approver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualService) RejectAccrual(ctx context.Context, tenantID, accrualID string, req dto.RejectAccrualRequest, actor string) (*domain.Accrual, error) {
	args := m.Called(ctx, tenantID, accrualID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualService) ReverseAccrual(ctx context.Context, tenantID, accrualID string, req dto.ReverseAccrualRequest, actor string) (*domain.Accrual, error) {
	args := m.Called(ctx, tenantID, accrualID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualService) SettleAccrual(ctx context.Context, tenantID, accrualID string, req dto.SettleAccrualRequest, actor string) (*domain.Accrual, error) {
	args := m.Called(ctx, tenantID, accrualID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualService) GetAccrualByID(ctx context.Context, tenantID, accrualID string) (*domain.Accrual, error) {
	args := m.Called(ctx, tenantID, accrualID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualService) ListAccruals(ctx context.Context, tenantID string, params dto.ListAccrualsParams) (*dto.ListAccrualsResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccrualsResponse), args.Error(1)
}

func (m *MockAccrualService) GetSummary(ctx context.Context, tenantID string) (*domain.AccrualSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccrualSummary), args.Error(1)
}

func (m *MockAccrualService) ListEntriesByAccrual(ctx context.Context, tenantID, accrualID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, accrualID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Test Suite Setup ---

type RecurrenceServiceTestSuite struct {
	suite.Suite
	mockAccrualRepo *MockAccrualRepository
	mockAccrualSvc  *MockAccrualService

	tenantID string
}

func (suite *RecurrenceServiceTestSuite) SetupTest() {
	suite.mockAccrualRepo = new(MockAccrualRepository)
	suite.mockAccrualSvc = new(MockAccrualService)
	suite.tenantID = uuid.NewString()
}

// monthlyTemplate builds a recurring monthly accrual template due at asOf.
func (suite *RecurrenceServiceTestSuite) monthlyTemplate() domain.Accrual {
	next := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	return domain.Accrual{
		AccrualID:          uuid.NewString(),
		TenantID:           suite.tenantID,
		AccrualNumber:      "ACR-202501-0001",
		Description:        "Monthly rent accrual",
		Type:               domain.AccrualExpense,
		Amount:             decimal.NewFromInt(5000),
		OutstandingBalance: decimal.NewFromInt(5000),
		AccrualDate:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		PeriodStart:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:          time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		DebitAccountID:     "6200-RENT",
		CreditAccountID:    "2100-ACCR",
		Status:             domain.AccrualActive,
		Version:            2,
		Recurrence: domain.Recurrence{
			IsRecurring:     true,
			Frequency:       domain.FrequencyMonthly,
			NextAccrualDate: &next,
		},
	}
}

func (suite *RecurrenceServiceTestSuite) TestRunDaily_GeneratesMonthlyInstance() {
	ctx := context.Background()
	asOf := time.Date(2025, 2, 15, 8, 0, 0, 0, time.UTC)
	template := suite.monthlyTemplate()

	svc := services.NewRecurrenceService(suite.mockAccrualRepo, suite.mockAccrualSvc)

	suite.mockAccrualRepo.On("FindDueRecurring", mock.Anything, asOf).Return([]domain.Accrual{template}, nil).Once()
	suite.mockAccrualRepo.On("FindDueAutoReversals", mock.Anything, asOf).Return([]domain.Accrual{}, nil).Once()

	// The generated instance is a plain accrual on the occurrence date with
	// the period shifted by the same offset, committed together with the
	// template whose schedule advanced one month.
	suite.mockAccrualSvc.On("CreateAccrualFromTemplate", mock.Anything, suite.tenantID, mock.MatchedBy(func(req dto.CreateAccrualRequest) bool {
		return req.AccrualDate.Equal(time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)) &&
			req.Recurrence == nil &&
			req.Amount.Equal(template.Amount) &&
			req.PeriodStart.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	}), mock.MatchedBy(func(a domain.Accrual) bool {
		return a.AccrualID == template.AccrualID &&
			a.Recurrence.OccurrencesCompleted == 1 &&
			a.Recurrence.NextAccrualDate != nil &&
			a.Recurrence.NextAccrualDate.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	}), domain.SystemActor).Return(&domain.Accrual{AccrualID: uuid.NewString()}, nil).Once()

	report, err := svc.RunDaily(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(1, report.RecurringDue)
	suite.Equal(1, report.RecurringGenerated)
	suite.Equal(0, report.Failures)
	suite.mockAccrualSvc.AssertExpectations(suite.T())
	suite.mockAccrualRepo.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestRunDaily_OccurrenceLimitStopsRecurrence() {
	ctx := context.Background()
	asOf := time.Date(2025, 2, 15, 8, 0, 0, 0, time.UTC)
	template := suite.monthlyTemplate()
	template.Recurrence.TotalOccurrences = 2
	template.Recurrence.OccurrencesCompleted = 1

	svc := services.NewRecurrenceService(suite.mockAccrualRepo, suite.mockAccrualSvc)

	suite.mockAccrualRepo.On("FindDueRecurring", mock.Anything, asOf).Return([]domain.Accrual{template}, nil).Once()
	suite.mockAccrualRepo.On("FindDueAutoReversals", mock.Anything, asOf).Return([]domain.Accrual{}, nil).Once()

	// Final occurrence: the schedule terminates instead of advancing.
	suite.mockAccrualSvc.On("CreateAccrualFromTemplate", mock.Anything, suite.tenantID, mock.Anything, mock.MatchedBy(func(a domain.Accrual) bool {
		return a.Recurrence.OccurrencesCompleted == 2 && a.Recurrence.NextAccrualDate == nil
	}), domain.SystemActor).Return(&domain.Accrual{AccrualID: uuid.NewString()}, nil).Once()

	report, err := svc.RunDaily(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(1, report.RecurringGenerated)
	suite.mockAccrualSvc.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestRunDaily_FailedScheduleAdvanceRegeneratesCleanly() {
	ctx := context.Background()
	asOf := time.Date(2025, 2, 15, 8, 0, 0, 0, time.UTC)
	template := suite.monthlyTemplate()
	occurrenceDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	svc := services.NewRecurrenceService(suite.mockAccrualRepo, suite.mockAccrualSvc)

	suite.mockAccrualRepo.On("FindDueRecurring", mock.Anything, asOf).Return([]domain.Accrual{template}, nil).Twice()
	suite.mockAccrualRepo.On("FindDueAutoReversals", mock.Anything, asOf).Return([]domain.Accrual{}, nil).Twice()

	// First run: a concurrent operation on the template wins the version
	// race; occurrence and schedule advance roll back together.
	suite.mockAccrualSvc.On("CreateAccrualFromTemplate", mock.Anything, suite.tenantID, mock.MatchedBy(func(req dto.CreateAccrualRequest) bool {
		return req.AccrualDate.Equal(occurrenceDate)
	}), mock.Anything, domain.SystemActor).Return(nil, apperrors.ErrConcurrencyConflict).Once()
	// Second run: the template still reads as due and the same occurrence is
	// generated exactly once.
	suite.mockAccrualSvc.On("CreateAccrualFromTemplate", mock.Anything, suite.tenantID, mock.MatchedBy(func(req dto.CreateAccrualRequest) bool {
		return req.AccrualDate.Equal(occurrenceDate)
	}), mock.Anything, domain.SystemActor).Return(&domain.Accrual{AccrualID: uuid.NewString()}, nil).Once()

	first, err := svc.RunDaily(ctx, asOf)
	suite.Require().NoError(err)
	suite.Equal(0, first.RecurringGenerated)
	suite.Equal(1, first.Failures)

	second, err := svc.RunDaily(ctx, asOf)
	suite.Require().NoError(err)
	suite.Equal(1, second.RecurringGenerated)
	suite.Equal(0, second.Failures)

	suite.mockAccrualSvc.AssertExpectations(suite.T())
	suite.mockAccrualSvc.AssertNotCalled(suite.T(), "CreateAccrual", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurrenceServiceTestSuite) TestRunDaily_PendingTemplateDoesNotSpawn() {
	ctx := context.Background()
	asOf := time.Date(2025, 2, 15, 8, 0, 0, 0, time.UTC)
	template := suite.monthlyTemplate()
	template.Status = domain.AccrualPendingApproval

	svc := services.NewRecurrenceService(suite.mockAccrualRepo, suite.mockAccrualSvc)

	suite.mockAccrualRepo.On("FindDueRecurring", mock.Anything, asOf).Return([]domain.Accrual{template}, nil).Once()
	suite.mockAccrualRepo.On("FindDueAutoReversals", mock.Anything, asOf).Return([]domain.Accrual{}, nil).Once()

	report, err := svc.RunDaily(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(0, report.RecurringGenerated)
	suite.Equal(1, report.Failures)
	suite.mockAccrualSvc.AssertNotCalled(suite.T(), "CreateAccrualFromTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurrenceServiceTestSuite) TestRunDaily_ExecutesAutoReversals() {
	ctx := context.Background()
	asOf := time.Date(2025, 2, 1, 6, 0, 0, 0, time.UTC)
	target := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	due := domain.Accrual{
		AccrualID:          uuid.NewString(),
		TenantID:           suite.tenantID,
		OutstandingBalance: decimal.NewFromInt(1200),
		Status:             domain.AccrualActive,
		AutoReversal:       domain.AutoReversal{Enabled: true, TargetDate: &target},
	}

	svc := services.NewRecurrenceService(suite.mockAccrualRepo, suite.mockAccrualSvc)

	suite.mockAccrualRepo.On("FindDueRecurring", mock.Anything, asOf).Return([]domain.Accrual{}, nil).Once()
	suite.mockAccrualRepo.On("FindDueAutoReversals", mock.Anything, asOf).Return([]domain.Accrual{due}, nil).Once()

	// Auto-reversal is a full reversal attributed to the system actor.
	suite.mockAccrualSvc.On("ReverseAccrual", mock.Anything, suite.tenantID, due.AccrualID, mock.MatchedBy(func(req dto.ReverseAccrualRequest) bool {
		return req.Amount.Equal(due.OutstandingBalance)
	}), domain.SystemActor).Return(&domain.Accrual{AccrualID: due.AccrualID, Status: domain.AccrualReversed}, nil).Once()

	report, err := svc.RunDaily(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(1, report.AutoReversalsDue)
	suite.Equal(1, report.AutoReversalsDone)
	suite.Equal(0, report.Failures)
	suite.mockAccrualSvc.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestRunDaily_OneFailureDoesNotBlockBatch() {
	ctx := context.Background()
	asOf := time.Date(2025, 2, 1, 6, 0, 0, 0, time.UTC)
	bad := domain.Accrual{AccrualID: uuid.NewString(), TenantID: suite.tenantID, OutstandingBalance: decimal.NewFromInt(100), Status: domain.AccrualActive}
	good := domain.Accrual{AccrualID: uuid.NewString(), TenantID: suite.tenantID, OutstandingBalance: decimal.NewFromInt(200), Status: domain.AccrualActive}

	svc := services.NewRecurrenceService(suite.mockAccrualRepo, suite.mockAccrualSvc)

	suite.mockAccrualRepo.On("FindDueRecurring", mock.Anything, asOf).Return([]domain.Accrual{}, nil).Once()
	suite.mockAccrualRepo.On("FindDueAutoReversals", mock.Anything, asOf).Return([]domain.Accrual{bad, good}, nil).Once()
	suite.mockAccrualSvc.On("ReverseAccrual", mock.Anything, suite.tenantID, bad.AccrualID, mock.Anything, domain.SystemActor).Return(nil, apperrors.ErrInvalidState).Once()
	suite.mockAccrualSvc.On("ReverseAccrual", mock.Anything, suite.tenantID, good.AccrualID, mock.Anything, domain.SystemActor).Return(&domain.Accrual{AccrualID: good.AccrualID}, nil).Once()

	report, err := svc.RunDaily(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(2, report.AutoReversalsDue)
	suite.Equal(1, report.AutoReversalsDone)
	suite.Equal(1, report.Failures)
}

func TestRecurrenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurrenceServiceTestSuite))
}
