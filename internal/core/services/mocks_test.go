package services_test

import (
	"context"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portsrepo "github.com/finacct/accrual_subledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// MockAccrualRepository is a mock type for the AccrualRepositoryWithTx interface
type MockAccrualRepository struct {
	mock.Mock
}

func (m *MockAccrualRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockAccrualRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccrualRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccrualRepository) FindAccrualByID(ctx context.Context, tenantID, accrualID string) (*domain.Accrual, error) {
	args := m.Called(ctx, tenantID, accrualID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualRepository) ListAccruals(ctx context.Context, tenantID string, filter portsrepo.ListAccrualsFilter, limit int, nextToken *string) ([]domain.Accrual, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	var accruals []domain.Accrual
	if args.Get(0) != nil {
		accruals = args.Get(0).([]domain.Accrual)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return accruals, token, args.Error(2)
}

func (m *MockAccrualRepository) FindDueRecurring(ctx context.Context, asOf time.Time) ([]domain.Accrual, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accrual), args.Error(1)
}

func (m *MockAccrualRepository) FindDueAutoReversals(ctx context.Context, asOf time.Time) ([]domain.Accrual, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accrual), args.Error(1)
}

func (m *MockAccrualRepository) SaveAccrualInTx(ctx context.Context, tx pgx.Tx, accrual domain.Accrual) error {
	args := m.Called(ctx, tx, accrual)
	return args.Error(0)
}

func (m *MockAccrualRepository) UpdateAccrualInTx(ctx context.Context, tx pgx.Tx, accrual domain.Accrual) error {
	args := m.Called(ctx, tx, accrual)
	return args.Error(0)
}

// MockJournalRepository is a mock type for the JournalEntryRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByAccrual(ctx context.Context, tenantID, accrualID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, accrualID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

// MockNumberingRepository is a mock type for the NumberingRepository interface
type MockNumberingRepository struct {
	mock.Mock
}

func (m *MockNumberingRepository) NextNumberInTx(ctx context.Context, tx pgx.Tx, tenantID string, scope portsrepo.NumberingScope, periodKey string) (int64, error) {
	args := m.Called(ctx, tx, tenantID, scope, periodKey)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnalyticsRepository is a mock type for the AnalyticsRepository interface
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) GetSummary(ctx context.Context, tenantID string, asOf time.Time) (*domain.AccrualSummary, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccrualSummary), args.Error(1)
}

func (m *MockAnalyticsRepository) GetMonthlyTrend(ctx context.Context, tenantID string, months int, asOf time.Time) ([]domain.TrendPoint, error) {
	args := m.Called(ctx, tenantID, months, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrendPoint), args.Error(1)
}

func (m *MockAnalyticsRepository) GetTypeBreakdown(ctx context.Context, tenantID string) ([]domain.TypeBreakdownRow, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TypeBreakdownRow), args.Error(1)
}

func (m *MockAnalyticsRepository) GetAging(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AgingRow, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AgingRow), args.Error(1)
}

func (m *MockAnalyticsRepository) GetAccuracyStats(ctx context.Context, tenantID string) (*domain.AccuracyStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccuracyStats), args.Error(1)
}

// MockAccountValidator is a mock type for the AccountValidator interface
type MockAccountValidator struct {
	mock.Mock
}

func (m *MockAccountValidator) AccountExists(ctx context.Context, tenantID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountValidator) IsPostable(ctx context.Context, tenantID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

// MockPostingService is a mock type for the PostingSvcFacade interface
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostEntryInTx(ctx context.Context, tx pgx.Tx, instr portssvc.PostingInstruction) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, instr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// MockEventPublisher is a mock type for the EventPublisher interface. It also
// records every published event for assertion.
type MockEventPublisher struct {
	mock.Mock
	Events []domain.AccrualEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.AccrualEvent) {
	m.Called(ctx, event)
	m.Events = append(m.Events, event)
}
