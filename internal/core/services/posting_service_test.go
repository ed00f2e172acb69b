package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/finacct/accrual_subledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockNumberingRepo *MockNumberingRepository
	service           portssvc.PostingSvcFacade
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockNumberingRepo = new(MockNumberingRepository)
	suite.service = services.NewPostingService(suite.mockJournalRepo, suite.mockNumberingRepo)
}

func (suite *PostingServiceTestSuite) instruction() portssvc.PostingInstruction {
	return portssvc.PostingInstruction{
		TenantID:        uuid.NewString(),
		AccrualID:       uuid.NewString(),
		EntryType:       domain.AccrualEntry,
		EntryDate:       time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Description:     "Accrual ACR-202501-0001: utilities estimate",
		DebitAccountID:  "6100-UTIL",
		CreditAccountID: "2100-ACCR",
		Amount:          decimal.NewFromInt(1000),
		Actor:           uuid.NewString(),
	}
}

func (suite *PostingServiceTestSuite) TestPostEntryInTx_Success() {
	ctx := context.Background()
	instr := suite.instruction()

	suite.mockNumberingRepo.On("NextNumberInTx", mock.Anything, mock.Anything, instr.TenantID, mock.Anything, "202501").Return(int64(42), nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Balanced() && e.Status == domain.EntryPosted
	})).Return(nil).Once()

	entry, err := suite.service.PostEntryInTx(ctx, nil, instr)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-202501-0042", entry.EntryNumber)
	suite.Equal(2025, entry.PeriodYear)
	suite.Equal(1, entry.PeriodMonth)
	suite.True(entry.DebitAmount.Equal(instr.Amount))
	suite.True(entry.CreditAmount.Equal(instr.Amount))
	suite.True(entry.Balanced())
	suite.Equal(instr.Actor, entry.CreatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockNumberingRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostEntryInTx_NonPositiveAmount() {
	instr := suite.instruction()
	instr.Amount = decimal.Zero

	_, err := suite.service.PostEntryInTx(context.Background(), nil, instr)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockNumberingRepo.AssertNotCalled(suite.T(), "NextNumberInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntryInTx_MissingAccount() {
	instr := suite.instruction()
	instr.CreditAccountID = ""

	_, err := suite.service.PostEntryInTx(context.Background(), nil, instr)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostEntryInTx_SaveFailurePropagates() {
	instr := suite.instruction()

	suite.mockNumberingRepo.On("NextNumberInTx", mock.Anything, mock.Anything, instr.TenantID, mock.Anything, "202501").Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(apperrors.ErrInternal).Once()

	_, err := suite.service.PostEntryInTx(context.Background(), nil, instr)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInternal)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
