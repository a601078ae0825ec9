package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goldpawn/pawn-engine/internal/config"
	"github.com/goldpawn/pawn-engine/internal/domain"
	"github.com/goldpawn/pawn-engine/internal/rates"
	customError "github.com/goldpawn/pawn-engine/pkg/errors"
	"github.com/goldpawn/pawn-engine/tests/mocks"
)

type testDeps struct {
	schemeRepo  *mocks.MockSchemeRepository
	rateRepo    *mocks.MockRateRepository
	loanRepo    *mocks.MockLoanRepository
	closureRepo *mocks.MockClosureRepository
	service     *PawnService
}

func newTestService() *testDeps {
	schemeRepo := &mocks.MockSchemeRepository{}
	rateRepo := &mocks.MockRateRepository{}
	loanRepo := &mocks.MockLoanRepository{}
	closureRepo := &mocks.MockClosureRepository{}

	cfg := &config.Config{
		Business: config.BusinessConfig{
			DefaultValidityMonths: 3,
			SchemeCacheTTL:        time.Hour,
		},
	}

	return &testDeps{
		schemeRepo:  schemeRepo,
		rateRepo:    rateRepo,
		loanRepo:    loanRepo,
		closureRepo: closureRepo,
		service: &PawnService{
			schemeRepo:  schemeRepo,
			rateRepo:    rateRepo,
			loanRepo:    loanRepo,
			closureRepo: closureRepo,
			registry:    rates.NewRegistry(rateRepo),
			config:      cfg,
		},
	}
}

func testScheme() *domain.Scheme {
	return &domain.Scheme{
		ID:              uuid.New(),
		Name:            "Scheme 1",
		InterestRate:    decimal.RequireFromString("2"),
		InterestPeriod:  domain.PeriodMonthly,
		CalculationType: domain.CalcTypeTiered,
		Config:          json.RawMessage(`{"validity_months":3,"surcharge_rate":2.5}`),
	}
}

func TestCreateLoanSnapshotsRate(t *testing.T) {
	deps := newTestService()
	sch := testScheme()
	jewelType := uuid.New()

	fact := &domain.RateFact{
		JewelTypeID:          uuid.NullUUID{UUID: jewelType, Valid: true},
		Rate:                 decimal.RequireFromString("2"),
		PostValidityRate:     decimal.NullDecimal{Decimal: decimal.RequireFromString("3"), Valid: true},
		EstimationPercentage: decimal.RequireFromString("75"),
	}

	deps.loanRepo.On("GetByLoanNo", mock.Anything, "GL-1001").Return(nil, sql.ErrNoRows)
	deps.schemeRepo.On("GetByID", mock.Anything, sch.ID).Return(sch, nil)
	deps.rateRepo.On("GetByJewelType", mock.Anything, jewelType).Return(fact, nil)
	deps.loanRepo.On("Create", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
		return loan.LoanNo == "GL-1001" &&
			loan.InterestRate.Equal(fact.Rate) &&
			loan.PostValidityRate.Valid &&
			loan.PostValidityRate.Decimal.Equal(decimal.RequireFromString("3")) &&
			loan.BalanceAmount.Equal(loan.Principal) &&
			loan.Status == domain.LoanStatusActive
	})).Return(nil)

	loan, err := deps.service.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		LoanNo:         "GL-1001",
		SchemeID:       sch.ID,
		JewelTypeID:    &jewelType,
		Principal:      decimal.RequireFromString("20000"),
		StartDate:      "2026-01-28",
		ValidityMonths: 3,
	})
	require.NoError(t, err)
	assert.True(t, loan.EstimationPercentage.Equal(decimal.RequireFromString("75")))

	deps.loanRepo.AssertExpectations(t)
	deps.rateRepo.AssertExpectations(t)
}

func TestCreateLoanDefaultsValidityMonths(t *testing.T) {
	deps := newTestService()
	sch := testScheme()

	deps.loanRepo.On("GetByLoanNo", mock.Anything, "GL-1002").Return(nil, sql.ErrNoRows)
	deps.schemeRepo.On("GetByID", mock.Anything, sch.ID).Return(sch, nil)
	deps.rateRepo.On("GetUniversal", mock.Anything).Return(&domain.RateFact{Rate: decimal.RequireFromString("2")}, nil)
	deps.loanRepo.On("Create", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
		return loan.ValidityMonths == 3
	})).Return(nil)

	_, err := deps.service.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		LoanNo:    "GL-1002",
		SchemeID:  sch.ID,
		Principal: decimal.RequireFromString("5000"),
		StartDate: "2026-02-01",
	})
	require.NoError(t, err)

	deps.loanRepo.AssertExpectations(t)
}

func TestCreateLoanAlreadyExists(t *testing.T) {
	deps := newTestService()

	deps.loanRepo.On("GetByLoanNo", mock.Anything, "GL-1001").Return(&domain.Loan{LoanNo: "GL-1001"}, nil)

	_, err := deps.service.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		LoanNo:    "GL-1001",
		SchemeID:  uuid.New(),
		Principal: decimal.RequireFromString("20000"),
		StartDate: "2026-01-28",
	})
	assert.ErrorIs(t, err, customError.ErrLoanAlreadyExists)
}

func TestCreateLoanNoApplicableRate(t *testing.T) {
	deps := newTestService()
	sch := testScheme()

	deps.loanRepo.On("GetByLoanNo", mock.Anything, "GL-1003").Return(nil, sql.ErrNoRows)
	deps.schemeRepo.On("GetByID", mock.Anything, sch.ID).Return(sch, nil)
	deps.rateRepo.On("GetUniversal", mock.Anything).Return(nil, sql.ErrNoRows)

	_, err := deps.service.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		LoanNo:    "GL-1003",
		SchemeID:  sch.ID,
		Principal: decimal.RequireFromString("20000"),
		StartDate: "2026-01-28",
	})
	assert.ErrorIs(t, err, customError.ErrNoApplicableRate)
}

func TestCreateSchemeRejectsInvalidConfig(t *testing.T) {
	deps := newTestService()

	_, err := deps.service.CreateScheme(context.Background(), &domain.CreateSchemeRequest{
		Name:            "broken",
		InterestRate:    decimal.RequireFromString("2"),
		InterestPeriod:  domain.PeriodMonthly,
		CalculationType: domain.CalcTypeTiered,
		Config:          json.RawMessage(`{"surcharge_rate":2.5}`),
	})
	assert.ErrorIs(t, err, customError.ErrInvalidSchemeConfig)

	deps.schemeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func closableLoan(sch *domain.Scheme) *domain.Loan {
	return &domain.Loan{
		ID:             uuid.New(),
		LoanNo:         "GL-1001",
		SchemeID:       sch.ID,
		Principal:      decimal.RequireFromString("20000"),
		BalanceAmount:  decimal.RequireFromString("20000"),
		InterestRate:   decimal.RequireFromString("2"),
		StartDate:      time.Date(2026, time.January, 28, 0, 0, 0, 0, time.UTC),
		ValidityMonths: 3,
		Status:         domain.LoanStatusActive,
	}
}

func TestCloseLoanPersistsSnapshot(t *testing.T) {
	deps := newTestService()
	sch := testScheme()
	loan := closableLoan(sch)

	deps.loanRepo.On("GetByLoanNo", mock.Anything, "GL-1001").Return(loan, nil)
	deps.schemeRepo.On("GetByID", mock.Anything, sch.ID).Return(sch, nil)
	deps.closureRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.ClosureResult) bool {
		return c.ID != uuid.Nil &&
			c.LoanID == loan.ID &&
			c.TotalPayable.Equal(decimal.RequireFromString("21700"))
	})).Return(nil)
	deps.loanRepo.On("UpdateStatus", mock.Anything, "GL-1001", domain.LoanStatusClosed).Return(nil)

	result, err := deps.service.CloseLoan(context.Background(), "GL-1001",
		time.Date(2026, time.May, 28, 0, 0, 0, 0, time.UTC), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, result.CalculatedInterest.Equal(decimal.RequireFromString("1700")))
	assert.True(t, result.SurchargeApplied)

	deps.closureRepo.AssertExpectations(t)
	deps.loanRepo.AssertExpectations(t)
}

func TestCloseLoanAlreadyClosed(t *testing.T) {
	deps := newTestService()
	sch := testScheme()
	loan := closableLoan(sch)
	loan.Status = domain.LoanStatusClosed

	deps.loanRepo.On("GetByLoanNo", mock.Anything, "GL-1001").Return(loan, nil)
	deps.schemeRepo.On("GetByID", mock.Anything, sch.ID).Return(sch, nil)

	_, err := deps.service.CloseLoan(context.Background(), "GL-1001",
		time.Date(2026, time.May, 28, 0, 0, 0, 0, time.UTC), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, customError.ErrLoanAlreadyClosed)

	deps.closureRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPreviewClosureDoesNotPersist(t *testing.T) {
	deps := newTestService()
	sch := testScheme()
	loan := closableLoan(sch)

	deps.loanRepo.On("GetByLoanNo", mock.Anything, "GL-1001").Return(loan, nil)
	deps.schemeRepo.On("GetByID", mock.Anything, sch.ID).Return(sch, nil)

	result, err := deps.service.PreviewClosure(context.Background(), "GL-1001",
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, result.CalculatedInterest.Equal(decimal.RequireFromString("400")))
	assert.Equal(t, uuid.Nil, result.ID)

	deps.closureRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	deps.loanRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkOverdueLoans(t *testing.T) {
	deps := newTestService()
	now := time.Now()

	loans := []*domain.Loan{
		{LoanNo: "GL-1001", Status: domain.LoanStatusActive},
		{LoanNo: "GL-1002", Status: domain.LoanStatusActive},
	}

	deps.loanRepo.On("ListActivePastValidity", mock.Anything, now).Return(loans, nil)
	deps.loanRepo.On("UpdateStatus", mock.Anything, "GL-1001", domain.LoanStatusOverdue).Return(nil)
	deps.loanRepo.On("UpdateStatus", mock.Anything, "GL-1002", domain.LoanStatusOverdue).Return(nil)

	marked, err := deps.service.MarkOverdueLoans(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	deps.loanRepo.AssertExpectations(t)
}
