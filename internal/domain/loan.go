package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive  = "active"
	LoanStatusOverdue = "overdue"
	LoanStatusClosed  = "closed"
)

// Loan represents a pawn loan or a repledge against already-held collateral.
// The rate fields are snapshots taken from the resolved RateFact at creation.
type Loan struct {
	ID                   uuid.UUID           `json:"id" db:"id"`
	LoanNo               string              `json:"loan_no" db:"loan_no"`
	SchemeID             uuid.UUID           `json:"scheme_id" db:"scheme_id"`
	JewelTypeID          uuid.NullUUID       `json:"jewel_type_id" db:"jewel_type_id"`
	Principal            decimal.Decimal     `json:"principal" db:"principal"`
	BalanceAmount        decimal.Decimal     `json:"balance_amount" db:"balance_amount"`
	InterestRate         decimal.Decimal     `json:"interest_rate" db:"interest_rate"`
	PostValidityRate     decimal.NullDecimal `json:"post_validity_rate" db:"post_validity_rate"`
	EstimationPercentage decimal.Decimal     `json:"estimation_percentage" db:"estimation_percentage"`
	StartDate            time.Time           `json:"start_date" db:"start_date"`
	ValidityMonths       int                 `json:"validity_months" db:"validity_months"`
	IsRepledge           bool                `json:"is_repledge" db:"is_repledge"`
	Status               string              `json:"status" db:"status"`
	CreatedAt            time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at" db:"updated_at"`
}

// RateFact reconstructs the rate snapshot stored on the loan.
func (l *Loan) RateFact() RateFact {
	return RateFact{
		JewelTypeID:          l.JewelTypeID,
		Rate:                 l.InterestRate,
		PostValidityRate:     l.PostValidityRate,
		EstimationPercentage: l.EstimationPercentage,
	}
}

// LoanSpan is the time-and-amount slice of a loan that interest is computed
// over. Principal is the outstanding balance being closed, not necessarily
// the original disbursement.
type LoanSpan struct {
	Principal      decimal.Decimal
	StartDate      time.Time
	AsOfDate       time.Time
	ValidityMonths int
}

// Evaluation is the outcome of running a scheme over a span.
type Evaluation struct {
	Interest         decimal.Decimal `json:"interest"`
	SurchargeApplied bool            `json:"surcharge_applied"`
	SurchargeRate    decimal.Decimal `json:"surcharge_rate"`
	ElapsedUnit      string          `json:"elapsed_unit"`
	Elapsed          int             `json:"elapsed"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	LoanNo         string          `json:"loan_no" validate:"required"`
	SchemeID       uuid.UUID       `json:"scheme_id" validate:"required"`
	JewelTypeID    *uuid.UUID      `json:"jewel_type_id"`
	Principal      decimal.Decimal `json:"principal" validate:"required"`
	StartDate      string          `json:"start_date" validate:"required"`
	ValidityMonths int             `json:"validity_months" validate:"gte=0"`
	IsRepledge     bool            `json:"is_repledge"`
}

type CreateLoanResponse struct {
	Loan *Loan `json:"loan"`
}

type CloseLoanRequest struct {
	AsOfDate            string          `json:"as_of_date"`
	InterestReduction   decimal.Decimal `json:"interest_reduction"`
	AdditionalReduction decimal.Decimal `json:"additional_reduction"`
}
