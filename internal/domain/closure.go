package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClosureResult is the immutable financial snapshot produced when a loan or
// repledge is settled. It is persisted once and never edited; a repeated
// closure is a new row. The duration and rate strings are denormalized echoes
// for audit display and are never authoritative for recomputation.
type ClosureResult struct {
	ID                   uuid.UUID       `json:"id" db:"id"`
	LoanID               uuid.UUID       `json:"loan_id" db:"loan_id"`
	AsOfDate             time.Time       `json:"as_of_date" db:"as_of_date"`
	CalculatedInterest   decimal.Decimal `json:"calculated_interest" db:"calculated_interest"`
	InterestReduction    decimal.Decimal `json:"interest_reduction" db:"interest_reduction"`
	AdditionalReduction  decimal.Decimal `json:"additional_reduction" db:"additional_reduction"`
	TotalPayable         decimal.Decimal `json:"total_payable" db:"total_payable"`
	SurchargeApplied     bool            `json:"surcharge_applied" db:"surcharge_applied"`
	DurationStr          string          `json:"duration_str" db:"duration_str"`
	InterestRateSnapshot string          `json:"interest_rate_snapshot" db:"interest_rate_snapshot"`
	CalculatedAt         time.Time       `json:"calculated_at" db:"calculated_at"`
}

type ClosureResponse struct {
	LoanNo  string         `json:"loan_no"`
	Closure *ClosureResult `json:"closure"`
}
