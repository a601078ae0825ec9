package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Calculation types select the interest algorithm applied to a loan.
const (
	CalcTypeSimple           = "simple"
	CalcTypeCompound         = "compound"
	CalcTypeTiered           = "tiered"
	CalcTypeDayBasisTiered   = "day_basis_tiered"
	CalcTypeDayBasisCompound = "day_basis_compound"
)

// Units the interest rate is quoted in.
const (
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
	PeriodDaily   = "daily"
)

// Elapsed-time units reported back by an evaluation.
const (
	UnitMonths = "months"
	UnitDays   = "days"
)

// Scheme is an admin-authored interest calculation policy. The config blob is
// operator input and is validated once at the boundary; see the scheme package.
type Scheme struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	InterestRate    decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	InterestPeriod  string          `json:"interest_period" db:"interest_period"`
	CalculationType string          `json:"calculation_type" db:"calculation_type"`
	Config          json.RawMessage `json:"config" db:"config"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Tier is a day-count threshold; crossing it changes the fraction of one
// month's interest charged (day-basis schemes).
type Tier struct {
	Days     int             `json:"days"`
	Fraction decimal.Decimal `json:"fraction"`
}

// SchemeConfig is the parsed, validated form of a scheme's config blob.
// Only the fields relevant to the scheme's calculation type are populated.
type SchemeConfig struct {
	// day_basis_tiered: ascending thresholds with non-decreasing fractions.
	Thresholds []Tier
	// tiered and day-basis types: rate applied beyond validity.
	SurchargeRate decimal.Decimal
	// tiered (month-based): nominal validity in months.
	ValidityMonths int
	// day_basis_compound: minimum chargeable holding period.
	MinDays int
}

// DTOs for requests and responses

type CreateSchemeRequest struct {
	Name            string          `json:"name" validate:"required"`
	InterestRate    decimal.Decimal `json:"interest_rate" validate:"required"`
	InterestPeriod  string          `json:"interest_period" validate:"required,oneof=monthly yearly daily"`
	CalculationType string          `json:"calculation_type" validate:"required,oneof=simple compound tiered day_basis_tiered day_basis_compound"`
	Config          json.RawMessage `json:"config"`
}

type SchemeResponse struct {
	Scheme *Scheme `json:"scheme"`
}
