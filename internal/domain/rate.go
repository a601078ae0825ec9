package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateFact captures the rate facts applicable to a jewel type. A row with a
// null jewel type is the universal fallback. Once a fact is snapshotted onto
// a loan at creation it is never re-resolved, so later rate changes do not
// retroactively alter existing loans.
type RateFact struct {
	ID                   uuid.UUID           `json:"id" db:"id"`
	JewelTypeID          uuid.NullUUID       `json:"jewel_type_id" db:"jewel_type_id"`
	Rate                 decimal.Decimal     `json:"rate" db:"rate"`
	PostValidityRate     decimal.NullDecimal `json:"post_validity_rate" db:"post_validity_rate"`
	EstimationPercentage decimal.Decimal     `json:"estimation_percentage" db:"estimation_percentage"`
	CreatedAt            time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at" db:"updated_at"`
}

type CreateRateRequest struct {
	JewelTypeID          *uuid.UUID       `json:"jewel_type_id"`
	Rate                 decimal.Decimal  `json:"rate" validate:"required"`
	PostValidityRate     *decimal.Decimal `json:"post_validity_rate"`
	EstimationPercentage decimal.Decimal  `json:"estimation_percentage"`
}

type RateResponse struct {
	Rate *RateFact `json:"rate"`
}
