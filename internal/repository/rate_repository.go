package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goldpawn/pawn-engine/internal/domain"
)

type rateRepository struct {
	db *sqlx.DB
}

func NewRateRepository(db *sqlx.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) Create(ctx context.Context, rate *domain.RateFact) error {
	query := `
		INSERT INTO interest_rates (id, jewel_type_id, rate, post_validity_rate, estimation_percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		rate.ID,
		rate.JewelTypeID,
		rate.Rate,
		rate.PostValidityRate,
		rate.EstimationPercentage,
		rate.CreatedAt,
		rate.UpdatedAt,
	)

	return err
}

func (r *rateRepository) GetByJewelType(ctx context.Context, jewelTypeID uuid.UUID) (*domain.RateFact, error) {
	query := `
		SELECT id, jewel_type_id, rate, post_validity_rate, estimation_percentage, created_at, updated_at
		FROM interest_rates
		WHERE jewel_type_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var rate domain.RateFact
	err := r.db.GetContext(ctx, &rate, query, jewelTypeID)
	if err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *rateRepository) GetUniversal(ctx context.Context) (*domain.RateFact, error) {
	query := `
		SELECT id, jewel_type_id, rate, post_validity_rate, estimation_percentage, created_at, updated_at
		FROM interest_rates
		WHERE jewel_type_id IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	var rate domain.RateFact
	err := r.db.GetContext(ctx, &rate, query)
	if err != nil {
		return nil, err
	}

	return &rate, nil
}
