package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goldpawn/pawn-engine/internal/domain"
)

type schemeRepository struct {
	db *sqlx.DB
}

func NewSchemeRepository(db *sqlx.DB) SchemeRepository {
	return &schemeRepository{db: db}
}

func (r *schemeRepository) Create(ctx context.Context, scheme *domain.Scheme) error {
	query := `
		INSERT INTO schemes (id, name, interest_rate, interest_period, calculation_type, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		scheme.ID,
		scheme.Name,
		scheme.InterestRate,
		scheme.InterestPeriod,
		scheme.CalculationType,
		[]byte(scheme.Config),
		scheme.CreatedAt,
		scheme.UpdatedAt,
	)

	return err
}

func (r *schemeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scheme, error) {
	query := `
		SELECT id, name, interest_rate, interest_period, calculation_type, config, created_at, updated_at
		FROM schemes
		WHERE id = $1
	`

	var scheme domain.Scheme
	err := r.db.GetContext(ctx, &scheme, query, id)
	if err != nil {
		return nil, err
	}

	return &scheme, nil
}

func (r *schemeRepository) List(ctx context.Context) ([]*domain.Scheme, error) {
	query := `
		SELECT id, name, interest_rate, interest_period, calculation_type, config, created_at, updated_at
		FROM schemes
		ORDER BY created_at
	`

	var schemes []*domain.Scheme
	err := r.db.SelectContext(ctx, &schemes, query)
	if err != nil {
		return nil, err
	}

	return schemes, nil
}
