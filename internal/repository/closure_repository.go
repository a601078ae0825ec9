package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goldpawn/pawn-engine/internal/domain"
)

type closureRepository struct {
	db *sqlx.DB
}

func NewClosureRepository(db *sqlx.DB) ClosureRepository {
	return &closureRepository{db: db}
}

func (r *closureRepository) Create(ctx context.Context, closure *domain.ClosureResult) error {
	query := `
		INSERT INTO closures (id, loan_id, as_of_date, calculated_interest, interest_reduction,
			additional_reduction, total_payable, surcharge_applied, duration_str,
			interest_rate_snapshot, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		closure.ID,
		closure.LoanID,
		closure.AsOfDate,
		closure.CalculatedInterest,
		closure.InterestReduction,
		closure.AdditionalReduction,
		closure.TotalPayable,
		closure.SurchargeApplied,
		closure.DurationStr,
		closure.InterestRateSnapshot,
		closure.CalculatedAt,
	)

	return err
}

func (r *closureRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.ClosureResult, error) {
	query := `
		SELECT id, loan_id, as_of_date, calculated_interest, interest_reduction,
			additional_reduction, total_payable, surcharge_applied, duration_str,
			interest_rate_snapshot, calculated_at
		FROM closures
		WHERE loan_id = $1
		ORDER BY calculated_at
	`

	var closures []*domain.ClosureResult
	err := r.db.SelectContext(ctx, &closures, query, loanID)
	if err != nil {
		return nil, err
	}

	return closures, nil
}
