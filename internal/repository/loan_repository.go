package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/goldpawn/pawn-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, loan_no, scheme_id, jewel_type_id, principal, balance_amount,
			interest_rate, post_validity_rate, estimation_percentage, start_date,
			validity_months, is_repledge, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.LoanNo,
		loan.SchemeID,
		loan.JewelTypeID,
		loan.Principal,
		loan.BalanceAmount,
		loan.InterestRate,
		loan.PostValidityRate,
		loan.EstimationPercentage,
		loan.StartDate,
		loan.ValidityMonths,
		loan.IsRepledge,
		loan.Status,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByLoanNo(ctx context.Context, loanNo string) (*domain.Loan, error) {
	query := `
		SELECT id, loan_no, scheme_id, jewel_type_id, principal, balance_amount,
			interest_rate, post_validity_rate, estimation_percentage, start_date,
			validity_months, is_repledge, status, created_at, updated_at
		FROM loans
		WHERE loan_no = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanNo)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, loanNo string, status string) error {
	query := `
		UPDATE loans
		SET status = $2, updated_at = $3
		WHERE loan_no = $1
	`

	_, err := r.db.ExecContext(ctx, query, loanNo, status, time.Now())
	return err
}

func (r *loanRepository) ListActivePastValidity(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	query := `
		SELECT id, loan_no, scheme_id, jewel_type_id, principal, balance_amount,
			interest_rate, post_validity_rate, estimation_percentage, start_date,
			validity_months, is_repledge, status, created_at, updated_at
		FROM loans
		WHERE status = 'active'
		  AND start_date + validity_months * INTERVAL '1 month' < $1
		ORDER BY start_date
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, asOf)
	if err != nil {
		return nil, err
	}

	return loans, nil
}
