package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goldpawn/pawn-engine/internal/domain"
)

// SchemeRepository defines the interface for scheme configuration storage
type SchemeRepository interface {
	// Create persists a new scheme
	Create(ctx context.Context, scheme *domain.Scheme) error

	// GetByID retrieves a scheme by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Scheme, error)

	// List retrieves all schemes
	List(ctx context.Context) ([]*domain.Scheme, error)
}

// RateRepository defines the interface for jewel-type rate storage
type RateRepository interface {
	// Create persists a new rate row
	Create(ctx context.Context, rate *domain.RateFact) error

	// GetByJewelType retrieves the rate row for a specific jewel type
	GetByJewelType(ctx context.Context, jewelTypeID uuid.UUID) (*domain.RateFact, error)

	// GetUniversal retrieves the fallback rate row (null jewel type)
	GetUniversal(ctx context.Context) (*domain.RateFact, error)
}

// LoanRepository defines the interface for loan and repledge storage
type LoanRepository interface {
	// Create persists a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByLoanNo retrieves a loan by its business number
	GetByLoanNo(ctx context.Context, loanNo string) (*domain.Loan, error)

	// UpdateStatus sets the status of a loan
	UpdateStatus(ctx context.Context, loanNo string, status string) error

	// ListActivePastValidity lists active loans whose validity expired before asOf
	ListActivePastValidity(ctx context.Context, asOf time.Time) ([]*domain.Loan, error)
}

// ClosureRepository defines the interface for closure snapshot storage.
// Closure rows are insert-only; a repeated closure is a new row.
type ClosureRepository interface {
	// Create persists a closure snapshot
	Create(ctx context.Context, closure *domain.ClosureResult) error

	// GetByLoanID retrieves all closure snapshots for a loan
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.ClosureResult, error)
}
