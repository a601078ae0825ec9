// Package rates resolves the rate facts applicable to a jewel type at loan
// creation time. Resolution happens exactly once per loan; the resolved fact
// is snapshotted onto the loan and never re-looked-up, so later rate edits do
// not rewrite the history of existing loans.
package rates

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/goldpawn/pawn-engine/internal/domain"
	"github.com/goldpawn/pawn-engine/internal/repository"
	customError "github.com/goldpawn/pawn-engine/pkg/errors"
)

type Registry struct {
	repo repository.RateRepository
}

func NewRegistry(repo repository.RateRepository) *Registry {
	return &Registry{repo: repo}
}

// Resolve returns the rate fact for a jewel type. Precedence: exact match on
// the jewel type, then the universal row (null jewel type). When neither
// exists the caller gets NO_APPLICABLE_RATE, never a silent zero rate.
func (r *Registry) Resolve(ctx context.Context, jewelTypeID uuid.NullUUID) (*domain.RateFact, error) {
	if jewelTypeID.Valid {
		fact, err := r.repo.GetByJewelType(ctx, jewelTypeID.UUID)
		if err == nil {
			return fact, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	fact, err := r.repo.GetUniversal(ctx)
	if err == nil {
		return fact, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	jewelType := "unspecified"
	if jewelTypeID.Valid {
		jewelType = jewelTypeID.UUID.String()
	}
	return nil, customError.WrapNoApplicableRate(jewelType)
}
