// Package closure assembles immutable closure snapshots for loans and
// repledges. It orchestrates the scheme evaluator and folds in the operator's
// manual adjustments; persistence of the result is the caller's concern.
package closure

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goldpawn/pawn-engine/internal/domain"
	"github.com/goldpawn/pawn-engine/internal/scheme"
	customError "github.com/goldpawn/pawn-engine/pkg/errors"
	"github.com/goldpawn/pawn-engine/pkg/utils"
)

// Close computes the closure snapshot for a loan as of the given date. The
// manual reductions come from the operator at closure time; they must be
// non-negative and may not exceed what is actually owed. The returned result
// is identical across repeated calls except for CalculatedAt.
func Close(
	loan *domain.Loan,
	s domain.Scheme,
	fact domain.RateFact,
	asOf time.Time,
	interestReduction decimal.Decimal,
	additionalReduction decimal.Decimal,
) (*domain.ClosureResult, error) {
	if interestReduction.IsNegative() || additionalReduction.IsNegative() {
		return nil, customError.WrapInvalidAdjustment("reductions must be non-negative")
	}

	span := domain.LoanSpan{
		Principal:      loan.BalanceAmount,
		StartDate:      loan.StartDate,
		AsOfDate:       asOf,
		ValidityMonths: loan.ValidityMonths,
	}

	ev, err := scheme.Evaluate(s, fact, span)
	if err != nil {
		return nil, customError.WrapClosureError(err)
	}

	owed := loan.BalanceAmount.Add(ev.Interest)
	reductions := interestReduction.Add(additionalReduction)
	if reductions.GreaterThan(owed) {
		return nil, customError.WrapInvalidAdjustment(
			fmt.Sprintf("reductions %s exceed amount owed %s", reductions.String(), owed.String()))
	}

	total := owed.Sub(reductions)
	if total.IsNegative() {
		total = decimal.Zero
	}

	// The row ID is assigned at persist time; everything here is a pure
	// function of the inputs except CalculatedAt.
	return &domain.ClosureResult{
		LoanID:               loan.ID,
		AsOfDate:             asOf,
		CalculatedInterest:   ev.Interest,
		InterestReduction:    interestReduction,
		AdditionalReduction:  additionalReduction,
		TotalPayable:         utils.RoundMoney(total),
		SurchargeApplied:     ev.SurchargeApplied,
		DurationStr:          utils.FormatDuration(ev.Elapsed, ev.ElapsedUnit),
		InterestRateSnapshot: rateSnapshot(s, fact, ev),
		CalculatedAt:         time.Now().UTC(),
	}, nil
}

// rateSnapshot renders the effective rates for audit display, e.g.
// "2% monthly" or "2% monthly + 2.5% surcharge". Display only; recomputation
// always goes back to the stored scheme and rate snapshot.
func rateSnapshot(s domain.Scheme, fact domain.RateFact, ev *domain.Evaluation) string {
	base := s.InterestRate
	if base.IsZero() {
		base = fact.Rate
	}

	out := fmt.Sprintf("%s%% %s", base.String(), s.InterestPeriod)
	if ev.SurchargeApplied {
		out += fmt.Sprintf(" + %s%% surcharge", ev.SurchargeRate.String())
	}
	return out
}
