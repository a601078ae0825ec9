// Package scheme implements the interest evaluation core: a pure mapping
// from (scheme, rate snapshot, loan span) to accrued interest. Evaluation has
// no side effects and identical inputs always produce identical results,
// which closure audit trails rely on.
package scheme

import (
	"github.com/shopspring/decimal"

	"github.com/goldpawn/pawn-engine/internal/domain"
	customError "github.com/goldpawn/pawn-engine/pkg/errors"
	"github.com/goldpawn/pawn-engine/pkg/utils"
)

// annualBasisDays converts a yearly quoted rate to a daily one.
const annualBasisDays = 365

var percent = decimal.NewFromInt(100)

// Evaluate computes the interest accrued over span under the given scheme.
// The rate fact is the snapshot taken at loan creation; it supplies the
// post-validity penalty rate for simple schemes and the base rate when the
// scheme itself does not quote one.
func Evaluate(s domain.Scheme, fact domain.RateFact, span domain.LoanSpan) (*domain.Evaluation, error) {
	if err := validateSpan(span); err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(s.CalculationType, s.Config)
	if err != nil {
		return nil, err
	}

	base := s.InterestRate
	if base.IsZero() {
		base = fact.Rate
	}

	switch s.CalculationType {
	case domain.CalcTypeSimple:
		return evalSimple(base, fact, span), nil
	case domain.CalcTypeTiered:
		return evalTiered(base, cfg, span), nil
	case domain.CalcTypeDayBasisTiered:
		return evalDayBasisTiered(base, cfg, span), nil
	case domain.CalcTypeCompound, domain.CalcTypeDayBasisCompound:
		return evalDayBasisCompound(base, cfg, span), nil
	}

	// ParseConfig already rejected unknown types.
	return nil, customError.WrapInvalidSchemeConfig("unrecognized calculation_type")
}

func validateSpan(span domain.LoanSpan) error {
	if span.AsOfDate.Before(span.StartDate) {
		return customError.WrapInvalidSpan("as_of_date is before start_date")
	}
	if span.Principal.IsNegative() {
		return customError.WrapInvalidSpan("principal is negative")
	}
	return nil
}

// elapsedMonths applies the ceiling-month convention: any day into a new
// month charges the full month, and a same-day closure still charges one.
func elapsedMonths(span domain.LoanSpan) int {
	months := utils.MonthsBetweenCeil(span.StartDate, span.AsOfDate)
	if months < 1 {
		months = 1
	}
	return months
}

// monthlyCharge is principal * rate% for `months` months.
func monthlyCharge(principal, rate decimal.Decimal, months int) decimal.Decimal {
	return principal.Mul(rate).Div(percent).Mul(decimal.NewFromInt(int64(months)))
}

// splitAcrossValidity charges months within validity at the base rate and the
// excess at excessRate. Surcharge applies strictly beyond validity: a closure
// exactly on the validity anniversary stays on the base rate.
func splitAcrossValidity(principal, base, excessRate decimal.Decimal, months, validity int) (decimal.Decimal, bool) {
	if validity <= 0 || months <= validity {
		return monthlyCharge(principal, base, months), false
	}
	within := monthlyCharge(principal, base, validity)
	beyond := monthlyCharge(principal, excessRate, months-validity)
	return within.Add(beyond), true
}

func evalSimple(base decimal.Decimal, fact domain.RateFact, span domain.LoanSpan) *domain.Evaluation {
	months := elapsedMonths(span)

	post := base
	if fact.PostValidityRate.Valid {
		post = fact.PostValidityRate.Decimal
	}

	interest, surcharged := splitAcrossValidity(span.Principal, base, post, months, span.ValidityMonths)

	ev := &domain.Evaluation{
		Interest:         utils.RoundMoney(interest),
		SurchargeApplied: surcharged,
		ElapsedUnit:      domain.UnitMonths,
		Elapsed:          months,
	}
	if surcharged {
		ev.SurchargeRate = post
	}
	return ev
}

func evalTiered(base decimal.Decimal, cfg *domain.SchemeConfig, span domain.LoanSpan) *domain.Evaluation {
	months := elapsedMonths(span)

	// Month-based tiered schemes carry their own validity in config.
	interest, surcharged := splitAcrossValidity(span.Principal, base, cfg.SurchargeRate, months, cfg.ValidityMonths)

	ev := &domain.Evaluation{
		Interest:         utils.RoundMoney(interest),
		SurchargeApplied: surcharged,
		ElapsedUnit:      domain.UnitMonths,
		Elapsed:          months,
	}
	if surcharged {
		ev.SurchargeRate = cfg.SurchargeRate
	}
	return ev
}

func evalDayBasisTiered(base decimal.Decimal, cfg *domain.SchemeConfig, span domain.LoanSpan) *domain.Evaluation {
	days := utils.DaysBetweenCeil(span.StartDate, span.AsOfDate)
	if days < 1 {
		days = 1
	}
	months := utils.MonthsBetweenCeil(span.StartDate, span.AsOfDate)

	// Within the first month the last crossed threshold scales one month's
	// charge. Below the smallest threshold nothing is owed yet (grace period).
	if months <= 1 {
		fraction := decimal.Zero
		for _, t := range cfg.Thresholds {
			if t.Days > days {
				break
			}
			fraction = t.Fraction
		}
		interest := span.Principal.Mul(base).Div(percent).Mul(fraction)
		return &domain.Evaluation{
			Interest:    utils.RoundMoney(interest),
			ElapsedUnit: domain.UnitDays,
			Elapsed:     days,
		}
	}

	// Beyond one month full monthly charges apply, ceiling months, with the
	// excess over the loan's validity at the configured surcharge rate.
	interest, surcharged := splitAcrossValidity(span.Principal, base, cfg.SurchargeRate, months, span.ValidityMonths)

	ev := &domain.Evaluation{
		Interest:         utils.RoundMoney(interest),
		SurchargeApplied: surcharged,
		ElapsedUnit:      domain.UnitDays,
		Elapsed:          days,
	}
	if surcharged {
		ev.SurchargeRate = cfg.SurchargeRate
	}
	return ev
}

func evalDayBasisCompound(base decimal.Decimal, cfg *domain.SchemeConfig, span domain.LoanSpan) *domain.Evaluation {
	days := utils.DaysBetweenCeil(span.StartDate, span.AsOfDate)
	if days < cfg.MinDays {
		days = cfg.MinDays
	}

	basis := decimal.NewFromInt(annualBasisDays)
	daily := base.Div(basis)

	validityDays := utils.DaysInMonths(span.StartDate, span.ValidityMonths)

	if validityDays <= 0 || days <= validityDays {
		interest := span.Principal.Mul(daily).Div(percent).Mul(decimal.NewFromInt(int64(days)))
		return &domain.Evaluation{
			Interest:    utils.RoundMoney(interest),
			ElapsedUnit: domain.UnitDays,
			Elapsed:     days,
		}
	}

	excessDaily := cfg.SurchargeRate.Div(basis)
	within := span.Principal.Mul(daily).Div(percent).Mul(decimal.NewFromInt(int64(validityDays)))
	beyond := span.Principal.Mul(excessDaily).Div(percent).Mul(decimal.NewFromInt(int64(days - validityDays)))

	return &domain.Evaluation{
		Interest:         utils.RoundMoney(within.Add(beyond)),
		SurchargeApplied: true,
		SurchargeRate:    cfg.SurchargeRate,
		ElapsedUnit:      domain.UnitDays,
		Elapsed:          days,
	}
}
