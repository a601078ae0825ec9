package scheme

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/goldpawn/pawn-engine/internal/domain"
	customError "github.com/goldpawn/pawn-engine/pkg/errors"
)

// rawConfig is the wire shape of the operator-authored config blob. It is
// duck-typed at the source, so every field is optional here and required
// per calculation type below.
type rawConfig struct {
	Thresholds     []domain.Tier    `json:"thresholds"`
	SurchargeRate  *decimal.Decimal `json:"surcharge_rate"`
	ValidityMonths *int             `json:"validity_months"`
	MinDays        *int             `json:"min_days"`
}

// ParseConfig validates the config blob against the scheme's calculation type
// and returns the typed form. This is the single validation boundary; the
// evaluator trusts its output.
func ParseConfig(calcType string, raw json.RawMessage) (*domain.SchemeConfig, error) {
	var rc rawConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rc); err != nil {
			return nil, customError.WrapInvalidSchemeConfig(fmt.Sprintf("config is not valid JSON: %v", err))
		}
	}

	switch calcType {
	case domain.CalcTypeSimple:
		// No config required; post-validity behavior comes from the rate snapshot.
		return &domain.SchemeConfig{}, nil

	case domain.CalcTypeTiered:
		if rc.ValidityMonths == nil || *rc.ValidityMonths <= 0 {
			return nil, customError.WrapInvalidSchemeConfig("tiered schemes require validity_months > 0")
		}
		if rc.SurchargeRate == nil || rc.SurchargeRate.IsNegative() {
			return nil, customError.WrapInvalidSchemeConfig("tiered schemes require a non-negative surcharge_rate")
		}
		return &domain.SchemeConfig{
			ValidityMonths: *rc.ValidityMonths,
			SurchargeRate:  *rc.SurchargeRate,
		}, nil

	case domain.CalcTypeDayBasisTiered:
		if len(rc.Thresholds) == 0 {
			return nil, customError.WrapInvalidSchemeConfig("day_basis_tiered schemes require at least one threshold")
		}
		if err := validateThresholds(rc.Thresholds); err != nil {
			return nil, err
		}
		if rc.SurchargeRate == nil || rc.SurchargeRate.IsNegative() {
			return nil, customError.WrapInvalidSchemeConfig("day_basis_tiered schemes require a non-negative surcharge_rate")
		}
		return &domain.SchemeConfig{
			Thresholds:    rc.Thresholds,
			SurchargeRate: *rc.SurchargeRate,
		}, nil

	case domain.CalcTypeCompound, domain.CalcTypeDayBasisCompound:
		if rc.MinDays == nil || *rc.MinDays < 1 {
			return nil, customError.WrapInvalidSchemeConfig("day_basis_compound schemes require min_days >= 1")
		}
		if rc.SurchargeRate == nil || rc.SurchargeRate.IsNegative() {
			return nil, customError.WrapInvalidSchemeConfig("day_basis_compound schemes require a non-negative surcharge_rate")
		}
		return &domain.SchemeConfig{
			MinDays:       *rc.MinDays,
			SurchargeRate: *rc.SurchargeRate,
		}, nil
	}

	return nil, customError.WrapInvalidSchemeConfig(fmt.Sprintf("unrecognized calculation_type %q", calcType))
}

func validateThresholds(tiers []domain.Tier) error {
	one := decimal.NewFromInt(1)
	prevDays := 0
	prevFraction := decimal.Zero

	for i, t := range tiers {
		if t.Days <= 0 {
			return customError.WrapInvalidSchemeConfig(fmt.Sprintf("threshold %d has non-positive days", i))
		}
		if i > 0 && t.Days <= prevDays {
			return customError.WrapInvalidSchemeConfig("thresholds must be sorted ascending by days without overlap")
		}
		if t.Fraction.IsNegative() || t.Fraction.GreaterThan(one) {
			return customError.WrapInvalidSchemeConfig(fmt.Sprintf("threshold %d fraction must be within [0,1]", i))
		}
		if t.Fraction.LessThan(prevFraction) {
			return customError.WrapInvalidSchemeConfig("threshold fractions must be non-decreasing")
		}
		prevDays = t.Days
		prevFraction = t.Fraction
	}

	return nil
}
