package scheme

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldpawn/pawn-engine/internal/domain"
	customError "github.com/goldpawn/pawn-engine/pkg/errors"
)

func TestParseConfigValid(t *testing.T) {
	t.Run("simple accepts empty config", func(t *testing.T) {
		cfg, err := ParseConfig(domain.CalcTypeSimple, nil)
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})

	t.Run("tiered", func(t *testing.T) {
		cfg, err := ParseConfig(domain.CalcTypeTiered, json.RawMessage(`{"validity_months":3,"surcharge_rate":2.5}`))
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.ValidityMonths)
		assert.True(t, cfg.SurchargeRate.Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("day_basis_tiered", func(t *testing.T) {
		cfg, err := ParseConfig(domain.CalcTypeDayBasisTiered,
			json.RawMessage(`{"thresholds":[{"days":7,"fraction":0.5},{"days":15,"fraction":0.75}],"surcharge_rate":3}`))
		require.NoError(t, err)
		require.Len(t, cfg.Thresholds, 2)
		assert.Equal(t, 7, cfg.Thresholds[0].Days)
		assert.True(t, cfg.Thresholds[1].Fraction.Equal(decimal.RequireFromString("0.75")))
	})

	t.Run("day_basis_compound", func(t *testing.T) {
		cfg, err := ParseConfig(domain.CalcTypeDayBasisCompound, json.RawMessage(`{"min_days":10,"surcharge_rate":36}`))
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.MinDays)
	})
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name     string
		calcType string
		raw      string
	}{
		{"unknown calculation type", "balloon", `{}`},
		{"malformed JSON", domain.CalcTypeTiered, `{not json`},
		{"tiered missing validity_months", domain.CalcTypeTiered, `{"surcharge_rate":2.5}`},
		{"tiered missing surcharge_rate", domain.CalcTypeTiered, `{"validity_months":3}`},
		{"tiered negative surcharge", domain.CalcTypeTiered, `{"validity_months":3,"surcharge_rate":-1}`},
		{"day tiered without thresholds", domain.CalcTypeDayBasisTiered, `{"surcharge_rate":3}`},
		{"day tiered unsorted thresholds", domain.CalcTypeDayBasisTiered,
			`{"thresholds":[{"days":15,"fraction":0.5},{"days":7,"fraction":0.75}],"surcharge_rate":3}`},
		{"day tiered duplicate threshold days", domain.CalcTypeDayBasisTiered,
			`{"thresholds":[{"days":7,"fraction":0.5},{"days":7,"fraction":0.75}],"surcharge_rate":3}`},
		{"day tiered fraction above one", domain.CalcTypeDayBasisTiered,
			`{"thresholds":[{"days":7,"fraction":1.5}],"surcharge_rate":3}`},
		{"day tiered decreasing fractions", domain.CalcTypeDayBasisTiered,
			`{"thresholds":[{"days":7,"fraction":0.75},{"days":15,"fraction":0.5}],"surcharge_rate":3}`},
		{"day tiered non-positive threshold days", domain.CalcTypeDayBasisTiered,
			`{"thresholds":[{"days":0,"fraction":0.5}],"surcharge_rate":3}`},
		{"compound missing min_days", domain.CalcTypeDayBasisCompound, `{"surcharge_rate":36}`},
		{"compound zero min_days", domain.CalcTypeDayBasisCompound, `{"min_days":0,"surcharge_rate":36}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.calcType, json.RawMessage(tt.raw))
			assert.ErrorIs(t, err, customError.ErrInvalidSchemeConfig)
		})
	}
}
