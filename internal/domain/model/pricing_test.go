package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePricingMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PricingMode
		wantErr bool
	}{
		{name: "canonical", input: "detailed_displayed", want: ModeDetailedDisplayed},
		{name: "dashes and case", input: " Detailed-Totalized ", want: ModeDetailedTotalized},
		{name: "non detailed", input: "non_detailed_totalized", want: ModeNonDetailedTotalized},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "bulk", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePricingMode(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfiguration)
				assert.Equal(t, ModeUnset, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPricingMode_Detailed(t *testing.T) {
	assert.True(t, ModeDetailedDisplayed.Detailed())
	assert.True(t, ModeDetailedIgnored.Detailed())
	assert.True(t, ModeDetailedTotalized.Detailed())
	assert.False(t, ModeNonDetailedTotalized.Detailed())
	assert.False(t, ModeUnset.Detailed())
	assert.False(t, ModeUnset.Valid())
}

func TestPricingMode_Label(t *testing.T) {
	for _, m := range PricingModes {
		assert.NotEqual(t, "unset", m.Label(), m)
	}
	assert.Equal(t, "Detailed - Displayed Components Price", ModeDetailedDisplayed.Label())
	assert.Equal(t, "unset", PricingMode("x").Label())
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "0.13", RoundMoney(decimal.RequireFromString("0.125"), 2).String())
	assert.Equal(t, "-0.13", RoundMoney(decimal.RequireFromString("-0.125"), 2).String())
	assert.Equal(t, "91.667", RoundMoney(decimal.RequireFromString("91.6666"), 3).String())
}
