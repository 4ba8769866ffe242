//go:build !integration

package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

func TestDecimalCodec_RoundTrip(t *testing.T) {
	reg := NewRegistry()
	fixed := decimal.RequireFromString("110.00")
	in := model.Bundle{
		ID:         "pack",
		Mode:       model.ModeDetailedTotalized,
		FixedPrice: &fixed,
		TaxRate:    decimal.RequireFromString("0.21"),
		Components: []model.BundleComponent{{ProductID: "cpu", Quantity: 1}},
	}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	var stored bson.M
	require.NoError(t, bson.Unmarshal(raw, &stored))
	assert.Equal(t, "0.21", stored["tax_rate"].(interface{ String() string }).String())

	var out model.Bundle
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	require.NotNil(t, out.FixedPrice)
	assert.True(t, fixed.Equal(*out.FixedPrice))
	assert.True(t, in.TaxRate.Equal(out.TaxRate))
	assert.Nil(t, out.Components[0].UnitPrice)
}

func TestDecimalCodec_DecodesLegacyNumbers(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "19.99", want: "19.99"},
		{name: "double", value: 2.5, want: "2.5"},
		{name: "int32", value: int32(7), want: "7"},
		{name: "int64", value: int64(12), want: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{"_id": "cpu", "list_price": tt.value})
			require.NoError(t, err)

			var p model.Product
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &p))
			assert.Equal(t, tt.want, p.ListPrice.String())
		})
	}
}
