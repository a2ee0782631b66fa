package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nd(v float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in       string
		expected Kind
	}{
		{"fermentable", KindFermentable},
		{"Hops", KindHop},
		{" misc ", KindMisc},
		{"yeasts", KindYeast},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			k, err := ParseKind(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, k)
		})
	}

	_, err := ParseKind("water")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestItem_Validate(t *testing.T) {
	testCases := []struct {
		desc    string
		item    Item
		wantErr bool
	}{
		{desc: "minimal hop", item: Item{Kind: KindHop, Name: "Cascade"}},
		{desc: "full fermentable", item: Item{Kind: KindFermentable, Name: "Pale Ale Malt", AmountGrams: nd(5000), ColorEBC: nd(6.5)}},
		{desc: "missing name", item: Item{Kind: KindHop}, wantErr: true},
		{desc: "bad kind", item: Item{Kind: "water", Name: "Tap"}, wantErr: true},
		{desc: "negative amount", item: Item{Kind: KindMisc, Name: "Gypsum", AmountGrams: nd(-1)}, wantErr: true},
		{desc: "negative volume", item: Item{Kind: KindMisc, Name: "Lactic acid", VolumeLiters: nd(-0.1)}, wantErr: true},
		{desc: "alpha acid over 100", item: Item{Kind: KindHop, Name: "Citra", AlphaAcid: nd(120)}, wantErr: true},
		{desc: "attenuation below zero", item: Item{Kind: KindYeast, Name: "US-05", Attenuation: nd(-3)}, wantErr: true},
		{desc: "zero amount is allowed", item: Item{Kind: KindYeast, Name: "US-05", AmountGrams: nd(0)}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecipe_Validate(t *testing.T) {
	r := Recipe{Name: "Pale Ale", BatchSizeLiters: nd(20), BoilTimeMinutes: 60, Efficiency: nd(72)}
	assert.NoError(t, r.Validate())

	r.Ingredients = []Ingredient{{ItemID: "x"}}
	assert.ErrorIs(t, r.Validate(), ErrValidation)

	r.Ingredients = []Ingredient{{ItemID: "x", AmountGrams: nd(100), TimeMinutes: 60}}
	assert.NoError(t, r.Validate())

	r.BoilTimeMinutes = -5
	assert.ErrorIs(t, r.Validate(), ErrValidation)

	assert.ErrorIs(t, (&Recipe{}).Validate(), ErrValidation)
}
