package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit_Factor(t *testing.T) {
	tests := []struct {
		unit   Unit
		factor float64
		ok     bool
		family Family
	}{
		{Gram, 1, true, FamilyMass},
		{Kilogram, 1000, true, FamilyMass},
		{Ounce, 28.3495, true, FamilyMass},
		{Pound, 453.592, true, FamilyMass},
		{Millilitre, 1, true, FamilyVolume},
		{Litre, 1000, true, FamilyVolume},
		{Cup, 236.588, true, FamilyVolume},
		{Tablespoon, 14.787, true, FamilyVolume},
		{Teaspoon, 4.929, true, FamilyVolume},
		{Piece, 0, false, FamilyCount},
		{Unit("gallon"), 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			factor, ok := tt.unit.Factor()
			assert.Equal(t, tt.factor, factor)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.family, tt.unit.Family())
		})
	}
}

func TestUnits_AllHaveLabels(t *testing.T) {
	all := Units()
	require.Len(t, all, 10)
	for _, u := range all {
		assert.True(t, u.Valid())
		assert.NotEqual(t, string(u), u.Label(), "unit %s should have a display label", u)
	}
	assert.Equal(t, "tablespoon/s", Tablespoon.Label())
	assert.True(t, Cup.IsVolume())
	assert.True(t, Ounce.IsMass())
	assert.False(t, Piece.IsMass())
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit(" tbsp ")
	require.NoError(t, err)
	assert.Equal(t, Tablespoon, u)

	_, err = ParseUnit("Tablespoon")
	assert.Error(t, err)
}

func TestNormalizeUnit(t *testing.T) {
	tests := map[string]Unit{
		"g":           Gram,
		"Grams":       Gram,
		"KILO":        Kilogram,
		"ounces":      Ounce,
		"lbs":         Pound,
		"Pounds":      Pound,
		"milliliter":  Millilitre,
		"millilitre":  Millilitre,
		" Liters ":    Litre,
		"cups":        Cup,
		"Tablespoons": Tablespoon,
		"tsp":         Teaspoon,
		"teaspoon":    Teaspoon,
		"pcs":         Piece,
		"pinch":       Piece,
		"":            Piece,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, NormalizeUnit(input))
		})
	}
}
