package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 1250.5, 1250.5},
		{"int", 42, 42.0},
		{"string number", "199.99", 199.99},
		{"currency string", "$1,250.00", 1250.0},
		{"nil", nil, 0.0},
		{"null literal", "null", 0.0},
		{"None literal", "None", 0.0},
		{"garbage", "twelve dollars", 0.0},
		{"bool", true, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.in))
		})
	}
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, 5, Quantity(5.0))
	assert.Equal(t, 5, Quantity("5"))
	assert.Equal(t, 3, Quantity("3.0"))
	assert.Equal(t, 0, Quantity(nil))
	assert.Equal(t, 0, Quantity("null"))
}

func TestIdent(t *testing.T) {
	assert.Equal(t, "INV-1", Ident("INV-1"))
	assert.Equal(t, "UNKNOWN", Ident(nil))
	assert.Equal(t, "UNKNOWN", Ident("null"))
	assert.Equal(t, "UNKNOWN", Ident("  "))
	assert.Equal(t, "UNKNOWN", Ident(12))
}

func TestStr(t *testing.T) {
	assert.Equal(t, "2025-01-10", Str("2025-01-10"))
	assert.Empty(t, Str(nil))
	assert.Empty(t, Str("N/A"))
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.85, Fraction(0.85, 0.5))
	assert.Equal(t, 0.5, Fraction(nil, 0.5))
	assert.Equal(t, 1.0, Fraction(3.2, 0.5))
	assert.Equal(t, 0.0, Fraction(-1.0, 0.5))
	assert.Equal(t, 0.9, Fraction("0.9", 0.5))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true, false))
	assert.True(t, Bool("yes", false))
	assert.False(t, Bool("false", true))
	assert.True(t, Bool(nil, true))
	assert.False(t, Bool("maybe", false))
}
