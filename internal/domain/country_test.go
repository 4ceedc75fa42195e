package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"alpha-2 passthrough", "FR", "FR"},
		{"lowercase alpha-2", "de", "DE"},
		{"UK shorthand folds to GB", "UK", "GB"},
		{"uk lowercase", "uk", "GB"},
		{"full name", "United Kingdom", "GB"},
		{"name with different case", "FRANCE", "FR"},
		{"name with whitespace", "  Spain  ", "ES"},
		{"USA alias", "USA", "US"},
		{"czechia alias", "Czechia", "CZ"},
		{"unknown name", "Atlantis", ""},
		{"empty", "", ""},
		{"two-character garbage", "1X", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCountry(tt.input))
		})
	}
}

func TestIsEU(t *testing.T) {
	assert.True(t, IsEU("FR"))
	assert.True(t, IsEU("ES"))
	assert.False(t, IsEU("GB"), "the UK left the EU")
	assert.False(t, IsEU("US"))
	assert.False(t, IsEU(""))
}

func TestIsUK(t *testing.T) {
	assert.True(t, IsUK("GB"))
	assert.False(t, IsUK("UK"), "jurisdiction logic only sees normalized codes")
	assert.False(t, IsUK("IE"))
}
