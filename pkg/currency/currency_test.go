package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		amount string
		code   Code
		want   string
	}{
		{"0", USD, "$0.00"},
		{"1234.5", USD, "$1,234.50"},
		{"-1234567.891", USD, "$1,234,567.89"},
		{"999", USD, "$999.00"},
		{"0", CLP, "$0"},
		{"1234.5", CLP, "$1.235"},
		{"-15000", CLP, "$15.000"},
		{"1000000", CLP, "$1.000.000"},
	}
	for _, tc := range tests {
		got := Format(decimal.RequireFromString(tc.amount), tc.code)
		assert.Equal(t, tc.want, got, "%s %s", tc.amount, tc.code)
	}
}

func TestParseAndSymbol(t *testing.T) {
	t.Parallel()
	assert.Equal(t, CLP, Parse(" clp "))
	assert.Equal(t, USD, Parse("EUR"))
	assert.Equal(t, "CLP $", Symbol(CLP))
	assert.Equal(t, "USD $", Symbol(USD))
	assert.False(t, Code("EUR").Valid())
}
