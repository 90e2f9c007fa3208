package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("1234,56").Equal(decimal.NewFromFloat(1234.56)))
	assert.True(t, ParseAmount("0,00").IsZero())
	// Le point est aussi accepté
	assert.True(t, ParseAmount("10.5").Equal(decimal.NewFromFloat(10.5)))
	// Valeur illisible: zéro
	assert.True(t, ParseAmount("n/a").IsZero())
	assert.True(t, ParseAmount("").IsZero())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1234,56", FormatAmount(decimal.NewFromFloat(1234.56)))
	assert.Equal(t, "0,00", FormatAmount(decimal.Zero))
	assert.Equal(t, "10,50", FormatAmount(decimal.NewFromFloat(10.5)))
}

func TestAmountRoundTrip(t *testing.T) {
	d := decimal.NewFromFloat(99.9)
	assert.True(t, ParseAmount(FormatAmount(d)).Equal(d))
}
