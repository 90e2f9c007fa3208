package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Les accumulateurs monétaires (dailySales, dailyProfit) sont persistés en
// chaînes décimales à virgule ("1234,56"). ParseAmount tolère aussi le point
// et retombe sur zéro pour toute valeur illisible.

func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func FormatAmount(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}
