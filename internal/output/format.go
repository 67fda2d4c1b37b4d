package output

import (
	"strings"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as "RM 1,234.56"
func FormatCurrency(amount decimal.Decimal) string {
	return "RM " + groupThousands(amount.StringFixed(2))
}

// FormatPercentage formats a percent figure with two decimals
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRatio formats a ratio with two decimals, or "∞"
func FormatRatio(r domain.Ratio) string {
	return r.StringFixed(2)
}

// FormatPercentRatio formats a percent-valued ratio
func FormatPercentRatio(r domain.Ratio) string {
	if r.IsInf() {
		return r.StringFixed(2)
	}
	return FormatPercentage(r.Value)
}

// FormatRate formats a fractional rate (0.05) as a percentage (5.00%)
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// FormatGap describes a classified gap, e.g. "Shortfall of RM 1,000.00"
func FormatGap(c domain.GapClassification) string {
	switch c.Status {
	case domain.GapShortfall:
		return "Shortfall of " + FormatCurrency(c.Amount)
	case domain.GapSurplus:
		return "Surplus of " + FormatCurrency(c.Amount)
	default:
		return "Balanced"
	}
}

// groupThousands inserts commas into the integer part of a fixed-point string
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}
