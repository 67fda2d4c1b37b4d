package config

import (
	"strings"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// ParseAmount coerces free-form text to an amount. Empty, non-numeric and
// non-finite text reads as zero. Thousands separators, surrounding spaces and
// an "RM" currency prefix are accepted.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.EqualFold(s[:2], "RM") {
		s = strings.TrimSpace(s[2:])
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return decimal.Zero
	}

	// decimal rejects NaN and Inf spellings, so they fall through to zero
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ParseRate coerces a rate written either as a fraction ("0.05") or as a
// percentage ("5%")
func ParseRate(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return ParseAmount(strings.TrimSuffix(s, "%")).Div(decimal.NewFromInt(100))
	}
	return ParseAmount(s)
}

// InputsFromForm builds net-worth inputs from form values keyed by field
// name. Missing fields are zero and unknown keys are ignored.
func InputsFromForm(values map[string]string) domain.FinancialInputs {
	var in domain.FinancialInputs
	for _, name := range domain.FieldNames {
		if raw, ok := values[name]; ok {
			in.SetField(name, ParseAmount(raw))
		}
	}
	return in
}
