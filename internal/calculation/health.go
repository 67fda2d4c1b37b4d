package calculation

import (
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// GaugeMax is the wealth ratio at which the health gauge is full
var GaugeMax = decimal.NewFromInt(200)

// ClassifyHealth maps a wealth ratio to its tier. The ratio is clamped to
// [0, GaugeMax] first; +∞ lands at GaugeMax and therefore in the top tier.
// A value exactly on a band boundary belongs to the higher band.
func ClassifyHealth(wealthRatio domain.Ratio) domain.HealthAssessment {
	clamped := wealthRatio.Clamp(decimal.Zero, GaugeMax)

	tier := domain.TierBankrupt
	for i := len(domain.HealthTierBands) - 1; i >= 0; i-- {
		band := domain.HealthTierBands[i]
		if clamped.GreaterThanOrEqual(band.LowerBound) {
			tier = band.Tier
			break
		}
	}

	return domain.HealthAssessment{
		Tier:       tier,
		Label:      tier.Label(),
		Clamped:    clamped,
		BarPercent: BarPercent(clamped),
	}
}

// BarPercent returns min(ratio/GaugeMax, 1) × 100
func BarPercent(clamped decimal.Decimal) decimal.Decimal {
	frac := clamped.Div(GaugeMax)
	if frac.GreaterThan(one) {
		frac = one
	}
	if frac.IsNegative() {
		frac = decimal.Zero
	}
	return frac.Mul(hundred)
}
