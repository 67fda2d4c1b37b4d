package domain

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// FinancialSnapshot holds the totals produced by the net-worth calculation and
// read by the coverage, needs-gap and retirement calculators
type FinancialSnapshot struct {
	Income              decimal.Decimal `yaml:"income" json:"income"`
	Expenses            decimal.Decimal `yaml:"expenses" json:"expenses"`
	Assets              decimal.Decimal `yaml:"assets" json:"assets"`
	Liabilities         decimal.Decimal `yaml:"liabilities" json:"liabilities"`
	RetirementFundValue decimal.Decimal `yaml:"retirement_fund_value" json:"retirementFundValue"`
}

// Ratio is a finite decimal or positive infinity. The zero value is a finite 0.
type Ratio struct {
	Value    decimal.Decimal
	Infinite bool
}

// FiniteRatio wraps a decimal value
func FiniteRatio(v decimal.Decimal) Ratio {
	return Ratio{Value: v}
}

// InfiniteRatio returns +∞
func InfiniteRatio() Ratio {
	return Ratio{Infinite: true}
}

// IsInf reports whether the ratio is +∞
func (r Ratio) IsInf() bool { return r.Infinite }

// Clamp bounds the ratio to [lo, hi]; +∞ maps to hi
func (r Ratio) Clamp(lo, hi decimal.Decimal) decimal.Decimal {
	if r.Infinite {
		return hi
	}
	if r.Value.LessThan(lo) {
		return lo
	}
	if r.Value.GreaterThan(hi) {
		return hi
	}
	return r.Value
}

// StringFixed renders the ratio with the given number of places, or "∞"
func (r Ratio) StringFixed(places int32) string {
	if r.Infinite {
		return "∞"
	}
	return r.Value.StringFixed(places)
}

func (r Ratio) String() string {
	if r.Infinite {
		return "∞"
	}
	return r.Value.String()
}

// MarshalJSON encodes +∞ as the string "Infinity" and finite values as quoted decimals
func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.Infinite {
		return []byte(`"Infinity"`), nil
	}
	return []byte(strconv.Quote(r.Value.String())), nil
}

// UnmarshalJSON accepts "Infinity" or any decimal form
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == `"Infinity"` {
		*r = InfiniteRatio()
		return nil
	}
	var v decimal.Decimal
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*r = FiniteRatio(v)
	return nil
}

// RatioSet holds the derived figures of a net-worth calculation
type RatioSet struct {
	Cashflow         decimal.Decimal `json:"cashflow"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	WealthRatio      Ratio           `json:"wealthRatio"`
	SavingsRatio     Ratio           `json:"savingsRatio"`     // percent
	LiquidityRatio   Ratio           `json:"liquidityRatio"`   // months of expenses covered by assets
	DebtServiceRatio Ratio           `json:"debtServiceRatio"` // percent
}

// HealthTier is the qualitative classification of a wealth ratio
type HealthTier int

const (
	TierBankrupt HealthTier = iota
	TierCritical
	TierNormal
	TierHealthy
	TierFit
	TierAthlete
	TierOlympicAthlete
	TierFree
)

// HealthTierBand describes one tier: its lower bound and display weight
type HealthTierBand struct {
	Tier          HealthTier
	Label         string
	LowerBound    decimal.Decimal
	DisplayWeight int
}

// HealthTierBands lists the tiers in ascending order. Each band covers
// [LowerBound, next LowerBound).
var HealthTierBands = []HealthTierBand{
	{TierBankrupt, "Bankrupt", decimal.Zero, 1},
	{TierCritical, "Critical", decimal.NewFromInt(1), 5},
	{TierNormal, "Normal", decimal.NewFromInt(5), 5},
	{TierHealthy, "Healthy", decimal.NewFromInt(10), 10},
	{TierFit, "Fit", decimal.NewFromInt(20), 30},
	{TierAthlete, "Athlete", decimal.NewFromInt(50), 46},
	{TierOlympicAthlete, "Olympic Athlete", decimal.NewFromInt(96), 72},
	{TierFree, "Free", decimal.NewFromInt(168), 72},
}

// Label returns the display label for the tier
func (t HealthTier) Label() string {
	if t < 0 || int(t) >= len(HealthTierBands) {
		return "Unknown"
	}
	return HealthTierBands[t].Label
}

// DisplayWeight returns the gauge segment weight for the tier
func (t HealthTier) DisplayWeight() int {
	if t < 0 || int(t) >= len(HealthTierBands) {
		return 0
	}
	return HealthTierBands[t].DisplayWeight
}

func (t HealthTier) String() string { return t.Label() }

// MarshalJSON encodes the tier as its label
func (t HealthTier) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Label())), nil
}

// UnmarshalJSON decodes a tier from its label
func (t *HealthTier) UnmarshalJSON(data []byte) error {
	label, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("health tier: expected a quoted label, got %s", data)
	}
	tier, err := ParseHealthTier(label)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// ParseHealthTier returns the tier with the given label
func ParseHealthTier(label string) (HealthTier, error) {
	for _, b := range HealthTierBands {
		if b.Label == label {
			return b.Tier, nil
		}
	}
	return 0, fmt.Errorf("unknown health tier %q", label)
}

// HealthAssessment is the tier classification plus the gauge position
type HealthAssessment struct {
	Tier       HealthTier      `json:"tier"`
	Label      string          `json:"label"`
	Clamped    decimal.Decimal `json:"clampedWealthRatio"`
	BarPercent decimal.Decimal `json:"barPercent"`
}

// BenchmarkResult compares one ratio with its reference threshold
type BenchmarkResult struct {
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	Benchmark decimal.Decimal `json:"benchmark"`
	Passed    bool            `json:"passed"`
	// HigherIsBetter is false for ratios where the benchmark is a ceiling
	HigherIsBetter bool `json:"higherIsBetter"`
}

// NetWorthResult is the complete output of the net-worth calculator
type NetWorthResult struct {
	Inputs     FinancialInputs   `json:"inputs"`
	Snapshot   FinancialSnapshot `json:"snapshot"`
	Ratios     RatioSet          `json:"ratios"`
	Health     HealthAssessment  `json:"health"`
	Benchmarks []BenchmarkResult `json:"benchmarks"`
}
