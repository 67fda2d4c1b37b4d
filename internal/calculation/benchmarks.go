package calculation

import (
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// Reference thresholds for the three headline ratios
var (
	SavingsBenchmark     = decimal.NewFromInt(10) // percent, floor
	LiquidityBenchmark   = decimal.NewFromInt(3)  // months, floor
	DebtServiceBenchmark = decimal.NewFromInt(35) // percent, ceiling
)

// EvaluateBenchmarks scores savings, liquidity and debt service against their
// thresholds. An infinite liquidity ratio is scored as GaugeMax.
func EvaluateBenchmarks(r domain.RatioSet) []domain.BenchmarkResult {
	savings := r.SavingsRatio.Value
	liquidity := r.LiquidityRatio.Value
	if r.LiquidityRatio.IsInf() {
		liquidity = GaugeMax
	}
	debt := r.DebtServiceRatio.Value

	return []domain.BenchmarkResult{
		{
			Name:           "Savings",
			Value:          savings,
			Benchmark:      SavingsBenchmark,
			Passed:         savings.GreaterThanOrEqual(SavingsBenchmark),
			HigherIsBetter: true,
		},
		{
			Name:           "Liquidity",
			Value:          liquidity,
			Benchmark:      LiquidityBenchmark,
			Passed:         liquidity.GreaterThanOrEqual(LiquidityBenchmark),
			HigherIsBetter: true,
		},
		{
			Name:      "Debt Service",
			Value:     debt,
			Benchmark: DebtServiceBenchmark,
			Passed:    debt.LessThanOrEqual(DebtServiceBenchmark),
		},
	}
}
