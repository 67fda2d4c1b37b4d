package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthTier_JSONLabels(t *testing.T) {
	for _, band := range HealthTierBands {
		t.Run(band.Label, func(t *testing.T) {
			data, err := json.Marshal(band.Tier)
			require.NoError(t, err)
			assert.Equal(t, `"`+band.Label+`"`, string(data))

			var got HealthTier
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, band.Tier, got)
		})
	}
}

func TestHealthTier_UnmarshalRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown label", `"Wealthy"`},
		{"number", `3`},
		{"lowercase label", `"healthy"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tier HealthTier
			assert.Error(t, tier.UnmarshalJSON([]byte(tt.data)))
		})
	}
}

func TestNetWorthResult_JSONRoundTrip(t *testing.T) {
	in := NetWorthResult{
		Inputs: FinancialInputs{Income: IncomeInputs{Salary: decimal.NewFromInt(5000)}},
		Snapshot: FinancialSnapshot{
			Income:   decimal.NewFromInt(5000),
			Expenses: decimal.Zero,
			Assets:   decimal.NewFromInt(50000),
		},
		Ratios: RatioSet{
			NetWorth:       decimal.NewFromInt(50000),
			WealthRatio:    InfiniteRatio(),
			SavingsRatio:   FiniteRatio(decimal.NewFromInt(100)),
			LiquidityRatio: InfiniteRatio(),
		},
		Health: HealthAssessment{
			Tier:       TierFree,
			Label:      TierFree.Label(),
			Clamped:    decimal.NewFromInt(200),
			BarPercent: decimal.NewFromInt(100),
		},
		Benchmarks: []BenchmarkResult{
			{Name: "Savings Ratio", Value: decimal.NewFromInt(100), Benchmark: decimal.NewFromInt(10), Passed: true, HigherIsBetter: true},
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tier":"Free"`)

	var out NetWorthResult
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, TierFree, out.Health.Tier)
	assert.True(t, out.Ratios.WealthRatio.IsInf())
	assert.Equal(t, "100", out.Ratios.SavingsRatio.String())
	assert.True(t, in.Snapshot.Assets.Equal(out.Snapshot.Assets))
	require.Len(t, out.Benchmarks, 1)
	assert.True(t, out.Benchmarks[0].Passed)
}
