package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// buildTestReport runs the calculators for a small household
func buildTestReport(t *testing.T) *domain.Report {
	t.Helper()
	in := domain.FinancialInputs{
		Income:      domain.IncomeInputs{Salary: d(4500), OtherIncome: d(500)},
		Expenses:    domain.ExpenseInputs{PropertyLoanRepayment: d(2000), OtherExpenses: d(1000)},
		Assets:      domain.AssetInputs{Savings: d(38000), RetirementFund: d(12000)},
		Liabilities: domain.LiabilityInputs{PropertyFinancingBalance: d(20000)},
	}
	snap := calculation.ComputeSnapshot(in)
	ratios := calculation.ComputeRatios(in)
	cov, err := calculation.EstimateCoverage(snap, domain.TermTenYear)
	require.NoError(t, err)
	gap := calculation.AnalyzeNeedsGap(calculation.NeedsGapFigures{
		Basis:               domain.BasisIncome,
		LifeProtection:      cov.CoverageIncome10Y,
		ExistingLiabilities: snap.Liabilities,
		TotalAssets:         snap.Assets,
		Life:                d(100000),
	})

	return &domain.Report{
		Name: "household",
		NetWorth: &domain.NetWorthResult{
			Inputs:     in,
			Snapshot:   snap,
			Ratios:     ratios,
			Health:     calculation.ClassifyHealth(ratios.WealthRatio),
			Benchmarks: calculation.EvaluateBenchmarks(ratios),
		},
		Coverage: &cov,
		NeedsGap: &gap,
		Snapshot: &snap,
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	var received *domain.Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *domain.Report) ([]byte, error) {
			called = true
			received = report
			return []byte("test output"), nil
		},
	}

	report := &domain.Report{Name: "x"}
	out, err := formatter.Format(report)

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), out, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "json", "csv", "pdf"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "console", GetFormatterByName("TEXT").Name(), "aliases resolve case-insensitively")
	assert.Nil(t, GetFormatterByName("non-existent"), "Should return nil for unknown names")
	assert.Equal(t, []string{"console", "csv", "json", "pdf"}, AvailableFormats())
	assert.Contains(t, AvailableFormatAliases(), "table")
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(*domain.Report) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	written, err := WriteFormatted(formatter, &domain.Report{}, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(*domain.Report) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	path, err := WriteFormatted(formatter, &domain.Report{}, filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, path, "Should return empty path on error")
	assert.Contains(t, err.Error(), "formatter error")
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "RM 0.00"},
		{12.5, "RM 12.50"},
		{999.999, "RM 1,000.00"},
		{1234567.891, "RM 1,234,567.89"},
		{-30000, "RM -30,000.00"},
		{100000, "RM 100,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(d(tt.in)), "amount %v", tt.in)
	}

	assert.Equal(t, "∞", FormatRatio(domain.InfiniteRatio()))
	assert.Equal(t, "16.67", FormatRatio(domain.FiniteRatio(d(16.66666))))
	assert.Equal(t, "40.00%", FormatPercentRatio(domain.FiniteRatio(d(40))))
	assert.Equal(t, "5.00%", FormatRate(d(0.05)))
	assert.Equal(t, "Balanced", FormatGap(domain.ClassifyGap(decimal.Zero)))
	assert.Equal(t, "Surplus of RM 30,000.00", FormatGap(domain.ClassifyGap(d(-30000))))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "FINANCIAL HEALTH REPORT: household")
	assert.Contains(t, text, "RM 30,000.00", "net worth")
	assert.Contains(t, text, "Healthy")
	assert.Contains(t, text, "Takaful Coverage (10y)")
	assert.Contains(t, text, "RM 600,000.00")
	assert.Contains(t, text, "Shortfall of RM 470,000.00")
	assert.Contains(t, text, "5%", "gauge shows 10/200")
}

func TestConsoleFormatter_Empty(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(&domain.Report{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "No results.")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded struct {
		Name     string `json:"name"`
		NetWorth struct {
			Ratios struct {
				WealthRatio domain.Ratio `json:"wealthRatio"`
			} `json:"ratios"`
			Health struct {
				Tier string `json:"tier"`
			} `json:"health"`
		} `json:"netWorth"`
		NeedsGap struct {
			Classification domain.GapClassification `json:"classification"`
		} `json:"needsGap"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "household", decoded.Name)
	assert.Equal(t, "10", decoded.NetWorth.Ratios.WealthRatio.String())
	assert.Equal(t, "Healthy", decoded.NetWorth.Health.Tier)
	assert.Equal(t, domain.GapShortfall, decoded.NeedsGap.Classification.Status)
}

func TestJSONFormatter_InfiniteRatio(t *testing.T) {
	report := &domain.Report{NetWorth: &domain.NetWorthResult{
		Ratios: calculation.ComputeRatios(domain.FinancialInputs{}),
	}}
	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"wealthRatio": "Infinity"`)
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"Section", "Metric", "Value"}, records[0])

	found := map[string]string{}
	for _, r := range records[1:] {
		require.Len(t, r, 3)
		found[r[0]+"/"+r[1]] = r[2]
	}
	assert.Equal(t, "RM 30,000.00", found["networth/Net Worth"])
	assert.Equal(t, "10.00", found["networth/Wealth Ratio"])
	assert.Equal(t, "RM 600,000.00", found["coverage/Coverage (Income)"])
	assert.Equal(t, "income", found["needsgap/Basis"])
	assert.Equal(t, "RM 12,000.00", found["snapshot/Retirement Fund"])
}

func TestPDFFormatter(t *testing.T) {
	f := PDFFormatter{Now: func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }}
	report := buildTestReport(t)
	proj, err := calculation.ProjectRetirement(domain.RetirementPlan{
		CurrentAge: 30, RetirementAge: 60, MaxAge: 85,
		CurrentSalary: d(60000), ExpensePct: d(0.7),
		InflationRate: d(0.03), RetirementReturn: d(0.05),
		EPFReturn: d(0.06), AnnualContribution: d(6000), SalaryGrowth: d(0.04),
	}, d(50000))
	require.NoError(t, err)
	report.Retirement = &proj

	out, err := f.Format(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "Should produce a PDF document")
	assert.Greater(t, len(out), 1000)
}

func TestHealthGauge(t *testing.T) {
	g := NewHealthGauge(calculation.ClassifyHealth(domain.FiniteRatio(d(100)))).WithWidth(20)
	assert.Equal(t, 10, g.Filled())
	assert.Len(t, g.segments(), 20)
	assert.Contains(t, g.Render(), "50% Olympic Athlete")

	full := NewHealthGauge(calculation.ClassifyHealth(domain.InfiniteRatio()))
	assert.Equal(t, full.Width, full.Filled())
	assert.Contains(t, full.Render(), "100% Free")
}
