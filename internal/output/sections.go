package output

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// row is one labelled figure in a report section
type row struct {
	Label string
	Value string
}

// section is a titled group of rows shared by the tabular formatters
type section struct {
	Key   string
	Title string
	Rows  []row
}

// buildSections flattens a report into display sections in calculator order
func buildSections(report *domain.Report) []section {
	var out []section
	if nw := report.NetWorth; nw != nil {
		out = append(out, netWorthSection(nw), benchmarkSection(nw.Benchmarks))
	}
	if c := report.Coverage; c != nil {
		out = append(out, coverageSection(c))
	}
	if g := report.NeedsGap; g != nil {
		out = append(out, needsGapSection(g))
	}
	if r := report.Retirement; r != nil {
		out = append(out, retirementSection(r))
	}
	if s := report.Snapshot; s != nil {
		out = append(out, snapshotSection(s))
	}
	return out
}

func netWorthSection(nw *domain.NetWorthResult) section {
	return section{
		Key:   "networth",
		Title: "Net Worth",
		Rows: []row{
			{"Total Income", FormatCurrency(nw.Snapshot.Income)},
			{"Total Expenses", FormatCurrency(nw.Snapshot.Expenses)},
			{"Total Assets", FormatCurrency(nw.Snapshot.Assets)},
			{"Total Liabilities", FormatCurrency(nw.Snapshot.Liabilities)},
			{"Cashflow", FormatCurrency(nw.Ratios.Cashflow)},
			{"Net Worth", FormatCurrency(nw.Ratios.NetWorth)},
			{"Wealth Ratio", FormatRatio(nw.Ratios.WealthRatio)},
			{"Savings Ratio", FormatPercentRatio(nw.Ratios.SavingsRatio)},
			{"Liquidity Ratio", FormatRatio(nw.Ratios.LiquidityRatio)},
			{"Debt Service Ratio", FormatPercentRatio(nw.Ratios.DebtServiceRatio)},
			{"Financial Health", nw.Health.Label},
		},
	}
}

func benchmarkSection(results []domain.BenchmarkResult) section {
	s := section{Key: "benchmarks", Title: "Benchmarks"}
	for _, b := range results {
		op := ">="
		if !b.HigherIsBetter {
			op = "<="
		}
		verdict := "below benchmark"
		if b.Passed {
			verdict = "meets benchmark"
		}
		s.Rows = append(s.Rows, row{
			Label: b.Name,
			Value: fmt.Sprintf("%s (%s %s, %s)", b.Value.StringFixed(2), op, b.Benchmark.String(), verdict),
		})
	}
	return s
}

func coverageSection(c *domain.CoverageEstimate) section {
	return section{
		Key:   "coverage",
		Title: "Takaful Coverage (" + string(c.Term) + ")",
		Rows: []row{
			{"Multiplier", c.Multiplier.String()},
			{"Income", FormatCurrency(c.IncomeBasis)},
			{"Expenses", FormatCurrency(c.ExpensesBasis)},
			{"Net Savings", FormatCurrency(c.NetSavings)},
			{"Coverage (Income)", FormatCurrency(c.CoverageIncome)},
			{"Coverage (Expenses)", FormatCurrency(c.CoverageExpenses)},
			{"10-Year Coverage (Income)", FormatCurrency(c.CoverageIncome10Y)},
			{"10-Year Coverage (Expenses)", FormatCurrency(c.CoverageExpenses10Y)},
		},
	}
}

func needsGapSection(g *domain.NeedsGapResult) section {
	return section{
		Key:   "needsgap",
		Title: "Protection Needs Gap",
		Rows: []row{
			{"Basis", string(g.Basis)},
			{"Life Protection", FormatCurrency(g.LifeProtection)},
			{"Existing Liabilities", FormatCurrency(g.ExistingLiabilities)},
			{"Child Education", FormatCurrency(g.EstimatedChildEducation)},
			{"Total Needs", FormatCurrency(g.TotalNeeds)},
			{"Total Assets", FormatCurrency(g.TotalAssets)},
			{"Life Cover", FormatCurrency(g.Life)},
			{"Total Coverage", FormatCurrency(g.TotalCoverage)},
			{"Gap", FormatGap(g.Classification)},
		},
	}
}

func retirementSection(r *domain.RetirementProjection) section {
	s := section{
		Key:   "retirement",
		Title: "Retirement Projection",
		Rows: []row{
			{"Years to Retirement", strconv.Itoa(r.AccumulationYears)},
			{"Years in Retirement", strconv.Itoa(r.DecumulationYears)},
			{"Annual Expense Today", FormatCurrency(r.InitialAnnualExpense)},
			{"Annual Expense at Retirement", FormatCurrency(r.ProjectedAnnualExpense)},
			{"Real Return", FormatRate(r.RealReturn)},
			{"Fund Needed", FormatCurrency(r.FundNeeded)},
			{"EPF Balance Today", FormatCurrency(r.ExistingFund)},
			{"EPF Balance Grown", FormatCurrency(r.EPFLumpSum)},
			{"EPF Contributions", FormatCurrency(r.EPFContributions)},
		},
	}
	for i, f := range r.SideFunds {
		name := f.Name
		if name == "" {
			name = "Side Fund " + strconv.Itoa(i+1)
		}
		s.Rows = append(s.Rows, row{name, FormatCurrency(f.Total)})
	}
	s.Rows = append(s.Rows,
		row{"Fund Available", FormatCurrency(r.FundAvailable)},
		row{"Gap", FormatGap(r.Classification)},
		row{"Required Annual Contribution", FormatCurrency(r.RequiredContribution)},
	)
	return s
}

func snapshotSection(s *domain.FinancialSnapshot) section {
	return section{
		Key:   "snapshot",
		Title: "Stored Snapshot",
		Rows: []row{
			{"Total Salary", FormatCurrency(s.Income)},
			{"Total Expenses", FormatCurrency(s.Expenses)},
			{"Total Assets", FormatCurrency(s.Assets)},
			{"Total Liabilities", FormatCurrency(s.Liabilities)},
			{"Retirement Fund", FormatCurrency(s.RetirementFundValue)},
		},
	}
}
