package calculation

import (
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// EstimateCoverage multiplies the stored income and expense totals by the
// term multiplier. It also returns the ten-year figures, which are what the
// needs-gap analyzer reads whatever term is being viewed.
func EstimateCoverage(snap domain.FinancialSnapshot, term domain.CoverageTerm) (domain.CoverageEstimate, error) {
	multiplier, ok := term.Multiplier()
	if !ok {
		return domain.CoverageEstimate{}, domain.NewValidationError("coverage", "unknown coverage term %q", term)
	}
	if !snap.Income.IsPositive() || !snap.Expenses.IsPositive() {
		return domain.CoverageEstimate{}, domain.NewInputMissing("coverage",
			"no salary or expenses data found; calculate net worth first")
	}

	tenYear, _ := domain.TermTenYear.Multiplier()
	return domain.CoverageEstimate{
		Term:                term,
		Multiplier:          multiplier,
		IncomeBasis:         snap.Income,
		ExpensesBasis:       snap.Expenses,
		NetSavings:          snap.Income.Sub(snap.Expenses),
		CoverageIncome:      snap.Income.Mul(multiplier),
		CoverageExpenses:    snap.Expenses.Mul(multiplier),
		CoverageIncome10Y:   snap.Income.Mul(tenYear),
		CoverageExpenses10Y: snap.Expenses.Mul(tenYear),
	}, nil
}

// NeedsGapFigures are the resolved inputs of a needs-gap analysis
type NeedsGapFigures struct {
	Basis                   domain.CoverageBasis
	LifeProtection          decimal.Decimal
	ExistingLiabilities     decimal.Decimal
	EstimatedChildEducation decimal.Decimal
	TotalAssets             decimal.Decimal
	Life                    decimal.Decimal
}

// AnalyzeNeedsGap compares protection needs with coverage held. A positive
// gap is a shortfall.
func AnalyzeNeedsGap(f NeedsGapFigures) domain.NeedsGapResult {
	totalNeeds := decimal.Sum(f.LifeProtection, f.ExistingLiabilities, f.EstimatedChildEducation)
	totalCoverage := f.TotalAssets.Add(f.Life)
	gap := totalNeeds.Sub(totalCoverage)

	return domain.NeedsGapResult{
		Basis:                   f.Basis,
		LifeProtection:          f.LifeProtection,
		ExistingLiabilities:     f.ExistingLiabilities,
		EstimatedChildEducation: f.EstimatedChildEducation,
		TotalAssets:             f.TotalAssets,
		Life:                    f.Life,
		TotalNeeds:              totalNeeds,
		TotalCoverage:           totalCoverage,
		Gap:                     gap,
		Classification:          domain.ClassifyGap(gap),
	}
}
