package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CoverageTerm selects a coverage horizon for the takaful estimate
type CoverageTerm string

const (
	TermOneYear  CoverageTerm = "1y"
	TermFiveYear CoverageTerm = "5y"
	TermTenYear  CoverageTerm = "10y"
)

// coverageMultipliers is the canonical multiplier table, in months of income or expenses
var coverageMultipliers = map[CoverageTerm]int64{
	TermOneYear:  8,
	TermFiveYear: 50,
	TermTenYear:  120,
}

// Multiplier returns the term's coverage multiplier
func (t CoverageTerm) Multiplier() (decimal.Decimal, bool) {
	m, ok := coverageMultipliers[t]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(m), true
}

// ParseCoverageTerm accepts "1y", "5y", "10y" and the page's card ids
// ("oneYear", "fiveYear", "tenYear")
func ParseCoverageTerm(s string) (CoverageTerm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1y", "1", "oneyear", "1-year":
		return TermOneYear, nil
	case "5y", "5", "fiveyear", "5-year":
		return TermFiveYear, nil
	case "10y", "10", "tenyear", "10-year":
		return TermTenYear, nil
	}
	return "", fmt.Errorf("unknown coverage term %q (want 1y, 5y or 10y)", s)
}

// CoverageEstimate is the output of the coverage estimator
type CoverageEstimate struct {
	Term             CoverageTerm    `json:"term"`
	Multiplier       decimal.Decimal `json:"multiplier"`
	IncomeBasis      decimal.Decimal `json:"incomeBasis"`
	ExpensesBasis    decimal.Decimal `json:"expensesBasis"`
	NetSavings       decimal.Decimal `json:"netSavings"`
	CoverageIncome   decimal.Decimal `json:"coverageIncome"`
	CoverageExpenses decimal.Decimal `json:"coverageExpenses"`

	// Ten-year figures persisted for the needs-gap analyzer
	CoverageIncome10Y   decimal.Decimal `json:"coverageIncome10Y"`
	CoverageExpenses10Y decimal.Decimal `json:"coverageExpenses10Y"`
}

// CoverageBasis selects which ten-year coverage figure becomes life protection
type CoverageBasis string

const (
	BasisIncome   CoverageBasis = "income"
	BasisExpenses CoverageBasis = "expenses"
)

// ParseCoverageBasis validates a basis name; empty returns "" with no error
func ParseCoverageBasis(s string) (CoverageBasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "income", "salary":
		return BasisIncome, nil
	case "expenses", "expense":
		return BasisExpenses, nil
	}
	return "", fmt.Errorf("unknown coverage basis %q (want income or expenses)", s)
}

// NeedsGapInput holds the user-entered figures for the needs-gap analyzer
type NeedsGapInput struct {
	Basis CoverageBasis `yaml:"basis" json:"basis"`
	// ExistingLiabilities defaults to the stored total liabilities when nil
	ExistingLiabilities     *decimal.Decimal `yaml:"existing_liabilities,omitempty" json:"existingLiabilities,omitempty"`
	EstimatedChildEducation decimal.Decimal  `yaml:"estimated_child_education" json:"estimatedChildEducation"`
	Life                    decimal.Decimal  `yaml:"life" json:"life"`
}

// NeedsGapResult is the output of the needs-gap analyzer
type NeedsGapResult struct {
	Basis                   CoverageBasis     `json:"basis"`
	LifeProtection          decimal.Decimal   `json:"lifeProtection"`
	ExistingLiabilities     decimal.Decimal   `json:"existingLiabilities"`
	EstimatedChildEducation decimal.Decimal   `json:"estimatedChildEducation"`
	TotalAssets             decimal.Decimal   `json:"totalAssets"`
	Life                    decimal.Decimal   `json:"life"`
	TotalNeeds              decimal.Decimal   `json:"totalNeeds"`
	TotalCoverage           decimal.Decimal   `json:"totalCoverage"`
	Gap                     decimal.Decimal   `json:"gap"`
	Classification          GapClassification `json:"classification"`
}

// GapStatus is the sign classification of a needs or retirement gap
type GapStatus string

const (
	GapShortfall GapStatus = "shortfall"
	GapSurplus   GapStatus = "surplus"
	GapBalanced  GapStatus = "balanced"
)

// GapClassification pairs the status with the absolute gap
type GapClassification struct {
	Status GapStatus       `json:"status"`
	Amount decimal.Decimal `json:"amount"`
}

// ClassifyGap maps a signed gap to shortfall (positive), surplus (negative) or balanced
func ClassifyGap(gap decimal.Decimal) GapClassification {
	switch gap.Sign() {
	case 1:
		return GapClassification{Status: GapShortfall, Amount: gap}
	case -1:
		return GapClassification{Status: GapSurplus, Amount: gap.Abs()}
	default:
		return GapClassification{Status: GapBalanced, Amount: decimal.Zero}
	}
}
