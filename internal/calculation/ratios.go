package calculation

import (
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ComputeSnapshot totals the entered figures
func ComputeSnapshot(in domain.FinancialInputs) domain.FinancialSnapshot {
	return domain.FinancialSnapshot{
		Income:              in.TotalIncome(),
		Expenses:            in.TotalExpenses(),
		Assets:              in.TotalAssets(),
		Liabilities:         in.TotalLiabilities(),
		RetirementFundValue: in.Assets.RetirementFund,
	}
}

// ComputeRatios derives cash flow, net worth and the four ratios.
// Liquidity is measured against total assets, not savings alone.
func ComputeRatios(in domain.FinancialInputs) domain.RatioSet {
	snap := ComputeSnapshot(in)
	netWorth := snap.Assets.Sub(snap.Liabilities)
	cashflow := snap.Income.Sub(snap.Expenses)

	return domain.RatioSet{
		Cashflow:         cashflow,
		NetWorth:         netWorth,
		WealthRatio:      ratioOrInf(netWorth, snap.Expenses),
		SavingsRatio:     percentOrZero(cashflow, snap.Income),
		LiquidityRatio:   ratioOrInf(snap.Assets, snap.Expenses),
		DebtServiceRatio: percentOrZero(in.LoanRepayments(), snap.Income),
	}
}

// ratioOrInf divides, resolving a zero denominator to +∞
func ratioOrInf(num, den decimal.Decimal) domain.Ratio {
	if den.IsZero() {
		return domain.InfiniteRatio()
	}
	return domain.FiniteRatio(num.Div(den))
}

// percentOrZero returns num/den × 100, resolving a zero denominator to 0
func percentOrZero(num, den decimal.Decimal) domain.Ratio {
	if den.IsZero() {
		return domain.FiniteRatio(decimal.Zero)
	}
	return domain.FiniteRatio(num.Div(den).Mul(hundred))
}

// ValidateInputs rejects negative figures
func ValidateInputs(in domain.FinancialInputs) error {
	fields := in.Fields()
	for _, name := range domain.FieldNames {
		if fields[name].IsNegative() {
			return domain.NewValidationError("net_worth", "%s cannot be negative (got %s)", name, fields[name].String())
		}
	}
	return nil
}
