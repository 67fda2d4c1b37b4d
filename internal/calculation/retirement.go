package calculation

import (
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// rateEpsilon is the tolerance under which a rate (or rate difference) is
// treated as zero and the closed form is replaced by its limit
var rateEpsilon = decimal.NewFromFloat(1e-6)

// ValidatePlan checks the structural preconditions of a retirement projection
func ValidatePlan(p domain.RetirementPlan) error {
	const op = "retirement"
	if p.CurrentAge <= 0 || p.RetirementAge <= 0 || p.MaxAge <= 0 {
		return domain.NewValidationError(op, "ages must be positive")
	}
	if p.RetirementAge <= p.CurrentAge {
		return domain.NewValidationError(op, "retirement age (%d) must be greater than current age (%d)",
			p.RetirementAge, p.CurrentAge)
	}
	if p.MaxAge < p.RetirementAge {
		return domain.NewValidationError(op, "max age (%d) cannot be less than retirement age (%d)",
			p.MaxAge, p.RetirementAge)
	}
	if len(p.SideFunds) > domain.MaxSideFunds {
		return domain.NewValidationError(op, "at most %d side funds are supported, got %d",
			domain.MaxSideFunds, len(p.SideFunds))
	}

	minusOne := one.Neg()
	rates := []namedValue{
		{"inflation rate", p.InflationRate},
		{"retirement return", p.RetirementReturn},
		{"EPF return", p.EPFReturn},
		{"salary growth", p.SalaryGrowth},
	}
	for i, f := range p.SideFunds {
		rates = append(rates, namedValue{sideFundLabel(i, f) + " return", f.AnnualReturn})
	}
	for _, r := range rates {
		if r.value.LessThanOrEqual(minusOne) {
			return domain.NewValidationError(op, "%s must be greater than -100%%", r.name)
		}
	}

	amounts := []namedValue{
		{"current salary", p.CurrentSalary},
		{"expense percentage", p.ExpensePct},
		{"annual contribution", p.AnnualContribution},
	}
	if p.ExistingFund != nil {
		amounts = append(amounts, namedValue{"existing fund", *p.ExistingFund})
	}
	for i, f := range p.SideFunds {
		amounts = append(amounts,
			namedValue{sideFundLabel(i, f) + " present value", f.PresentValue},
			namedValue{sideFundLabel(i, f) + " contribution", f.AnnualContribution})
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return domain.NewValidationError(op, "%s cannot be negative", a.name)
		}
	}
	return nil
}

// ProjectRetirement computes the fund needed at retirement, the fund
// available from the EPF balance, EPF contributions and side funds, and the
// signed gap between them. existingFund is the EPF balance today.
func ProjectRetirement(p domain.RetirementPlan, existingFund decimal.Decimal) (domain.RetirementProjection, error) {
	if err := ValidatePlan(p); err != nil {
		return domain.RetirementProjection{}, err
	}
	n := p.AccumulationYears()
	n1 := p.DecumulationYears()

	initialExpense := p.CurrentSalary.Mul(p.ExpensePct)
	projectedExpense := initialExpense.Mul(pow(one.Add(p.InflationRate), n))
	realReturn := one.Add(p.RetirementReturn).Div(one.Add(p.InflationRate)).Sub(one)
	fundNeeded := projectedExpense.Mul(presentValueFactor(realReturn, n1))

	epfGrowth := pow(one.Add(p.EPFReturn), n)
	epfLump := existingFund.Mul(epfGrowth)
	annuityFactor := growingAnnuityFactor(p.EPFReturn, p.SalaryGrowth, n)
	epfContrib := p.AnnualContribution.Mul(annuityFactor)

	available := epfLump.Add(epfContrib)
	var sides []domain.SideFundProjection
	for _, f := range p.SideFunds {
		sp := projectSideFund(f, n)
		sides = append(sides, sp)
		available = available.Add(sp.Total)
	}

	gap := fundNeeded.Sub(available)

	// Available funds are linear in the EPF contribution, so the contribution
	// that closes the gap is c + gap/factor.
	required := decimal.Zero
	if annuityFactor.IsPositive() {
		required = p.AnnualContribution.Add(gap.Div(annuityFactor))
		if required.IsNegative() {
			required = decimal.Zero
		}
	}

	return domain.RetirementProjection{
		AccumulationYears:      n,
		DecumulationYears:      n1,
		InitialAnnualExpense:   initialExpense,
		ProjectedAnnualExpense: projectedExpense,
		RealReturn:             realReturn,
		FundNeeded:             fundNeeded,
		ExistingFund:           existingFund,
		EPFLumpSum:             epfLump,
		EPFContributions:       epfContrib,
		SideFunds:              sides,
		FundAvailable:          available,
		Gap:                    gap,
		Classification:         domain.ClassifyGap(gap),
		RequiredContribution:   required,
	}, nil
}

// presentValueFactor is the present value of n1 level payments of 1 at rate
// r: (1 − (1+r)^−n1)/r, or n1 when r is effectively zero
func presentValueFactor(r decimal.Decimal, n1 int) decimal.Decimal {
	if r.Abs().LessThan(rateEpsilon) {
		return decimal.NewFromInt(int64(n1))
	}
	return one.Sub(pow(one.Add(r), -n1)).Div(r)
}

// growingAnnuityFactor is the future value after n years of a contribution of
// 1 that grows at g and earns r. When r and g coincide the closed form is
// replaced by its limit n × (1+r)^(n−1).
func growingAnnuityFactor(r, g decimal.Decimal, n int) decimal.Decimal {
	if r.Sub(g).Abs().LessThan(rateEpsilon) {
		return growingAnnuityLimit(r, n)
	}
	return growingAnnuityClosedForm(r, g, n)
}

func growingAnnuityClosedForm(r, g decimal.Decimal, n int) decimal.Decimal {
	return pow(one.Add(r), n).Sub(pow(one.Add(g), n)).Div(r.Sub(g))
}

func growingAnnuityLimit(r decimal.Decimal, n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n)).Mul(pow(one.Add(r), n-1))
}

// levelAnnuityFactor is the future value after n years of a level
// contribution of 1 earning r
func levelAnnuityFactor(r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return decimal.NewFromInt(int64(n))
	}
	return pow(one.Add(r), n).Sub(one).Div(r)
}

func projectSideFund(f domain.SideFund, n int) domain.SideFundProjection {
	lump := f.PresentValue.Mul(pow(one.Add(f.AnnualReturn), n))
	contrib := f.AnnualContribution.Mul(levelAnnuityFactor(f.AnnualReturn, n))
	return domain.SideFundProjection{
		Name:          f.Name,
		LumpSum:       lump,
		Contributions: contrib,
		Total:         lump.Add(contrib),
	}
}

// pow raises base to an integer power; negative powers divide
func pow(base decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return one
	}
	if n < 0 {
		return one.Div(base.Pow(decimal.NewFromInt(int64(-n))))
	}
	return base.Pow(decimal.NewFromInt(int64(n)))
}

type namedValue struct {
	name  string
	value decimal.Decimal
}

func sideFundLabel(i int, f domain.SideFund) string {
	if f.Name != "" {
		return "side fund " + f.Name
	}
	return "side fund " + string(rune('1'+i))
}
