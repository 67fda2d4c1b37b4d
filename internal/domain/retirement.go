package domain

import "github.com/shopspring/decimal"

// MaxSideFunds is the number of supplementary investment funds a plan may carry
const MaxSideFunds = 2

// SideFund is a supplementary investment held alongside the EPF balance
type SideFund struct {
	Name               string          `yaml:"name,omitempty" json:"name,omitempty"`
	PresentValue       decimal.Decimal `yaml:"present_value" json:"presentValue"`
	AnnualReturn       decimal.Decimal `yaml:"annual_return" json:"annualReturn"`
	AnnualContribution decimal.Decimal `yaml:"annual_contribution" json:"annualContribution"`
}

// RetirementPlan holds the retirement projector inputs. Rates are fractions (0.05 = 5%).
type RetirementPlan struct {
	CurrentAge    int `yaml:"current_age" json:"currentAge"`
	RetirementAge int `yaml:"retirement_age" json:"retirementAge"`
	MaxAge        int `yaml:"max_age" json:"maxAge"`

	CurrentSalary    decimal.Decimal `yaml:"current_salary" json:"currentSalary"`
	ExpensePct       decimal.Decimal `yaml:"expense_pct" json:"expensePct"`
	InflationRate    decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	RetirementReturn decimal.Decimal `yaml:"retirement_return" json:"retirementReturn"`

	// ExistingFund defaults to the stored retirement fund value when nil
	ExistingFund       *decimal.Decimal `yaml:"existing_fund,omitempty" json:"existingFund,omitempty"`
	EPFReturn          decimal.Decimal  `yaml:"epf_return" json:"epfReturn"`
	AnnualContribution decimal.Decimal  `yaml:"annual_contribution" json:"annualContribution"`
	SalaryGrowth       decimal.Decimal  `yaml:"salary_growth" json:"salaryGrowth"`

	SideFunds []SideFund `yaml:"side_funds,omitempty" json:"sideFunds,omitempty"`
}

// AccumulationYears returns retirementAge − currentAge
func (p RetirementPlan) AccumulationYears() int { return p.RetirementAge - p.CurrentAge }

// DecumulationYears returns maxAge − retirementAge
func (p RetirementPlan) DecumulationYears() int { return p.MaxAge - p.RetirementAge }

// SideFundProjection is one side fund's value at retirement
type SideFundProjection struct {
	Name          string          `json:"name,omitempty"`
	LumpSum       decimal.Decimal `json:"lumpSum"`
	Contributions decimal.Decimal `json:"contributions"`
	Total         decimal.Decimal `json:"total"`
}

// RetirementProjection is the output of the retirement projector
type RetirementProjection struct {
	AccumulationYears      int             `json:"accumulationYears"`
	DecumulationYears      int             `json:"decumulationYears"`
	InitialAnnualExpense   decimal.Decimal `json:"initialAnnualExpense"`
	ProjectedAnnualExpense decimal.Decimal `json:"projectedAnnualExpense"`
	RealReturn             decimal.Decimal `json:"realReturn"`
	FundNeeded             decimal.Decimal `json:"fundNeeded"`

	ExistingFund     decimal.Decimal      `json:"existingFund"`
	EPFLumpSum       decimal.Decimal      `json:"epfLumpSum"`
	EPFContributions decimal.Decimal      `json:"epfContributions"`
	SideFunds        []SideFundProjection `json:"sideFunds,omitempty"`
	FundAvailable    decimal.Decimal      `json:"fundAvailable"`

	Gap            decimal.Decimal   `json:"gap"`
	Classification GapClassification `json:"classification"`

	// RequiredContribution is the annual EPF contribution that closes the gap
	RequiredContribution decimal.Decimal `json:"requiredContribution"`
}
