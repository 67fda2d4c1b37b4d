package domain

import "github.com/shopspring/decimal"

// IncomeInputs holds the periodic income entries
type IncomeInputs struct {
	Salary      decimal.Decimal `yaml:"salary" json:"salary"`
	OtherIncome decimal.Decimal `yaml:"other_income" json:"otherIncome"`
}

// ExpenseInputs holds the six periodic expense categories. The first three are
// loan repayments and feed the debt-service ratio.
type ExpenseInputs struct {
	CreditCardRepayment       decimal.Decimal `yaml:"credit_card_repayment" json:"creditCardRepayment"`
	VehicleLoanRepayment      decimal.Decimal `yaml:"vehicle_loan_repayment" json:"vehicleLoanRepayment"`
	PropertyLoanRepayment     decimal.Decimal `yaml:"property_loan_repayment" json:"propertyLoanRepayment"`
	PersonalHouseholdExpenses decimal.Decimal `yaml:"personal_household_expenses" json:"personalHouseholdExpenses"`
	InsuranceExpenses         decimal.Decimal `yaml:"insurance_expenses" json:"insuranceExpenses"`
	OtherExpenses             decimal.Decimal `yaml:"other_expenses" json:"otherExpenses"`
}

// AssetInputs holds the four asset categories
type AssetInputs struct {
	Savings          decimal.Decimal `yaml:"savings" json:"savings"`
	PropertyValue    decimal.Decimal `yaml:"property_value" json:"propertyValue"`
	InvestmentsValue decimal.Decimal `yaml:"investments_value" json:"investmentsValue"`
	RetirementFund   decimal.Decimal `yaml:"retirement_fund" json:"retirementFund"`
}

// LiabilityInputs holds the four outstanding balance categories
type LiabilityInputs struct {
	CreditCardBalance        decimal.Decimal `yaml:"credit_card_balance" json:"creditCardBalance"`
	VehicleLoanBalance       decimal.Decimal `yaml:"vehicle_loan_balance" json:"vehicleLoanBalance"`
	PropertyFinancingBalance decimal.Decimal `yaml:"property_financing_balance" json:"propertyFinancingBalance"`
	OtherLiabilities         decimal.Decimal `yaml:"other_liabilities" json:"otherLiabilities"`
}

// FinancialInputs is the raw figure set entered for a net-worth calculation
type FinancialInputs struct {
	Income      IncomeInputs    `yaml:"income" json:"income"`
	Expenses    ExpenseInputs   `yaml:"expenses" json:"expenses"`
	Assets      AssetInputs     `yaml:"assets" json:"assets"`
	Liabilities LiabilityInputs `yaml:"liabilities" json:"liabilities"`
}

// TotalIncome returns salary plus other income
func (fi FinancialInputs) TotalIncome() decimal.Decimal {
	return fi.Income.Salary.Add(fi.Income.OtherIncome)
}

// TotalExpenses returns the sum of all six expense categories
func (fi FinancialInputs) TotalExpenses() decimal.Decimal {
	e := fi.Expenses
	return decimal.Sum(
		e.CreditCardRepayment,
		e.VehicleLoanRepayment,
		e.PropertyLoanRepayment,
		e.PersonalHouseholdExpenses,
		e.InsuranceExpenses,
		e.OtherExpenses,
	)
}

// LoanRepayments returns the repayment categories counted as debt service
func (fi FinancialInputs) LoanRepayments() decimal.Decimal {
	e := fi.Expenses
	return decimal.Sum(e.CreditCardRepayment, e.VehicleLoanRepayment, e.PropertyLoanRepayment)
}

// TotalAssets returns the sum of all four asset categories
func (fi FinancialInputs) TotalAssets() decimal.Decimal {
	a := fi.Assets
	return decimal.Sum(a.Savings, a.PropertyValue, a.InvestmentsValue, a.RetirementFund)
}

// TotalLiabilities returns the sum of all four liability categories
func (fi FinancialInputs) TotalLiabilities() decimal.Decimal {
	l := fi.Liabilities
	return decimal.Sum(l.CreditCardBalance, l.VehicleLoanBalance, l.PropertyFinancingBalance, l.OtherLiabilities)
}

// Fields returns every entered figure keyed by its form name. Used for
// validation messages and the form-value round trip.
func (fi FinancialInputs) Fields() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		FieldSalary:                    fi.Income.Salary,
		FieldOtherIncome:               fi.Income.OtherIncome,
		FieldCreditCardRepayment:       fi.Expenses.CreditCardRepayment,
		FieldVehicleLoanRepayment:      fi.Expenses.VehicleLoanRepayment,
		FieldPropertyLoanRepayment:     fi.Expenses.PropertyLoanRepayment,
		FieldPersonalHouseholdExpenses: fi.Expenses.PersonalHouseholdExpenses,
		FieldInsuranceExpenses:         fi.Expenses.InsuranceExpenses,
		FieldOtherExpenses:             fi.Expenses.OtherExpenses,
		FieldSavings:                   fi.Assets.Savings,
		FieldPropertyValue:             fi.Assets.PropertyValue,
		FieldInvestmentsValue:          fi.Assets.InvestmentsValue,
		FieldRetirementFund:            fi.Assets.RetirementFund,
		FieldCreditCardBalance:         fi.Liabilities.CreditCardBalance,
		FieldVehicleLoanBalance:        fi.Liabilities.VehicleLoanBalance,
		FieldPropertyFinancingBalance:  fi.Liabilities.PropertyFinancingBalance,
		FieldOtherLiabilities:          fi.Liabilities.OtherLiabilities,
	}
}

// Form field names for the sixteen entered figures
const (
	FieldSalary                    = "salary"
	FieldOtherIncome               = "otherIncome"
	FieldCreditCardRepayment       = "creditCardRepayment"
	FieldVehicleLoanRepayment      = "vehicleLoanRepayment"
	FieldPropertyLoanRepayment     = "propertyLoanRepayment"
	FieldPersonalHouseholdExpenses = "personalHouseholdExpenses"
	FieldInsuranceExpenses         = "insuranceExpenses"
	FieldOtherExpenses             = "otherExpenses"
	FieldSavings                   = "savings"
	FieldPropertyValue             = "propertyValue"
	FieldInvestmentsValue          = "investmentsValue"
	FieldRetirementFund            = "retirementFund"
	FieldCreditCardBalance         = "creditCardBalance"
	FieldVehicleLoanBalance        = "vehicleLoanBalance"
	FieldPropertyFinancingBalance  = "propertyFinancingBalance"
	FieldOtherLiabilities          = "otherLiabilities"
)

// FieldNames lists the form fields in entry order
var FieldNames = []string{
	FieldSalary, FieldOtherIncome,
	FieldCreditCardRepayment, FieldVehicleLoanRepayment, FieldPropertyLoanRepayment,
	FieldPersonalHouseholdExpenses, FieldInsuranceExpenses, FieldOtherExpenses,
	FieldSavings, FieldPropertyValue, FieldInvestmentsValue, FieldRetirementFund,
	FieldCreditCardBalance, FieldVehicleLoanBalance, FieldPropertyFinancingBalance, FieldOtherLiabilities,
}

// SetField assigns a figure by form name. Unknown names report false.
func (fi *FinancialInputs) SetField(name string, value decimal.Decimal) bool {
	switch name {
	case FieldSalary:
		fi.Income.Salary = value
	case FieldOtherIncome:
		fi.Income.OtherIncome = value
	case FieldCreditCardRepayment:
		fi.Expenses.CreditCardRepayment = value
	case FieldVehicleLoanRepayment:
		fi.Expenses.VehicleLoanRepayment = value
	case FieldPropertyLoanRepayment:
		fi.Expenses.PropertyLoanRepayment = value
	case FieldPersonalHouseholdExpenses:
		fi.Expenses.PersonalHouseholdExpenses = value
	case FieldInsuranceExpenses:
		fi.Expenses.InsuranceExpenses = value
	case FieldOtherExpenses:
		fi.Expenses.OtherExpenses = value
	case FieldSavings:
		fi.Assets.Savings = value
	case FieldPropertyValue:
		fi.Assets.PropertyValue = value
	case FieldInvestmentsValue:
		fi.Assets.InvestmentsValue = value
	case FieldRetirementFund:
		fi.Assets.RetirementFund = value
	case FieldCreditCardBalance:
		fi.Liabilities.CreditCardBalance = value
	case FieldVehicleLoanBalance:
		fi.Liabilities.VehicleLoanBalance = value
	case FieldPropertyFinancingBalance:
		fi.Liabilities.PropertyFinancingBalance = value
	case FieldOtherLiabilities:
		fi.Liabilities.OtherLiabilities = value
	default:
		return false
	}
	return true
}
