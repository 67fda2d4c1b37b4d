package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/store"
)

// Field keys of the needs-gap and retirement forms
const (
	keyBasis       = "basis"
	keyLiabilities = "liabilities"
	keyEducation   = "education"
	keyLife        = "life"

	keyCurrentAge       = "currentAge"
	keyRetirementAge    = "retirementAge"
	keyMaxAge           = "maxAge"
	keySalary           = "salary"
	keyExpensePct       = "expensePct"
	keyInflation        = "inflation"
	keyRetirementReturn = "retirementReturn"
	keyExistingFund     = "existingFund"
	keyEPFReturn        = "epfReturn"
	keyContribution     = "contribution"
	keySalaryGrowth     = "salaryGrowth"
)

// maxSideFunds is the number of side-fund rows offered on the retirement form
const maxSideFunds = 2

// coverageTerms lists the term cards in display order
var coverageTerms = []domain.CoverageTerm{domain.TermOneYear, domain.TermFiveYear, domain.TermTenYear}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	ctx    context.Context
	engine *calculation.Engine

	netWorthForm   *Form
	needsGapForm   *Form
	retirementForm *Form
	termIndex      int

	// Session report; each calculation fills its section
	report  *domain.Report
	results viewport.Model

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model over the engine
func NewModel(ctx context.Context, engine *calculation.Engine) Model {
	return Model{
		currentScene:   SceneNetWorth,
		previousScene:  SceneNetWorth,
		ctx:            ctx,
		engine:         engine,
		netWorthForm:   NewForm(netWorthFields()),
		needsGapForm:   NewForm(needsGapFields()),
		retirementForm: NewForm(retirementFields()),
		termIndex:      len(coverageTerms) - 1,
		report:         &domain.Report{},
		results:        viewport.New(80, 18),
		width:          80,
		height:         24,
	}
}

func netWorthFields() []FieldSpec {
	specs := make([]FieldSpec, 0, len(domain.FieldNames))
	for _, name := range domain.FieldNames {
		specs = append(specs, FieldSpec{Key: name, Label: fieldLabel(name), Placeholder: "0"})
	}
	return specs
}

func needsGapFields() []FieldSpec {
	return []FieldSpec{
		{Key: keyBasis, Label: "Basis (income/expenses)", Placeholder: "last used"},
		{Key: keyLiabilities, Label: "Existing Liabilities", Placeholder: "stored total"},
		{Key: keyEducation, Label: "Child Education", Placeholder: "0"},
		{Key: keyLife, Label: "Existing Life Cover", Placeholder: "0"},
	}
}

func retirementFields() []FieldSpec {
	specs := []FieldSpec{
		{Key: keyCurrentAge, Label: "Current Age", Value: "30"},
		{Key: keyRetirementAge, Label: "Retirement Age", Value: "60"},
		{Key: keyMaxAge, Label: "Max Age", Value: "80"},
		{Key: keySalary, Label: "Annual Salary", Placeholder: "0"},
		{Key: keyExpensePct, Label: "Expense % of Salary", Value: "70%"},
		{Key: keyInflation, Label: "Inflation", Value: "3%"},
		{Key: keyRetirementReturn, Label: "Return in Retirement", Value: "4%"},
		{Key: keyExistingFund, Label: "EPF Balance", Placeholder: "stored value"},
		{Key: keyEPFReturn, Label: "EPF Return", Value: "5.5%"},
		{Key: keyContribution, Label: "Annual EPF Contribution", Placeholder: "0"},
		{Key: keySalaryGrowth, Label: "Contribution Growth", Value: "3%"},
	}
	for i := 1; i <= maxSideFunds; i++ {
		n := strconv.Itoa(i)
		specs = append(specs,
			FieldSpec{Key: sideFundKey(i, "value"), Label: "Side Fund " + n + " Value", Placeholder: "none"},
			FieldSpec{Key: sideFundKey(i, "return"), Label: "Side Fund " + n + " Return", Placeholder: "0%"},
			FieldSpec{Key: sideFundKey(i, "contribution"), Label: "Side Fund " + n + " Contribution", Placeholder: "0"},
		)
	}
	return specs
}

func sideFundKey(i int, part string) string {
	return fmt.Sprintf("sideFund%d.%s", i, part)
}

// Init loads the stored snapshot and starts the cursor blinking
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadSnapshotCmd(m.ctx, m.engine), textinput.Blink)
}

// loadSnapshotCmd returns a command that reads the stored totals
func loadSnapshotCmd(ctx context.Context, engine *calculation.Engine) tea.Cmd {
	return func() tea.Msg {
		snap, err := store.LoadSnapshot(ctx, engine.Store)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return SnapshotLoadedMsg{Snapshot: snap}
	}
}

// netWorthCmd returns a command that runs the net-worth calculator
func netWorthCmd(ctx context.Context, engine *calculation.Engine, values map[string]string) tea.Cmd {
	in := config.InputsFromForm(values)
	return func() tea.Msg {
		res, err := engine.CalculateNetWorth(ctx, in)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		return CalculationCompleteMsg{Report: &domain.Report{NetWorth: res, Snapshot: &res.Snapshot}}
	}
}

// coverageCmd returns a command that estimates coverage for the term
func coverageCmd(ctx context.Context, engine *calculation.Engine, term domain.CoverageTerm) tea.Cmd {
	return func() tea.Msg {
		res, err := engine.EstimateCoverage(ctx, term)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		return CalculationCompleteMsg{Report: &domain.Report{Coverage: res}}
	}
}

// needsGapCmd returns a command that analyzes the needs gap
func needsGapCmd(ctx context.Context, engine *calculation.Engine, values map[string]string) tea.Cmd {
	in := domain.NeedsGapInput{
		Basis:                   domain.CoverageBasis(strings.TrimSpace(values[keyBasis])),
		EstimatedChildEducation: config.ParseAmount(values[keyEducation]),
		Life:                    config.ParseAmount(values[keyLife]),
	}
	if strings.TrimSpace(values[keyLiabilities]) != "" {
		v := config.ParseAmount(values[keyLiabilities])
		in.ExistingLiabilities = &v
	}
	return func() tea.Msg {
		res, err := engine.AnalyzeNeedsGap(ctx, in)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		return CalculationCompleteMsg{Report: &domain.Report{NeedsGap: res}}
	}
}

// retirementCmd returns a command that projects the retirement fund
func retirementCmd(ctx context.Context, engine *calculation.Engine, values map[string]string) tea.Cmd {
	plan, err := planFromValues(values)
	if err != nil {
		return func() tea.Msg { return CalculationCompleteMsg{Err: err} }
	}
	return func() tea.Msg {
		res, err := engine.ProjectRetirement(ctx, plan)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		return CalculationCompleteMsg{Report: &domain.Report{Retirement: res}}
	}
}

// planFromValues reads the retirement form. Ages must be whole numbers;
// money and rate fields use the lenient parsers.
func planFromValues(values map[string]string) (domain.RetirementPlan, error) {
	var plan domain.RetirementPlan
	ages := []struct {
		key string
		dst *int
	}{
		{keyCurrentAge, &plan.CurrentAge},
		{keyRetirementAge, &plan.RetirementAge},
		{keyMaxAge, &plan.MaxAge},
	}
	for _, a := range ages {
		v, err := strconv.Atoi(strings.TrimSpace(values[a.key]))
		if err != nil {
			return plan, domain.NewValidationError("retirement", "%s must be a whole number", fieldLabel(a.key))
		}
		*a.dst = v
	}

	plan.CurrentSalary = config.ParseAmount(values[keySalary])
	plan.ExpensePct = config.ParseRate(values[keyExpensePct])
	plan.InflationRate = config.ParseRate(values[keyInflation])
	plan.RetirementReturn = config.ParseRate(values[keyRetirementReturn])
	plan.EPFReturn = config.ParseRate(values[keyEPFReturn])
	plan.AnnualContribution = config.ParseAmount(values[keyContribution])
	plan.SalaryGrowth = config.ParseRate(values[keySalaryGrowth])
	if strings.TrimSpace(values[keyExistingFund]) != "" {
		v := config.ParseAmount(values[keyExistingFund])
		plan.ExistingFund = &v
	}

	for i := 1; i <= maxSideFunds; i++ {
		raw := strings.TrimSpace(values[sideFundKey(i, "value")])
		if raw == "" {
			continue
		}
		plan.SideFunds = append(plan.SideFunds, domain.SideFund{
			Name:               "Side Fund " + strconv.Itoa(i),
			PresentValue:       config.ParseAmount(raw),
			AnnualReturn:       config.ParseRate(values[sideFundKey(i, "return")]),
			AnnualContribution: config.ParseAmount(values[sideFundKey(i, "contribution")]),
		})
	}
	return plan, nil
}

// mergeReport copies the sections present in r into the session report
func (m *Model) mergeReport(r *domain.Report) {
	if r.NetWorth != nil {
		m.report.NetWorth = r.NetWorth
	}
	if r.Coverage != nil {
		m.report.Coverage = r.Coverage
	}
	if r.NeedsGap != nil {
		m.report.NeedsGap = r.NeedsGap
	}
	if r.Retirement != nil {
		m.report.Retirement = r.Retirement
	}
	if r.Snapshot != nil {
		snap := *r.Snapshot
		m.report.Snapshot = &snap
		// the needs-gap form starts from the stored liabilities
		m.needsGapForm.SetValue(keyLiabilities, snap.Liabilities.String())
	}
}

// Report returns the results gathered in this session
func (m Model) Report() *domain.Report {
	return m.report
}
