package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/store"
)

// Engine runs the four calculators against a shared key-value snapshot.
// Every method checks its preconditions before writing to the store, so a
// failed calculation leaves the snapshot untouched.
type Engine struct {
	Store  store.Store
	Logger Logger
}

// NewEngine creates an engine over the given store
func NewEngine(s store.Store) *Engine {
	return &Engine{
		Store:  s,
		Logger: NopLogger{},
	}
}

// SetLogger replaces the logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// CalculateNetWorth totals the inputs, derives ratios, tier and benchmarks,
// and overwrites the stored snapshot
func (e *Engine) CalculateNetWorth(ctx context.Context, in domain.FinancialInputs) (*domain.NetWorthResult, error) {
	if err := ValidateInputs(in); err != nil {
		e.Logger.Warnf("net worth rejected: %v", err)
		return nil, err
	}

	snap := ComputeSnapshot(in)
	ratios := ComputeRatios(in)
	health := ClassifyHealth(ratios.WealthRatio)
	result := &domain.NetWorthResult{
		Inputs:     in,
		Snapshot:   snap,
		Ratios:     ratios,
		Health:     health,
		Benchmarks: EvaluateBenchmarks(ratios),
	}
	e.Logger.Debugf("net worth: income=%s expenses=%s assets=%s liabilities=%s wealth_ratio=%s tier=%s",
		snap.Income, snap.Expenses, snap.Assets, snap.Liabilities, ratios.WealthRatio, health.Label)

	if err := store.SaveSnapshot(ctx, e.Store, snap); err != nil {
		return nil, err
	}
	return result, nil
}

// EstimateCoverage reads the stored snapshot, applies the term multiplier and
// persists the ten-year coverage figures
func (e *Engine) EstimateCoverage(ctx context.Context, term domain.CoverageTerm) (*domain.CoverageEstimate, error) {
	snap, err := store.LoadSnapshot(ctx, e.Store)
	if err != nil {
		return nil, err
	}
	est, err := EstimateCoverage(snap, term)
	if err != nil {
		e.Logger.Warnf("coverage rejected: %v", err)
		return nil, err
	}
	e.Logger.Debugf("coverage: term=%s multiplier=%s income=%s expenses=%s",
		term, est.Multiplier, est.CoverageIncome, est.CoverageExpenses)

	if err := store.SaveCoverage10Y(ctx, e.Store, est.CoverageIncome10Y, est.CoverageExpenses10Y); err != nil {
		return nil, err
	}
	return &est, nil
}

// AnalyzeNeedsGap resolves the basis and stored figures, computes the gap
// and remembers the basis for the next run
func (e *Engine) AnalyzeNeedsGap(ctx context.Context, in domain.NeedsGapInput) (*domain.NeedsGapResult, error) {
	const op = "needs_gap"

	basis, err := domain.ParseCoverageBasis(string(in.Basis))
	if err != nil {
		return nil, domain.NewValidationError(op, "%v", err)
	}
	if in.EstimatedChildEducation.IsNegative() || in.Life.IsNegative() {
		return nil, domain.NewValidationError(op, "education and life cover cannot be negative")
	}
	if in.ExistingLiabilities != nil && in.ExistingLiabilities.IsNegative() {
		return nil, domain.NewValidationError(op, "existing liabilities cannot be negative")
	}

	if basis == "" {
		if basis, err = store.LoadCoverageBase(ctx, e.Store); err != nil {
			return nil, fmt.Errorf("failed to load coverage base: %w", err)
		}
		if basis == "" {
			basis = domain.BasisIncome
		}
	}

	lifeProtection, err := store.LoadCoverage10Y(ctx, e.Store, basis)
	if err != nil {
		return nil, fmt.Errorf("failed to load ten-year coverage: %w", err)
	}
	if !lifeProtection.IsPositive() {
		err := domain.NewInputMissing(op, "no ten-year %s coverage stored; run the coverage estimator first", basis)
		e.Logger.Warnf("needs gap rejected: %v", err)
		return nil, err
	}

	snap, err := store.LoadSnapshot(ctx, e.Store)
	if err != nil {
		return nil, err
	}
	liabilities := snap.Liabilities
	if in.ExistingLiabilities != nil {
		liabilities = *in.ExistingLiabilities
	}

	result := AnalyzeNeedsGap(NeedsGapFigures{
		Basis:                   basis,
		LifeProtection:          lifeProtection,
		ExistingLiabilities:     liabilities,
		EstimatedChildEducation: in.EstimatedChildEducation,
		TotalAssets:             snap.Assets,
		Life:                    in.Life,
	})
	e.Logger.Debugf("needs gap: basis=%s needs=%s coverage=%s gap=%s",
		basis, result.TotalNeeds, result.TotalCoverage, result.Gap)

	if err := store.SaveCoverageBase(ctx, e.Store, basis); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProjectRetirement runs the retirement projector. The stored retirement fund
// value stands in for the EPF balance when the plan does not give one.
func (e *Engine) ProjectRetirement(ctx context.Context, plan domain.RetirementPlan) (*domain.RetirementProjection, error) {
	if err := ValidatePlan(plan); err != nil {
		e.Logger.Warnf("retirement rejected: %v", err)
		return nil, err
	}

	existing := plan.ExistingFund
	if existing == nil {
		v, err := store.GetDecimal(ctx, e.Store, store.KeyRetirementFundValue)
		if err != nil {
			return nil, fmt.Errorf("failed to load retirement fund value: %w", err)
		}
		existing = &v
	}

	proj, err := ProjectRetirement(plan, *existing)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("retirement: n=%d n1=%d needed=%s available=%s gap=%s",
		proj.AccumulationYears, proj.DecumulationYears, proj.FundNeeded, proj.FundAvailable, proj.Gap)
	return &proj, nil
}

// RunWorksheet runs every section present in the worksheet in order and
// stops at the first failure
func (e *Engine) RunWorksheet(ctx context.Context, ws *domain.Worksheet) (*domain.Report, error) {
	report := &domain.Report{Name: ws.Name}

	if ws.Inputs != nil {
		res, err := e.CalculateNetWorth(ctx, *ws.Inputs)
		if err != nil {
			return nil, err
		}
		report.NetWorth = res
	}
	if ws.Coverage != nil {
		res, err := e.EstimateCoverage(ctx, ws.Coverage.Term)
		if err != nil {
			return nil, err
		}
		report.Coverage = res
	}
	if ws.NeedsGap != nil {
		res, err := e.AnalyzeNeedsGap(ctx, *ws.NeedsGap)
		if err != nil {
			return nil, err
		}
		report.NeedsGap = res
	}
	if ws.Retirement != nil {
		res, err := e.ProjectRetirement(ctx, *ws.Retirement)
		if err != nil {
			return nil, err
		}
		report.Retirement = res
	}

	snap, err := store.LoadSnapshot(ctx, e.Store)
	if err != nil {
		return nil, err
	}
	report.Snapshot = &snap
	e.Logger.Infof("worksheet %q complete", ws.Name)
	return report, nil
}
