package store

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// GetDecimal reads a key as decimal text. Absent or unparseable values read as zero.
func GetDecimal(ctx context.Context, s Store, key string) (decimal.Decimal, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok || raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, nil
	}
	return d, nil
}

// LoadSnapshot reads the five totals written by the net-worth calculator
func LoadSnapshot(ctx context.Context, s Store) (domain.FinancialSnapshot, error) {
	var snap domain.FinancialSnapshot
	fields := []struct {
		key string
		dst *decimal.Decimal
	}{
		{KeyTotalSalary, &snap.Income},
		{KeyTotalExpenses, &snap.Expenses},
		{KeyTotalAssets, &snap.Assets},
		{KeyTotalLiabilities, &snap.Liabilities},
		{KeyRetirementFundValue, &snap.RetirementFundValue},
	}
	for _, f := range fields {
		v, err := GetDecimal(ctx, s, f.key)
		if err != nil {
			return domain.FinancialSnapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
		}
		*f.dst = v
	}
	return snap, nil
}

// SnapshotValues encodes a snapshot as contract key-values
func SnapshotValues(snap domain.FinancialSnapshot) map[string]string {
	return map[string]string{
		KeyTotalSalary:         snap.Income.String(),
		KeyTotalExpenses:       snap.Expenses.String(),
		KeyTotalAssets:         snap.Assets.String(),
		KeyTotalLiabilities:    snap.Liabilities.String(),
		KeyRetirementFundValue: snap.RetirementFundValue.String(),
	}
}

// SaveSnapshot overwrites the five totals in one batch
func SaveSnapshot(ctx context.Context, s Store, snap domain.FinancialSnapshot) error {
	if err := s.SetAll(ctx, SnapshotValues(snap)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// SaveCoverage10Y persists the ten-year coverage figures
func SaveCoverage10Y(ctx context.Context, s Store, income, expenses decimal.Decimal) error {
	err := s.SetAll(ctx, map[string]string{
		KeyCoverageIncome10Y:   income.String(),
		KeyCoverageExpenses10Y: expenses.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to save ten-year coverage: %w", err)
	}
	return nil
}

// LoadCoverage10Y returns the stored ten-year coverage figure for a basis
func LoadCoverage10Y(ctx context.Context, s Store, basis domain.CoverageBasis) (decimal.Decimal, error) {
	key := KeyCoverageIncome10Y
	if basis == domain.BasisExpenses {
		key = KeyCoverageExpenses10Y
	}
	return GetDecimal(ctx, s, key)
}

// LoadCoverageBase returns the last chosen basis, or "" if none or unrecognised
func LoadCoverageBase(ctx context.Context, s Store) (domain.CoverageBasis, error) {
	raw, ok, err := s.Get(ctx, KeyCoverageBase)
	if err != nil || !ok {
		return "", err
	}
	basis, perr := domain.ParseCoverageBasis(raw)
	if perr != nil {
		return "", nil
	}
	return basis, nil
}

// SaveCoverageBase persists the chosen basis
func SaveCoverageBase(ctx context.Context, s Store, basis domain.CoverageBasis) error {
	if err := s.SetAll(ctx, map[string]string{KeyCoverageBase: string(basis)}); err != nil {
		return fmt.Errorf("failed to save coverage base: %w", err)
	}
	return nil
}

// Clear removes every contract key
func Clear(ctx context.Context, s Store) error {
	return s.Delete(ctx, AllKeys...)
}
