package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "state", "finhealth.yaml"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, KeyTotalSalary)
			require.NoError(t, err)
			assert.False(t, ok, "fresh store should be empty")

			require.NoError(t, s.SetAll(ctx, map[string]string{KeyTotalSalary: "5000", KeyTotalExpenses: "3000"}))
			v, ok, err := s.Get(ctx, KeyTotalSalary)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "5000", v)

			require.NoError(t, s.SetAll(ctx, map[string]string{KeyTotalSalary: "6000"}))
			v, _, _ = s.Get(ctx, KeyTotalSalary)
			assert.Equal(t, "6000", v, "writes overwrite")
			v, _, _ = s.Get(ctx, KeyTotalExpenses)
			assert.Equal(t, "3000", v, "unrelated keys survive")

			require.NoError(t, s.Delete(ctx, KeyTotalSalary, "missing"))
			_, ok, _ = s.Get(ctx, KeyTotalSalary)
			assert.False(t, ok)
			require.NoError(t, s.Close())
		})
	}
}

func TestFileStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.yaml")

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, SaveSnapshot(ctx, fs, domain.FinancialSnapshot{
		Income:   decimal.NewFromInt(5000),
		Expenses: decimal.NewFromInt(3000),
	}))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	snap, err := LoadSnapshot(ctx, reopened)
	require.NoError(t, err)
	assert.True(t, snap.Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, snap.Expenses.Equal(decimal.NewFromInt(3000)))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestLoadSnapshot_AbsentAndUnparseableReadAsZero(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SetAll(ctx, map[string]string{
		KeyTotalSalary: "not-a-number",
		KeyTotalAssets: "50000.50",
	}))

	snap, err := LoadSnapshot(ctx, s)
	require.NoError(t, err)
	assert.True(t, snap.Income.IsZero())
	assert.True(t, snap.Expenses.IsZero())
	assert.Equal(t, "50000.5", snap.Assets.String())
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	want := domain.FinancialSnapshot{
		Income:              decimal.NewFromInt(5000),
		Expenses:            decimal.NewFromInt(3000),
		Assets:              decimal.NewFromInt(50000),
		Liabilities:         decimal.NewFromInt(20000),
		RetirementFundValue: decimal.NewFromInt(12000),
	}
	require.NoError(t, SaveSnapshot(ctx, s, want))

	got, err := LoadSnapshot(ctx, s)
	require.NoError(t, err)
	assert.True(t, want.Income.Equal(got.Income))
	assert.True(t, want.Expenses.Equal(got.Expenses))
	assert.True(t, want.Assets.Equal(got.Assets))
	assert.True(t, want.Liabilities.Equal(got.Liabilities))
	assert.True(t, want.RetirementFundValue.Equal(got.RetirementFundValue))
}

func TestCoverageKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, SaveCoverage10Y(ctx, s, decimal.NewFromInt(600000), decimal.NewFromInt(360000)))

	inc, err := LoadCoverage10Y(ctx, s, domain.BasisIncome)
	require.NoError(t, err)
	assert.Equal(t, "600000", inc.String())

	exp, err := LoadCoverage10Y(ctx, s, domain.BasisExpenses)
	require.NoError(t, err)
	assert.Equal(t, "360000", exp.String())

	base, err := LoadCoverageBase(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, domain.CoverageBasis(""), base)

	require.NoError(t, SaveCoverageBase(ctx, s, domain.BasisExpenses))
	base, err = LoadCoverageBase(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, domain.BasisExpenses, base)

	require.NoError(t, s.SetAll(ctx, map[string]string{KeyCoverageBase: "garbage"}))
	base, err = LoadCoverageBase(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, domain.CoverageBasis(""), base)
}

func TestClearAndDump(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, SaveSnapshot(ctx, s, domain.FinancialSnapshot{Income: decimal.NewFromInt(1)}))
	require.NoError(t, s.SetAll(ctx, map[string]string{"unrelated": "x"}))

	dump, err := Dump(ctx, s)
	require.NoError(t, err)
	assert.Len(t, dump, 5)
	assert.NotContains(t, dump, "unrelated")

	require.NoError(t, Clear(ctx, s))
	dump, err = Dump(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, dump)
	v, ok, _ := s.Get(ctx, "unrelated")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Options{Driver: DriverFile, Path: filepath.Join(t.TempDir(), "kv.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(ctx, Options{Driver: DriverFile})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Driver: DriverPostgres})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Driver: "redis"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("FINHEALTH_TEST_DSN")
	if dsn == "" {
		t.Skip("FINHEALTH_TEST_DSN not set")
	}
	ctx := context.Background()
	s, err := OpenPostgresStore(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, Clear(ctx, s))

	require.NoError(t, SaveSnapshot(ctx, s, domain.FinancialSnapshot{Income: decimal.NewFromInt(5000)}))
	snap, err := LoadSnapshot(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "5000", snap.Income.String())

	require.NoError(t, Clear(ctx, s))
	_, ok, err := s.Get(ctx, KeyTotalSalary)
	require.NoError(t, err)
	assert.False(t, ok)
}
