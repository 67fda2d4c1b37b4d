package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	ws, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "household.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "household", ws.Name)
	require.NotNil(t, ws.Inputs)
	assert.Equal(t, "4500", ws.Inputs.Income.Salary.String())
	assert.Equal(t, "5000", ws.Inputs.TotalIncome().String())
	assert.Equal(t, "50000", ws.Inputs.TotalAssets().String())

	require.NotNil(t, ws.Coverage)
	assert.Equal(t, domain.TermTenYear, ws.Coverage.Term, "card ids are normalised")

	require.NotNil(t, ws.NeedsGap)
	assert.Equal(t, domain.BasisExpenses, ws.NeedsGap.Basis)
	assert.Nil(t, ws.NeedsGap.ExistingLiabilities)
	assert.Equal(t, "100000", ws.NeedsGap.Life.String())

	require.NotNil(t, ws.Retirement)
	assert.Equal(t, 30, ws.Retirement.AccumulationYears())
	assert.Nil(t, ws.Retirement.ExistingFund)
	require.Len(t, ws.Retirement.SideFunds, 1)
	assert.Equal(t, "ASB", ws.Retirement.SideFunds[0].Name)
	assert.Equal(t, "0.05", ws.Retirement.SideFunds[0].AnnualReturn.String())
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		substr string
	}{
		{
			name:   "malformed yaml",
			doc:    "inputs: [",
			substr: "failed to parse YAML",
		},
		{
			name:   "empty worksheet",
			doc:    "name: nothing\n",
			substr: "no sections",
		},
		{
			name:   "negative input",
			doc:    "inputs:\n  assets:\n    savings: -5\n",
			substr: "savings",
		},
		{
			name:   "unknown term",
			doc:    "coverage:\n  term: 20y\n",
			substr: "unknown coverage term",
		},
		{
			name:   "unknown basis",
			doc:    "needs_gap:\n  basis: pension\n",
			substr: "needs gap",
		},
		{
			name:   "negative life cover",
			doc:    "needs_gap:\n  life: -1\n",
			substr: "life cover cannot be negative",
		},
		{
			name:   "retirement before current age",
			doc:    "retirement:\n  current_age: 40\n  retirement_age: 35\n  max_age: 80\n",
			substr: "must be greater than current age",
		},
		{
			name:   "too many side funds",
			doc:    "retirement:\n  current_age: 30\n  retirement_age: 60\n  max_age: 80\n  side_funds: [{}, {}, {}]\n",
			substr: "at most 2 side funds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestParse_ExplicitLiabilities(t *testing.T) {
	doc := "needs_gap:\n  basis: income\n  existing_liabilities: 0\n"
	ws, err := NewInputParser().Parse([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, ws.NeedsGap.ExistingLiabilities, "an explicit zero is kept")
	assert.True(t, ws.NeedsGap.ExistingLiabilities.IsZero())
}

func TestLoadSettings(t *testing.T) {
	for _, k := range []string{EnvStore, EnvStorePath, EnvDSN, EnvLogLevel, EnvLogFormat, EnvAddr} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	t.Run("defaults", func(t *testing.T) {
		s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.False(t, s.EnvFileLoaded)
		assert.Equal(t, DefaultStore, s.Store)
		assert.Equal(t, DefaultStorePath, s.StorePath)
		assert.Equal(t, DefaultLogLevel, s.LogLevel)
		assert.Equal(t, DefaultAddr, s.Addr)
		assert.Empty(t, s.DSN)
	})

	t.Run("env wins over dotenv", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		content := "FINHEALTH_STORE=postgres\nFINHEALTH_DSN=postgres://localhost/finhealth\nFINHEALTH_ADDR=:9090\n"
		require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
		t.Setenv(EnvAddr, ":7070")

		s, err := LoadSettings(envFile)
		require.NoError(t, err)
		assert.True(t, s.EnvFileLoaded)
		assert.Equal(t, "postgres", s.Store)
		assert.Equal(t, "postgres://localhost/finhealth", s.DSN)
		assert.Equal(t, ":7070", s.Addr)
	})
}
