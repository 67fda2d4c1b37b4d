// Package store implements the flat key-value contract shared by the
// calculators. Values are decimal text; a missing key reads as absent.
package store

import (
	"context"
	"fmt"
	"sort"
)

// Keys written and read by the calculators
const (
	KeyTotalSalary         = "totalSalary"
	KeyTotalExpenses       = "totalExpenses"
	KeyTotalAssets         = "totalAssets"
	KeyTotalLiabilities    = "totalLiabilities"
	KeyRetirementFundValue = "retirementFundValue"
	KeyCoverageIncome10Y   = "takafulCoverageIncome10Y"
	KeyCoverageExpenses10Y = "takafulCoverageExpenses10Y"
	KeyCoverageBase        = "takafulBase"
)

// AllKeys lists every key in the contract
var AllKeys = []string{
	KeyTotalSalary,
	KeyTotalExpenses,
	KeyTotalAssets,
	KeyTotalLiabilities,
	KeyRetirementFundValue,
	KeyCoverageIncome10Y,
	KeyCoverageExpenses10Y,
	KeyCoverageBase,
}

// Store is a flat string key-value store with no schema or expiry
type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	// SetAll overwrites every given key. Either all writes land or none do.
	SetAll(ctx context.Context, values map[string]string) error
	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Driver names accepted by Open
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend
type Options struct {
	Driver string
	Path   string // file driver
	DSN    string // postgres driver
}

// Open constructs the backend named by opts.Driver
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file store requires a path")
		}
		return NewFileStore(opts.Path)
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres store requires a DSN")
		}
		return OpenPostgresStore(ctx, opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", opts.Driver)
	}
}

// Dump reads every contract key that is present, for display
func Dump(ctx context.Context, s Store) (map[string]string, error) {
	out := make(map[string]string, len(AllKeys))
	for _, k := range AllKeys {
		v, ok, err := s.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", k, err)
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
