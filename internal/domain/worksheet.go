package domain

// CoverageRequest selects the coverage term to view
type CoverageRequest struct {
	Term CoverageTerm `yaml:"term" json:"term"`
}

// Worksheet is a complete input file. Every section is optional; sections run
// in order net worth, coverage, needs gap, retirement.
type Worksheet struct {
	Name       string           `yaml:"name,omitempty" json:"name,omitempty"`
	Inputs     *FinancialInputs `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Coverage   *CoverageRequest `yaml:"coverage,omitempty" json:"coverage,omitempty"`
	NeedsGap   *NeedsGapInput   `yaml:"needs_gap,omitempty" json:"needsGap,omitempty"`
	Retirement *RetirementPlan  `yaml:"retirement,omitempty" json:"retirement,omitempty"`
}

// Report collects the results of one or more calculators
type Report struct {
	Name       string                `json:"name,omitempty"`
	NetWorth   *NetWorthResult       `json:"netWorth,omitempty"`
	Coverage   *CoverageEstimate     `json:"coverage,omitempty"`
	NeedsGap   *NeedsGapResult       `json:"needsGap,omitempty"`
	Retirement *RetirementProjection `json:"retirement,omitempty"`
	Snapshot   *FinancialSnapshot    `json:"snapshot,omitempty"`
}
