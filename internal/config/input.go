package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of worksheet files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a worksheet from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Worksheet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a worksheet document
func (ip *InputParser) Parse(data []byte) (*domain.Worksheet, error) {
	var ws domain.Worksheet
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateWorksheet(&ws); err != nil {
		return nil, fmt.Errorf("worksheet validation failed: %w", err)
	}
	return &ws, nil
}

// ValidateWorksheet checks every section present. Cross-section
// preconditions such as coverage needing a stored snapshot are left to the
// engine.
func (ip *InputParser) ValidateWorksheet(ws *domain.Worksheet) error {
	if ws.Inputs == nil && ws.Coverage == nil && ws.NeedsGap == nil && ws.Retirement == nil {
		return fmt.Errorf("worksheet has no sections")
	}

	if ws.Inputs != nil {
		if err := calculation.ValidateInputs(*ws.Inputs); err != nil {
			return fmt.Errorf("inputs: %w", err)
		}
	}

	if ws.Coverage != nil {
		term, err := domain.ParseCoverageTerm(string(ws.Coverage.Term))
		if err != nil {
			return fmt.Errorf("coverage: %w", err)
		}
		ws.Coverage.Term = term
	}

	if ws.NeedsGap != nil {
		if err := ip.validateNeedsGap(ws.NeedsGap); err != nil {
			return fmt.Errorf("needs gap: %w", err)
		}
	}

	if ws.Retirement != nil {
		if err := calculation.ValidatePlan(*ws.Retirement); err != nil {
			return fmt.Errorf("retirement: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateNeedsGap(in *domain.NeedsGapInput) error {
	basis, err := domain.ParseCoverageBasis(string(in.Basis))
	if err != nil {
		return err
	}
	in.Basis = basis

	if in.EstimatedChildEducation.IsNegative() {
		return fmt.Errorf("estimated child education cannot be negative")
	}
	if in.Life.IsNegative() {
		return fmt.Errorf("life cover cannot be negative")
	}
	if in.ExistingLiabilities != nil && in.ExistingLiabilities.IsNegative() {
		return fmt.Errorf("existing liabilities cannot be negative")
	}
	return nil
}
