package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finhealth/internal/domain"
)

// HealthGauge draws the wealth-ratio gauge as a horizontal bar. The filled
// part tracks BarPercent; the track is split into tier segments proportional
// to their display weights.
type HealthGauge struct {
	Assessment domain.HealthAssessment
	Width      int
}

// NewHealthGauge creates a gauge of the default width
func NewHealthGauge(a domain.HealthAssessment) *HealthGauge {
	return &HealthGauge{Assessment: a, Width: 40}
}

// WithWidth sets the bar width
func (g *HealthGauge) WithWidth(width int) *HealthGauge {
	g.Width = width
	return g
}

// Filled returns the number of filled cells
func (g *HealthGauge) Filled() int {
	pct := g.Assessment.BarPercent.InexactFloat64()
	filled := int(float64(g.Width) * pct / 100)
	if filled > g.Width {
		filled = g.Width
	}
	if filled < 0 {
		filled = 0
	}
	return filled
}

// segments returns the tier owning each cell of the track
func (g *HealthGauge) segments() []domain.HealthTier {
	total := 0
	for _, b := range domain.HealthTierBands {
		total += b.DisplayWeight
	}
	cells := make([]domain.HealthTier, 0, g.Width)
	acc := 0
	for _, b := range domain.HealthTierBands {
		acc += b.DisplayWeight
		end := acc * g.Width / total
		for len(cells) < end {
			cells = append(cells, b.Tier)
		}
	}
	return cells
}

// Render returns the styled gauge line
func (g *HealthGauge) Render() string {
	var content strings.Builder
	filled := g.Filled()

	content.WriteString("[")
	for i, tier := range g.segments() {
		style := lipgloss.NewStyle().Foreground(ColorBorder)
		ch := "░"
		if i < filled {
			style = lipgloss.NewStyle().Foreground(tierColors[tier])
			ch = "█"
		}
		content.WriteString(style.Render(ch))
	}
	content.WriteString("]")

	fmt.Fprintf(&content, " %s%% %s", g.Assessment.BarPercent.StringFixed(0), g.Assessment.Label)
	return content.String()
}
