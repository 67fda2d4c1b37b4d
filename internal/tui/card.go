package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/output"
)

// MetricCard displays a single metric with label, value and optional sign
type MetricCard struct {
	Label       string
	Value       string
	Positive    *bool
	Description string
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// WithSign colours the value green when positive and red otherwise
func (m *MetricCard) WithSign(positive bool) *MetricCard {
	m.Positive = &positive
	return m
}

// WithDescription adds a description line
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

func (m *MetricCard) valueStyle() lipgloss.Style {
	switch {
	case m.Positive == nil:
		return MetricValueStyle
	case *m.Positive:
		return MetricPositiveStyle
	default:
		return MetricNegativeStyle
	}
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := MetricLabelStyle.Render(m.Label) + "\n" + m.valueStyle().Render(m.Value)
	if m.Description != "" {
		content += "\n" + SubtitleStyle.Render(m.Description)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// RenderCompact returns a one-line version without border
func (m *MetricCard) RenderCompact() string {
	line := MetricLabelStyle.Render(m.Label+":") + " " + m.valueStyle().Render(m.Value)
	if m.Description != "" {
		line += " " + SubtitleStyle.Render("("+m.Description+")")
	}
	return line
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// summaryCards picks the headline figure of every calculator run so far
func (m Model) summaryCards() []*MetricCard {
	r := m.report
	var cards []*MetricCard
	if nw := r.NetWorth; nw != nil {
		cards = append(cards,
			NewMetricCard("Net Worth", output.FormatCurrency(nw.Ratios.NetWorth)).
				WithSign(!nw.Ratios.NetWorth.IsNegative()).
				WithDescription(nw.Health.Label))
	}
	if c := r.Coverage; c != nil {
		cards = append(cards,
			NewMetricCard("Coverage (Income)", output.FormatCurrency(c.CoverageIncome)).
				WithDescription(string(c.Term)))
	}
	if g := r.NeedsGap; g != nil {
		cards = append(cards, gapCard("Protection Gap", g.Classification))
	}
	if p := r.Retirement; p != nil {
		cards = append(cards, gapCard("Retirement Gap", p.Classification))
	}
	return cards
}

func gapCard(label string, c domain.GapClassification) *MetricCard {
	return NewMetricCard(label, output.FormatGap(c)).WithSign(c.Status != domain.GapShortfall)
}
