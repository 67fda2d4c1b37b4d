package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finhealth/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneNetWorth:
		content = m.renderForm("Enter monthly income and expenses, and current assets and liabilities.", m.netWorthForm)
	case SceneCoverage:
		content = m.renderCoverage()
	case SceneNeedsGap:
		content = m.renderForm("Needs gap uses the 10-year coverage figure. Estimate coverage first.", m.needsGapForm)
	case SceneRetirement:
		content = m.renderForm("Rates accept 0.05 or 5%. Leave EPF balance blank to use the stored value.", m.retirementForm)
	case SceneResults:
		content = m.renderResults()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4

	contentContainer := lipgloss.NewStyle().
		Height(max(contentHeight, 1)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and the current scene
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("FinHealth - Financial Health Calculator")
	crumb := m.currentScene.String()
	if snap := m.report.Snapshot; snap != nil {
		crumb += " / income " + output.FormatCurrency(snap.Income) + ", expenses " + output.FormatCurrency(snap.Expenses)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	bindings := []struct{ key, desc string }{
		{keys.NetWorth.Help().Key, keys.NetWorth.Help().Desc},
		{keys.Coverage.Help().Key, keys.Coverage.Help().Desc},
		{keys.NeedsGap.Help().Key, keys.NeedsGap.Help().Desc},
		{keys.Retirement.Help().Key, keys.Retirement.Help().Desc},
		{keys.Results.Help().Key, keys.Results.Help().Desc},
		{keys.Help.Help().Key, keys.Help.Help().Desc},
		{keys.Submit.Help().Key, keys.Submit.Help().Desc},
		{keys.Quit.Help().Key, keys.Quit.Help().Desc},
	}
	shortcuts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		shortcuts = append(shortcuts, formatShortcut(b.key, b.desc))
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

func (m Model) renderForm(hint string, f *Form) string {
	return BorderStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		SubtitleStyle.Render(hint),
		"",
		f.View(),
	))
}

// renderCoverage renders the term cards with the selected one highlighted
func (m Model) renderCoverage() string {
	cards := make([]string, 0, len(coverageTerms))
	for i, t := range coverageTerms {
		label := string(t)
		if i == m.termIndex {
			label = SelectedItemStyle.Render("[" + label + "]")
		} else {
			label = " " + label + " "
		}
		cards = append(cards, label)
	}

	body := []string{
		SubtitleStyle.Render("Choose a term with ← → and press enter."),
		"",
		strings.Join(cards, "   "),
	}
	if c := m.report.Coverage; c != nil {
		body = append(body, "",
			NewMetricCard("Coverage (Income)", output.FormatCurrency(c.CoverageIncome)).
				WithDescription(string(c.Term)).RenderCompact(),
			NewMetricCard("Coverage (Expenses)", output.FormatCurrency(c.CoverageExpenses)).
				WithDescription(string(c.Term)).RenderCompact(),
		)
	}
	return BorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// renderResults renders summary cards above the scrollable report
func (m Model) renderResults() string {
	cards := m.summaryCards()
	if len(cards) == 0 {
		return BorderStyle.Render("No results yet.\n\nFill in a calculator and press enter.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, MetricGrid(cards, 3), m.results.View())
}

func (m Model) renderHelp() string {
	helpText := `
FinHealth - Financial Health Calculator

KEYBOARD SHORTCUTS:
  F2       Net worth, ratios and health tier
  F3       Takaful coverage estimate
  F4       Protection needs gap
  F5       Retirement fund projection
  F6       Results
  F1       Show this help
  ESC      Go back
  Ctrl+C   Quit

FORMS:
  Tab / ↓       Next field
  Shift+Tab / ↑ Previous field
  Enter         Calculate

Net worth stores the totals the other calculators read, so start there.
`
	return BorderStyle.Render(helpText)
}
