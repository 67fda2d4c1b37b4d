package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/output"
)

// keyMap holds the global bindings. Letter keys are left to the forms.
type keyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Submit     key.Binding
	Help       key.Binding
	NetWorth   key.Binding
	Coverage   key.Binding
	NeedsGap   key.Binding
	Retirement key.Binding
	Results    key.Binding
	PrevTerm   key.Binding
	NextTerm   key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
	Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
	NetWorth:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "net worth")),
	Coverage:   key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "coverage")),
	NeedsGap:   key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "needs gap")),
	Retirement: key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "retirement")),
	Results:    key.NewBinding(key.WithKeys("f6"), key.WithHelp("F6", "results")),
	PrevTerm:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "shorter term")),
	NextTerm:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "longer term")),
}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.Width = msg.Width
		m.results.Height = max(msg.Height-6, 1)
		m.refreshResults()
		return m, nil

	case NavigateMsg:
		m.navigate(msg.Scene)
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case SnapshotLoadedMsg:
		if !msg.Snapshot.Income.IsZero() || !msg.Snapshot.Assets.IsZero() {
			snap := msg.Snapshot
			m.mergeReport(&domain.Report{Snapshot: &snap})
			m.refreshResults()
		}
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.mergeReport(msg.Report)
		m.refreshResults()
		m.navigate(SceneResults)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m *Model) navigate(s Scene) {
	if s == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = s
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil && !key.Matches(msg, keys.Quit) {
		// any key dismisses the error
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.navigate(m.previousScene)
		return m, nil
	case key.Matches(msg, keys.Help):
		m.navigate(SceneHelp)
		return m, nil
	case key.Matches(msg, keys.NetWorth):
		m.navigate(SceneNetWorth)
		return m, nil
	case key.Matches(msg, keys.Coverage):
		m.navigate(SceneCoverage)
		return m, nil
	case key.Matches(msg, keys.NeedsGap):
		m.navigate(SceneNeedsGap)
		return m, nil
	case key.Matches(msg, keys.Retirement):
		m.navigate(SceneRetirement)
		return m, nil
	case key.Matches(msg, keys.Results):
		m.navigate(SceneResults)
		return m, nil
	case key.Matches(msg, keys.Submit):
		return m.submit()
	}

	return m.updateCurrentScene(msg)
}

// submit starts the calculator for the current scene
func (m Model) submit() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneNetWorth:
		cmd = netWorthCmd(m.ctx, m.engine, m.netWorthForm.Values())
	case SceneCoverage:
		cmd = coverageCmd(m.ctx, m.engine, coverageTerms[m.termIndex])
	case SceneNeedsGap:
		cmd = needsGapCmd(m.ctx, m.engine, m.needsGapForm.Values())
	case SceneRetirement:
		cmd = retirementCmd(m.ctx, m.engine, m.retirementForm.Values())
	default:
		return m, nil
	}
	m.loading = true
	m.loadingMessage = "Calculating " + m.currentScene.String() + "..."
	return m, cmd
}

// updateCurrentScene delegates updates to the current scene
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneNetWorth:
		return m, m.netWorthForm.Update(msg)
	case SceneNeedsGap:
		return m, m.needsGapForm.Update(msg)
	case SceneRetirement:
		return m, m.retirementForm.Update(msg)
	case SceneCoverage:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(km, keys.PrevTerm):
				m.termIndex = max(m.termIndex-1, 0)
			case key.Matches(km, keys.NextTerm):
				m.termIndex = min(m.termIndex+1, len(coverageTerms)-1)
			}
		}
		return m, nil
	case SceneResults:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refreshResults renders the session report into the results viewport
func (m *Model) refreshResults() {
	data, err := output.ConsoleFormatter{}.Format(m.report)
	if err != nil {
		m.err = err
		return
	}
	m.results.SetContent(string(data))
}
