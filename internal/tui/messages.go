package tui

import "github.com/rgehrsitz/finhealth/internal/domain"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneNetWorth Scene = iota
	SceneCoverage
	SceneNeedsGap
	SceneRetirement
	SceneResults
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneNetWorth:
		return "Net Worth"
	case SceneCoverage:
		return "Takaful Coverage"
	case SceneNeedsGap:
		return "Needs Gap"
	case SceneRetirement:
		return "Retirement"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// SnapshotLoadedMsg carries the totals found in the store at startup
type SnapshotLoadedMsg struct {
	Snapshot domain.FinancialSnapshot
}

// CalculationCompleteMsg carries one calculator's result merged into the
// session report
type CalculationCompleteMsg struct {
	Report *domain.Report
	Err    error
}
