package output

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#2563EB")
	ColorSuccess = lipgloss.Color("#16A34A")
	ColorDanger  = lipgloss.Color("#DC2626")
	ColorWarning = lipgloss.Color("#D97706")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#D1D5DB")
)

// Styles used by the console report
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(32)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	PassStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	FailStyle = lipgloss.NewStyle().Foreground(ColorDanger)
)

// tierColors shades the gauge from red (Bankrupt) to green (Free)
var tierColors = []lipgloss.Color{
	"#7F1D1D", "#DC2626", "#F97316", "#FACC15", "#84CC16", "#22C55E", "#16A34A", "#15803D",
}
