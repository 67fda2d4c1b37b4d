package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// ConsoleFormatter renders a styled plain-text report for the terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	title := "FINANCIAL HEALTH REPORT"
	if report.Name != "" {
		title += ": " + report.Name
	}
	fmt.Fprintln(&buf, TitleStyle.Render(title))

	sections := buildSections(report)
	if len(sections) == 0 {
		fmt.Fprintln(&buf, "No results.")
		return buf.Bytes(), nil
	}

	for _, s := range sections {
		fmt.Fprintln(&buf, SectionStyle.Render(s.Title))
		for _, r := range s.Rows {
			fmt.Fprintf(&buf, "%s%s\n", LabelStyle.Render(r.Label), c.styleValue(s.Key, r))
		}
		if s.Key == "networth" {
			fmt.Fprintln(&buf, NewHealthGauge(report.NetWorth.Health).Render())
		}
		fmt.Fprintln(&buf)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) styleValue(key string, r row) string {
	if key == "benchmarks" {
		return r.Value
	}
	if r.Label == "Gap" {
		switch {
		case strings.HasPrefix(r.Value, "Shortfall"):
			return FailStyle.Render(r.Value)
		case strings.HasPrefix(r.Value, "Surplus"):
			return PassStyle.Render(r.Value)
		}
	}
	return ValueStyle.Render(r.Value)
}
