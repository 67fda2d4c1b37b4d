package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var registry = map[string]Formatter{}

// formatAliases maps alternative names onto registered formatters
var formatAliases = map[string]string{
	"text":  "console",
	"table": "console",
}

// fileExtensions maps formatter names to report file extensions
var fileExtensions = map[string]string{
	"console": "txt",
	"json":    "json",
	"csv":     "csv",
	"pdf":     "pdf",
}

func init() {
	Register(ConsoleFormatter{})
	Register(JSONFormatter{})
	Register(CSVFormatter{})
	Register(PDFFormatter{})
}

// Register adds or replaces a formatter under its name
func Register(f Formatter) {
	registry[f.Name()] = f
}

// GetFormatterByName returns the formatter for a name or alias, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[name]; ok {
		name = alias
	}
	return registry[name]
}

// AvailableFormats lists the registered formatter names
func AvailableFormats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternative names
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatAliases))
	for name := range formatAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted formats the report and writes it to path. An empty path
// writes a timestamped file in the working directory. Returns the path written.
func WriteFormatted(f Formatter, report *domain.Report, path string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	if path == "" {
		ext := fileExtensions[f.Name()]
		if ext == "" {
			ext = "txt"
		}
		path = fmt.Sprintf("finhealth_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}
