package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// CSVFormatter writes one row per figure: section, metric, value
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Metric", "Value"}); err != nil {
		return nil, err
	}
	for _, s := range buildSections(report) {
		for _, r := range s.Rows {
			if err := w.Write([]string{s.Key, r.Label, r.Value}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
