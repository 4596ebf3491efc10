// Package cellranger parses 10x Genomics Cell Ranger web summaries. The
// HTML report embeds its entire data model as a single
// `const data = {...}` JSON assignment, which is the only part read here.
package cellranger

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// The data line holds the whole report as one JSON document, so it can
// run to tens of megabytes.
const maxLineBytes = 256 * 1024 * 1024

const dataPrefix = "const data"

// parseWebSummary scans an HTML web summary for the embedded JSON
// assignment and decodes it.
func parseWebSummary(r io.Reader) (*summaryData, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		line = strings.Replace(line, "const data = ", "", 1)

		var ws webSummary
		if err := json.Unmarshal([]byte(line), &ws); err != nil {
			return nil, pfx.Err(err)
		}

		return &ws.Summary, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return nil, errors.New("no const data assignment found")
}

type webSummary struct {
	Summary summaryData `json:"summary"`
}

type summaryData struct {
	Sample      sampleInfo  `json:"sample"`
	SummaryTab  summaryTab  `json:"summary_tab"`
	AnalysisTab analysisTab `json:"analysis_tab"`
	Alarms      alarmGroup  `json:"alarms"`
}

type sampleInfo struct {
	ID string `json:"id"`
}

type summaryTab struct {
	Cells      cellsTab `json:"cells"`
	Sequencing tableTab `json:"sequencing"`
	Mapping    tableTab `json:"mapping"`
}

type cellsTab struct {
	Table           metricTable  `json:"table"`
	BarcodeKneePlot plotlyFigure `json:"barcode_knee_plot"`
	Help            helpData     `json:"help"`
}

type tableTab struct {
	Table metricTable `json:"table"`
}

type analysisTab struct {
	MedianGenePlot medianGenePlot `json:"median_gene_plot"`
}

type medianGenePlot struct {
	Help plotHelp     `json:"help"`
	Plot plotlyFigure `json:"plot"`
}

type plotHelp struct {
	Title    string `json:"title"`
	HelpText string `json:"helpText"`
}

type alarmGroup struct {
	Alarms []alarm `json:"alarms"`
}

type alarm struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type metricTable struct {
	Rows []metricRow `json:"rows"`
}

// metricRow is a [label, value] pair. Values are display strings in
// current Cell Ranger output, but older releases emit bare numbers.
type metricRow struct {
	Label string
	Value string
}

func (r *metricRow) UnmarshalJSON(b []byte) error {
	var cells []interface{}
	if err := json.Unmarshal(b, &cells); err != nil {
		return pfx.Err(err)
	}

	if len(cells) < 2 {
		return fmt.Errorf("metric row has %d cells, want 2", len(cells))
	}

	r.Label = fmt.Sprint(cells[0])
	r.Value = stringifyCell(cells[1])

	return nil
}

func stringifyCell(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

type plotlyFigure struct {
	Data   []plotlyTrace `json:"data"`
	Layout plotlyLayout  `json:"layout"`
}

type plotlyTrace struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

type plotlyLayout struct {
	Title string    `json:"title"`
	XAxis axisTitle `json:"xaxis"`
	YAxis axisTitle `json:"yaxis"`
}

type axisTitle struct {
	Title string `json:"title"`
}

// helpData is the per-tab help: entries of [title, [paragraph, ...]].
type helpData struct {
	Data []helpEntry `json:"data"`
}

type helpEntry struct {
	Title string
	Lines []string
}

func (h *helpEntry) UnmarshalJSON(b []byte) error {
	var cells []json.RawMessage
	if err := json.Unmarshal(b, &cells); err != nil {
		return pfx.Err(err)
	}

	if len(cells) < 2 {
		return fmt.Errorf("help entry has %d cells, want 2", len(cells))
	}

	if err := json.Unmarshal(cells[0], &h.Title); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(json.Unmarshal(cells[1], &h.Lines))
}

// firstLine returns the first help paragraph registered under title.
func (h helpData) firstLine(title string) string {
	for _, entry := range h.Data {
		if entry.Title == title && len(entry.Lines) > 0 {
			return entry.Lines[0]
		}
	}

	return ""
}
