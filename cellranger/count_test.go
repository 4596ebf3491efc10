package cellranger

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/scwatts/MultiQC"
	"github.com/scwatts/MultiQC/plot"
)

const summaryJSON = `{"summary": {
  "sample": {"id": "%s"},
  "summary_tab": {
    "cells": {
      "table": {"rows": [
        ["Estimated Number of Cells", "5,000"],
        ["Mean Reads per Cell", "25,000"],
        ["Fraction Reads in Cells", "92.1%%"]
      ]},
      "barcode_knee_plot": {
        "data": [{"x": [1, 2, 3], "y": [1000, 100, 10]}],
        "layout": {
          "title": "Barcode Rank Plot",
          "xaxis": {"title": "Barcodes"},
          "yaxis": {"title": "UMI counts"}
        }
      },
      "help": {"data": [["Barcode Rank Plot", ["The plot shows filtered barcodes."]]]}
    },
    "sequencing": {"table": {"rows": [
      ["Number of Reads", "%s"],
      ["Valid Barcodes", "97.5%%"],
      ["Q30 Bases in Barcode", "95.2%%"],
      ["Q30 Bases in UMI", "94.8%%"],
      ["Q30 Bases in RNA Read", "89.9%%"]
    ]}},
    "mapping": {"table": {"rows": [
      ["Reads Mapped to Genome", "93.6%%"],
      ["Reads Mapped Confidently to Genome", "89.7%%"],
      ["Some Future Metric", "42"]
    ]}}
  },
  "analysis_tab": {"median_gene_plot": {
    "help": {"title": "Median Genes per Cell", "helpText": "Median genes detected per cell."},
    "plot": {
      "data": [{"x": [1000, 2000], "y": [800, 1400]}],
      "layout": {
        "xaxis": {"title": "Mean Reads per Cell"},
        "yaxis": {"title": "Median Genes per Cell"}
      }
    }
  }},
  "alarms": {"alarms": [
    {"id": "low_fraction_reads_in_cells", "title": "Low Fraction Reads in Cells"}
  ]}
}}`

func webSummaryInput(sample, reads string) multiqc.InputFile {
	data := fmt.Sprintf(summaryJSON, sample, reads)
	html := "<html><head></head><body>\n" +
		"<script>\n" +
		"const data = " + strings.ReplaceAll(data, "\n", " ") + "\n" +
		"</script>\n" +
		"</body></html>\n"

	return multiqc.InputFile{
		Path:   sample + "/outs/web_summary.html",
		Root:   sample + "/outs",
		Reader: strings.NewReader(html),
	}
}

func TestParseCountReport(t *testing.T) {
	m := NewCount(multiqc.DefaultConfig())

	out, err := m.Parse([]multiqc.InputFile{webSummaryInput("sample_alpha", "125,000,000")})
	if err != nil {
		t.Fatal(err)
	}

	general := out.GeneralStats["sample_alpha"]
	for _, v := range []struct {
		Key  string
		Want float64
	}{
		{"COUNT reads", 125000000},
		{"COUNT estimated cells", 5000},
		{"COUNT avg reads/cell", 25000},
		{"COUNT reads in cells", 92.1},
		{"COUNT valid bc", 97.5},
		{"COUNT Q30 bc", 95.2},
	} {
		if got := general[v.Key]; !got.IsNumber() || got.Float() != v.Want {
			t.Errorf("general stats %q = %v, want %f", v.Key, got, v.Want)
		}
	}

	data := out.DataFile.Data["sample_alpha"]
	if got := data["reads mapped"]; got.Float() != 93.6 {
		t.Errorf("reads mapped = %v", got)
	}
	if _, found := data["Some Future Metric"]; found {
		t.Error("unmapped labels must be skipped")
	}
	if out.DataFile.Name != "multiqc_cellranger_count" {
		t.Errorf("data file name = %q", out.DataFile.Name)
	}

	if err := out.Validate(); err != nil {
		t.Errorf("output must satisfy the header invariant: %v", err)
	}

	h, found := out.GeneralStatsHeaders.Get("COUNT reads")
	if !found || h.Modify == nil {
		t.Fatalf("COUNT reads header = %+v, found = %v", h, found)
	}
	if got := h.Modify(2000000); got != 2 {
		t.Errorf("read count Modify(2e6) = %f, want 2 (millions)", got)
	}
	if h, _ := out.GeneralStatsHeaders.Get("COUNT Q30 bc"); !h.Hidden {
		t.Error("COUNT Q30 bc must be hidden by default")
	}
}

func TestParseCountSections(t *testing.T) {
	m := NewCount(multiqc.DefaultConfig())

	out, err := m.Parse([]multiqc.InputFile{webSummaryInput("sample_alpha", "100")})
	if err != nil {
		t.Fatal(err)
	}

	anchors := make(map[string]multiqc.Section, len(out.Sections))
	for _, section := range out.Sections {
		anchors[section.Anchor] = section
	}

	warnings, found := anchors["cellranger-count-warnings"]
	if !found {
		t.Fatal("warnings section missing")
	}
	table := warnings.Plot.(*plot.Table)
	if v := table.Data["sample_alpha"]["low_fraction_reads_in_cells"]; v.String() != "FAIL" {
		t.Errorf("alarm status = %v", v)
	}
	if h, _ := table.Headers.Get("low_fraction_reads_in_cells"); h.BgCols["FAIL"] != "#f06807" {
		t.Errorf("alarm header = %+v", h)
	}

	if _, found := anchors["cellranger-count-stats"]; !found {
		t.Error("summary stats section missing")
	}

	knee, found := anchors["cellranger-count-bcrank-plot"]
	if !found {
		t.Fatal("barcode rank section missing")
	}
	line := knee.Plot.(*plot.Line)
	if !line.Config.XLog || !line.Config.YLog {
		t.Error("knee plot must be log-log")
	}
	if line.Config.XLab != "Barcodes" || line.Config.YLab != "UMI counts" {
		t.Errorf("knee plot axes = %q, %q", line.Config.XLab, line.Config.YLab)
	}
	series := line.Data["sample_alpha"]
	want := plot.Series{{X: 1, Y: 1000}, {X: 2, Y: 100}, {X: 3, Y: 10}}
	if len(series) != len(want) {
		t.Fatalf("knee series = %v", series)
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("knee point %d = %v, want %v", i, series[i], want[i])
		}
	}
	if knee.Helptext != "The plot shows filtered barcodes." {
		t.Errorf("knee helptext = %q", knee.Helptext)
	}

	genes, found := anchors["cellranger-count-genes-plot"]
	if !found {
		t.Fatal("median genes section missing")
	}
	if cfg := genes.Plot.(*plot.Line).Config; cfg.XLog || cfg.YLog {
		t.Error("median genes plot must use linear axes")
	}
}

func TestParseCountIsIdempotent(t *testing.T) {
	first, err := NewCount(multiqc.DefaultConfig()).Parse(
		[]multiqc.InputFile{webSummaryInput("sample_alpha", "100")})
	if err != nil {
		t.Fatal(err)
	}

	second, err := NewCount(multiqc.DefaultConfig()).Parse(
		[]multiqc.InputFile{webSummaryInput("sample_alpha", "100")})
	if err != nil {
		t.Fatal(err)
	}

	a, b := first.DataFile.Data["sample_alpha"], second.DataFile.Data["sample_alpha"]
	if len(a) != len(b) {
		t.Fatalf("record sizes differ: %d vs %d", len(a), len(b))
	}
	for k, v := range a {
		if b[k] != v {
			t.Errorf("re-parsing changed %q: %v vs %v", k, v, b[k])
		}
	}
}

func TestParseCountDuplicateSample(t *testing.T) {
	m := NewCount(multiqc.DefaultConfig())

	out, err := m.Parse([]multiqc.InputFile{
		webSummaryInput("sample_alpha", "100"),
		webSummaryInput("sample_alpha", "200"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(out.DataFile.Data) != 1 {
		t.Fatalf("aggregate has %d records, want exactly 1", len(out.DataFile.Data))
	}
	if v := out.DataFile.Data["sample_alpha"]["reads"]; v.Float() != 200 {
		t.Errorf("later file must win, reads = %v", v)
	}
}

func TestParseCountNoData(t *testing.T) {
	if _, err := NewCount(multiqc.DefaultConfig()).Parse(nil); !errors.Is(err, multiqc.ErrNoData) {
		t.Fatalf("zero input files must signal no data, got %v", err)
	}
}

func TestParseCountMissingSampleID(t *testing.T) {
	input := multiqc.InputFile{
		Path: "broken/web_summary.html",
		Reader: strings.NewReader(
			`<script>const data = {"summary": {"sample": {"id": ""}}}</script>`),
	}

	if _, err := NewCount(multiqc.DefaultConfig()).Parse([]multiqc.InputFile{input}); err == nil {
		t.Fatal("missing sample id must be fatal")
	}
}

func TestParseWebSummaryNoDataLine(t *testing.T) {
	if _, err := parseWebSummary(strings.NewReader("<html><body>plain page</body></html>")); err == nil {
		t.Fatal("report without a const data assignment must fail")
	}
}
