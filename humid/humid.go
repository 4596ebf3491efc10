// Package humid parses the stats files written by HUMID, the error
// tolerant UMI-aware FastQ deduplicator.
package humid

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/scwatts/MultiQC"
	"github.com/scwatts/MultiQC/plot"
	"github.com/scwatts/MultiQC/report"
)

// barFields is the stacking order of the read-fate bar plot; the three
// fields add up to the total number of reads.
var barFields = []string{"clusters", "duplicates", "filtered"}

// Humid aggregates HUMID stat files across samples.
type Humid struct {
	cfg     multiqc.Config
	data    report.Aggregate
	sources map[string]string
}

func New(cfg multiqc.Config) *Humid {
	return &Humid{
		cfg:     cfg,
		data:    make(report.Aggregate),
		sources: make(map[string]string),
	}
}

func (m *Humid) Name() string {
	return "HUMID"
}

func (m *Humid) Anchor() string {
	return "humid"
}

// Parse consumes every stats file. The log carries no sample name, so the
// directory the file was found in stands in for it (the filename is
// always stats.dat). Returns multiqc.ErrNoData when no sample survives
// filtering.
func (m *Humid) Parse(files []multiqc.InputFile) (*multiqc.Output, error) {
	for _, f := range files {
		rec, err := parseStatFile(f.Reader)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}

		m.data.Add(f.Path, f.Root, rec)
		m.sources[f.Path] = f.Root
	}

	m.data = m.cfg.FilterSamples(m.data)

	if len(m.data) == 0 {
		return nil, multiqc.ErrNoData
	}

	out := &multiqc.Output{
		DataFile: multiqc.DataFile{Name: "multiqc_humid", Data: m.data},
		Sources:  m.sources,
	}

	m.addGeneralStats(out)

	out.Sections = append(out.Sections, multiqc.Section{
		Name:   "HUMID",
		Anchor: "humid",
		Plot: &plot.Bar{
			Config: plot.Config{
				ID:        "humid_bargraph",
				Title:     "HUMID: read fates",
				Namespace: "HUMID",
			},
			Fields: barFields,
			Data:   m.data,
		},
	})

	log.Printf("Found %d reports\n", len(m.data))

	return out, nil
}

// addGeneralStats surfaces the number of unique reads (= clusters) in the
// cross-module general statistics columns.
func (m *Humid) addGeneralStats(out *multiqc.Output) {
	general := make(report.Aggregate, len(m.data))
	for sample, rec := range m.data {
		general[sample] = report.Record{"uniq": rec["clusters"]}
	}

	headers := report.NewHeaderRegistry()
	headers.Register("uniq", report.Header{
		Title:       "Unique reads",
		Description: "Number of unique reads after UMI deduplication",
	})

	out.GeneralStats = general
	out.GeneralStatsHeaders = headers
}

// parseStatFile reads `field: integer` lines and derives the read-fate
// breakdown.
func parseStatFile(r io.Reader) (report.Record, error) {
	counts := make(map[string]int)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		field, value, found := strings.Cut(line, ": ")
		if !found {
			return nil, fmt.Errorf("malformed stats line %q", line)
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, pfx.Err(err)
		}

		counts[field] = n
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	if err := deriveStats(counts); err != nil {
		return nil, err
	}

	rec := make(report.Record, len(counts))
	for field, n := range counts {
		rec[field] = report.Number(float64(n))
	}

	return rec, nil
}

// deriveStats computes the values HUMID leaves implicit and checks that
// the read fates account for every input read:
// total = clusters + duplicates + filtered.
func deriveStats(counts map[string]int) error {
	for _, field := range []string{"total", "usable", "clusters"} {
		if _, found := counts[field]; !found {
			return fmt.Errorf("stats file is missing the %q field", field)
		}
	}

	counts["filtered"] = counts["total"] - counts["usable"]
	if counts["filtered"] < 0 {
		return fmt.Errorf("more usable reads (%d) than total reads (%d)",
			counts["usable"], counts["total"])
	}

	counts["duplicates"] = counts["total"] - counts["clusters"] - counts["filtered"]

	if counts["duplicates"]+counts["clusters"]+counts["filtered"] != counts["total"] {
		return fmt.Errorf("read fates do not sum to the total: %d + %d + %d != %d",
			counts["clusters"], counts["duplicates"], counts["filtered"], counts["total"])
	}
	if counts["duplicates"] < 0 {
		return fmt.Errorf("more clusters (%d) than usable reads (%d)",
			counts["clusters"], counts["usable"])
	}

	return nil
}
