// Package multiqc glues vendor report parsing modules to a host
// reporting framework. The host discovers input files, hands them to
// each module, and renders the tables and plots the module emits; the
// packages in this repository only parse, aggregate and reshape.
package multiqc

import (
	"errors"
	"fmt"
	"io"

	"github.com/scwatts/MultiQC/plot"
	"github.com/scwatts/MultiQC/report"
)

// ErrNoData tells the host to skip a module entirely: none of its input
// files yielded a usable sample. Check with errors.Is.
var ErrNoData = errors.New("no usable data found")

// InputFile is one discovered report file. Discovery and globbing belong
// to the host; modules only consume the open handle.
type InputFile struct {
	// Path is the full path of the file, used in log messages and data
	// source tracking.
	Path string

	// Root is the directory the file was found in. Modules whose report
	// format carries no sample name (e.g. HUMID's stats.dat) fall back
	// to it.
	Root string

	Reader io.Reader
}

// Section is one report section: a named, anchored plot with optional
// prose around it.
type Section struct {
	Name        string
	Anchor      string
	Description string
	Helptext    string
	Plot        plot.Spec
}

// DataFile is the single aggregated table a module writes out per run.
type DataFile struct {
	Name string
	Data report.Aggregate
}

// Output is everything a module hands back to the host after parsing:
// general stats columns, report sections, the aggregated data file, and
// which file each sample came from.
type Output struct {
	GeneralStats        report.Aggregate
	GeneralStatsHeaders *report.HeaderRegistry
	Sections            []Section
	DataFile            DataFile
	Sources             map[string]string
}

// Module is one report parser. Parse consumes every discovered file,
// returning ErrNoData when no sample survives parsing and filtering.
type Module interface {
	Name() string
	Anchor() string
	Parse(files []InputFile) (*Output, error)
}

// Validate enforces the rendering invariant that every metric key
// referenced by a table has a registered column header.
func (o *Output) Validate() error {
	if err := checkKeys(o.GeneralStats, o.GeneralStatsHeaders); err != nil {
		return fmt.Errorf("general stats: %w", err)
	}

	for _, section := range o.Sections {
		table, isTable := section.Plot.(*plot.Table)
		if !isTable {
			continue
		}

		if err := checkKeys(table.Data, table.Headers); err != nil {
			return fmt.Errorf("section %s: %w", section.Anchor, err)
		}
	}

	return nil
}

func checkKeys(data report.Aggregate, headers *report.HeaderRegistry) error {
	if headers == nil {
		if len(data) > 0 {
			return errors.New("table data without a header registry")
		}
		return nil
	}

	for _, sample := range data.SampleNames() {
		for key := range data[sample] {
			if !headers.Has(key) {
				return fmt.Errorf("sample %s references unregistered column %q", sample, key)
			}
		}
	}

	return nil
}
