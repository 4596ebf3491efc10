// Package plot holds the renderable visualization structures handed to
// the host reporting framework. Each spec is pure data with fixed
// configuration; the interactive rendering runtime belongs to the host.
package plot

import "github.com/scwatts/MultiQC/report"

// Spec is implemented by every plot configuration a module can emit.
type Spec interface {
	PlotType() string
}

// Config carries the fixed per-plot settings: identity, axis labels and
// log-scale flags.
type Config struct {
	ID        string
	Title     string
	Namespace string
	XLab      string
	YLab      string
	XLog      bool
	YLog      bool
}

// Line is a line graph with one series per sample.
type Line struct {
	Config Config
	Data   map[string]Series
}

func (*Line) PlotType() string { return "linegraph" }

// Bar is a stacked bar graph: one bar per sample, one segment per field,
// stacked in Fields order.
type Bar struct {
	Config Config
	Fields []string
	Data   report.Aggregate
}

func (*Bar) PlotType() string { return "bargraph" }

// Table renders an aggregate against its column header metadata.
type Table struct {
	Config  Config
	Data    report.Aggregate
	Headers *report.HeaderRegistry
}

func (*Table) PlotType() string { return "table" }
