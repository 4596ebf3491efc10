// Package render draws static PNG snapshots of plot specs with go-chart.
// The host framework's interactive HTML rendering is out of scope here;
// these snapshots give pipelines something to archive alongside the
// aggregated data files.
package render

import (
	"errors"
	"io"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/scwatts/MultiQC/plot"
)

const (
	chartWidth  = 800
	chartHeight = 400
)

// Line renders a line plot with one series per sample, honoring the
// spec's log-scale flags.
func Line(spec *plot.Line, w io.Writer) error {
	if len(spec.Data) == 0 {
		return errors.New("line plot has no series")
	}

	samples := make([]string, 0, len(spec.Data))
	for name := range spec.Data {
		samples = append(samples, name)
	}
	sort.Strings(samples)

	series := make([]chart.Series, 0, len(samples))
	for _, name := range samples {
		xs, ys := spec.Data[name].XY()
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
		})
	}

	xAxis := chart.XAxis{Name: spec.Config.XLab}
	if spec.Config.XLog {
		xAxis.Range = &chart.LogarithmicRange{}
	}

	yAxis := chart.YAxis{Name: spec.Config.YLab}
	if spec.Config.YLog {
		yAxis.Range = &chart.LogarithmicRange{}
	}

	graph := chart.Chart{
		Title:  spec.Config.Title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  xAxis,
		YAxis:  yAxis,
		Series: series,
	}

	return pfx.Err(graph.Render(chart.PNG, w))
}

// Bar renders a stacked bar plot: one bar per sample, one segment per
// field in stacking order. Samples with no numeric values are skipped.
func Bar(spec *plot.Bar, w io.Writer) error {
	bars := make([]chart.StackedBar, 0, len(spec.Data))

	for _, sample := range spec.Data.SampleNames() {
		rec := spec.Data[sample]

		values := make([]chart.Value, 0, len(spec.Fields))
		for _, field := range spec.Fields {
			v, found := rec[field]
			if !found || !v.IsNumber() {
				continue
			}

			values = append(values, chart.Value{Label: field, Value: v.Float()})
		}

		if len(values) == 0 {
			continue
		}

		bars = append(bars, chart.StackedBar{Name: sample, Values: values})
	}

	if len(bars) == 0 {
		return errors.New("bar plot has no bars")
	}

	graph := chart.StackedBarChart{
		Title:  spec.Config.Title,
		Width:  chartWidth,
		Height: chartHeight,
		Bars:   bars,
	}

	return pfx.Err(graph.Render(chart.PNG, w))
}
