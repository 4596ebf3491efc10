package plot

import (
	"github.com/montanaflynn/stats"

	"github.com/scwatts/MultiQC/report"
)

const defaultDecimalPlaces = 2

// BeeswarmCategory is the per-column metadata of one beeswarm row.
type BeeswarmCategory struct {
	Namespace     string
	Title         string
	Description   string
	Min           float64
	Max           float64
	Suffix        string
	DecimalPlaces int
	BorderColour  string
}

// Beeswarm holds the parallel arrays the beeswarm renderer consumes:
// Datasets[i] are the plotted values for Categories[i], and Samples[i]
// names the sample behind each value.
type Beeswarm struct {
	Config     Config
	Samples    [][]string
	Datasets   [][]float64
	Categories []BeeswarmCategory
}

func (*Beeswarm) PlotType() string { return "beeswarm" }

// NewBeeswarm reshapes heterogeneous per-sample records into one beeswarm
// row per registered column. Samples missing a column, and non-numeric
// values, are left out of that row. Columns with no numeric values at all
// are dropped entirely. Header Modify hooks apply before the per-column
// min and max are computed.
func NewBeeswarm(data report.Aggregate, headers *report.HeaderRegistry, pc Config) *Beeswarm {
	bs := &Beeswarm{Config: pc}
	samples := data.SampleNames()

	for _, key := range headers.Keys() {
		h, _ := headers.Get(key)

		var vals []float64
		var names []string

		for _, sample := range samples {
			v, found := data[sample][key]
			if !found || !v.IsNumber() {
				continue
			}

			f := v.Float()
			if h.Modify != nil {
				f = h.Modify(f)
			}

			vals = append(vals, f)
			names = append(names, sample)
		}

		if len(vals) == 0 {
			continue
		}

		min, err := stats.Min(vals)
		if err != nil {
			continue
		}
		max, err := stats.Max(vals)
		if err != nil {
			continue
		}

		colour := h.Colour
		if colour == "" {
			colour = "204,204,204"
		}

		decimals := h.DecimalPlaces
		if decimals == 0 {
			decimals = defaultDecimalPlaces
		}

		bs.Categories = append(bs.Categories, BeeswarmCategory{
			Namespace:     h.Namespace,
			Title:         h.Title,
			Description:   h.Description,
			Min:           min,
			Max:           max,
			Suffix:        h.Suffix,
			DecimalPlaces: decimals,
			BorderColour:  "rgb(" + colour + ")",
		})
		bs.Datasets = append(bs.Datasets, vals)
		bs.Samples = append(bs.Samples, names)
	}

	return bs
}
