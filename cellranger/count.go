package cellranger

import (
	"errors"
	"fmt"
	"log"

	"github.com/scwatts/MultiQC"
	"github.com/scwatts/MultiQC/plot"
	"github.com/scwatts/MultiQC/report"
)

const alarmFailColour = "#f06807"

const (
	plotBC    = "bc"
	plotGenes = "genes"
)

// countPlotConf is the per-chart configuration extracted from the last
// parsed report; the axis titles are identical across reports of one run.
type countPlotConf struct {
	config      plot.Config
	description string
	helptext    string
}

// Count aggregates Cell Ranger count web summaries across samples.
type Count struct {
	cfg multiqc.Config

	data     report.Aggregate
	general  report.Aggregate
	warnings report.Aggregate

	dataHeaders    *report.HeaderRegistry
	generalHeaders *report.HeaderRegistry
	warningHeaders *report.HeaderRegistry

	plotConf map[string]countPlotConf
	plotData map[string]map[string]plot.Series
	sources  map[string]string
}

func NewCount(cfg multiqc.Config) *Count {
	return &Count{
		cfg:            cfg,
		data:           make(report.Aggregate),
		general:        make(report.Aggregate),
		warnings:       make(report.Aggregate),
		dataHeaders:    report.NewHeaderRegistry(),
		generalHeaders: report.NewHeaderRegistry(),
		warningHeaders: report.NewHeaderRegistry(),
		plotConf:       make(map[string]countPlotConf),
		plotData: map[string]map[string]plot.Series{
			plotBC:    make(map[string]plot.Series),
			plotGenes: make(map[string]plot.Series),
		},
		sources: make(map[string]string),
	}
}

func (m *Count) Name() string {
	return "Cell Ranger Count"
}

func (m *Count) Anchor() string {
	return "cellranger-count"
}

// Parse consumes every web summary, then assembles the general stats
// columns, the full metrics table, the warnings table and the two line
// plots. It returns multiqc.ErrNoData when no sample survives.
func (m *Count) Parse(files []multiqc.InputFile) (*multiqc.Output, error) {
	for _, f := range files {
		if err := m.parseReport(f); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
	}

	m.data = m.cfg.FilterSamples(m.data)
	m.general = m.cfg.FilterSamples(m.general)
	m.warnings = m.cfg.FilterSamples(m.warnings)
	for k := range m.plotData {
		m.plotData[k] = m.filterSeries(m.plotData[k])
	}

	m.generalHeaders.Set("COUNT reads", report.Header{
		Title:       fmt.Sprintf("COUNT %s Reads", m.cfg.ReadCountPrefix),
		Description: fmt.Sprintf("Number of reads (%s)", m.cfg.ReadCountDesc),
		Modify:      m.cfg.ReadCountModify(),
	})
	m.generalHeaders.SetHidden(hiddenGeneralCols...)

	m.dataHeaders.Set("reads", report.Header{
		Title:       fmt.Sprintf("%s Reads", m.cfg.ReadCountPrefix),
		Description: fmt.Sprintf("Number of reads (%s)", m.cfg.ReadCountDesc),
		Modify:      m.cfg.ReadCountModify(),
	})
	m.dataHeaders.SetHidden(hiddenTableCols...)

	if len(m.data) == 0 {
		return nil, multiqc.ErrNoData
	}

	out := &multiqc.Output{
		GeneralStats:        m.general,
		GeneralStatsHeaders: m.generalHeaders,
		DataFile:            multiqc.DataFile{Name: "multiqc_cellranger_count", Data: m.data},
		Sources:             m.sources,
	}

	if len(m.warnings) > 0 {
		out.Sections = append(out.Sections, multiqc.Section{
			Name:        "Count - Warnings",
			Anchor:      "cellranger-count-warnings",
			Description: "Warnings encountered during the analysis",
			Plot: &plot.Table{
				Config:  plot.Config{Namespace: "Cellranger Count"},
				Data:    m.warnings,
				Headers: m.warningHeaders,
			},
		})
	}

	out.Sections = append(out.Sections, multiqc.Section{
		Name:        "Count - Summary stats",
		Anchor:      "cellranger-count-stats",
		Description: "Summary QC metrics from Cell Ranger count",
		Plot: &plot.Table{
			Config:  plot.Config{Namespace: "Cellranger Count"},
			Data:    m.data,
			Headers: m.dataHeaders,
		},
	})

	for _, section := range []struct {
		key    string
		name   string
		anchor string
	}{
		{plotBC, "Count - BC rank plot", "cellranger-count-bcrank-plot"},
		{plotGenes, "Count - Median genes", "cellranger-count-genes-plot"},
	} {
		conf, found := m.plotConf[section.key]
		if !found || len(m.plotData[section.key]) == 0 {
			continue
		}

		out.Sections = append(out.Sections, multiqc.Section{
			Name:        section.name,
			Anchor:      section.anchor,
			Description: conf.description,
			Helptext:    conf.helptext,
			Plot: &plot.Line{
				Config: conf.config,
				Data:   m.plotData[section.key],
			},
		})
	}

	log.Printf("Found %d Cell Ranger count reports\n", len(m.general))

	return out, nil
}

func (m *Count) parseReport(f multiqc.InputFile) error {
	summary, err := parseWebSummary(f.Reader)
	if err != nil {
		return err
	}

	sName := summary.Sample.ID
	if sName == "" {
		return errors.New("web summary is missing the sample id")
	}

	general := make(report.Record)
	general.Merge(report.BuildRecord(
		rowsOf(summary.SummaryTab.Cells.Table), generalCellFields, "COUNT", m.generalHeaders))
	general.Merge(report.BuildRecord(
		rowsOf(summary.SummaryTab.Sequencing.Table), generalSequencingFields, "COUNT", m.generalHeaders))

	var tableRows []report.Row
	tableRows = append(tableRows, rowsOf(summary.SummaryTab.Sequencing.Table)...)
	tableRows = append(tableRows, rowsOf(summary.SummaryTab.Cells.Table)...)
	tableRows = append(tableRows, rowsOf(summary.SummaryTab.Mapping.Table)...)
	data := report.BuildRecord(tableRows, countTableFields, "", m.dataHeaders)

	if len(data) == 0 {
		// Nothing recognizable in this report version; skip the file.
		return nil
	}

	m.data.Add(f.Path, sName, data)
	m.general.Add(f.Path, sName, general)
	m.sources[f.Path] = sName

	warnings := make(report.Record)
	for _, al := range summary.Alarms.Alarms {
		warnings[al.ID] = report.Text("FAIL")
		m.warningHeaders.Register(al.ID, report.Header{
			Title:       al.ID,
			Description: al.Title,
			BgCols:      map[string]string{"FAIL": alarmFailColour},
		})
	}
	if len(warnings) > 0 {
		m.warnings[sName] = warnings
	}

	m.recordPlots(summary, sName)

	return nil
}

func (m *Count) recordPlots(summary *summaryData, sName string) {
	knee := summary.SummaryTab.Cells.BarcodeKneePlot
	m.plotConf[plotBC] = countPlotConf{
		config: plot.Config{
			ID:    "mqc_cellranger_count_bc_knee",
			Title: "Cellranger count: " + knee.Layout.Title,
			XLab:  knee.Layout.XAxis.Title,
			YLab:  knee.Layout.YAxis.Title,
			XLog:  true,
			YLog:  true,
		},
		description: "Barcode knee plot",
		helptext:    summary.SummaryTab.Cells.Help.firstLine("Barcode Rank Plot"),
	}
	if s := firstTraceSeries(knee); len(s) > 0 {
		m.plotData[plotBC][sName] = s
	}

	gene := summary.AnalysisTab.MedianGenePlot
	m.plotConf[plotGenes] = countPlotConf{
		config: plot.Config{
			ID:    "mqc_cellranger_count_genesXcell",
			Title: "Cellranger count: " + gene.Help.Title,
			XLab:  gene.Plot.Layout.XAxis.Title,
			YLab:  gene.Plot.Layout.YAxis.Title,
		},
		description: "Median gene counts per cell",
		helptext:    gene.Help.HelpText,
	}
	if s := firstTraceSeries(gene.Plot); len(s) > 0 {
		m.plotData[plotGenes][sName] = s
	}
}

func (m *Count) filterSeries(data map[string]plot.Series) map[string]plot.Series {
	out := make(map[string]plot.Series, len(data))

	for name, s := range data {
		kept, keep := m.cfg.KeepSample(name)
		if !keep {
			continue
		}
		out[kept] = s
	}

	return out
}

func firstTraceSeries(fig plotlyFigure) plot.Series {
	if len(fig.Data) == 0 {
		return nil
	}

	return plot.ReshapeXY(fig.Data[0].X, fig.Data[0].Y)
}

func rowsOf(t metricTable) []report.Row {
	rows := make([]report.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, report.Row{Label: r.Label, Value: r.Value})
	}

	return rows
}
