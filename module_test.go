package multiqc

import (
	"testing"

	"github.com/scwatts/MultiQC/plot"
	"github.com/scwatts/MultiQC/report"
)

func TestOutputValidate(t *testing.T) {
	headers := report.NewHeaderRegistry()
	headers.Register("uniq", report.Header{Title: "Unique reads"})

	out := &Output{
		GeneralStats:        report.Aggregate{"sample1": report.Record{"uniq": report.Number(1)}},
		GeneralStatsHeaders: headers,
	}

	if err := out.Validate(); err != nil {
		t.Fatal(err)
	}

	out.GeneralStats["sample1"]["orphan"] = report.Number(2)
	if err := out.Validate(); err == nil {
		t.Error("metric key without a registered header must fail validation")
	}
}

func TestOutputValidateSections(t *testing.T) {
	out := &Output{
		GeneralStatsHeaders: report.NewHeaderRegistry(),
		Sections: []Section{{
			Anchor: "humid",
			Plot: &plot.Table{
				Data:    report.Aggregate{"sample1": report.Record{"total": report.Number(1)}},
				Headers: report.NewHeaderRegistry(),
			},
		}},
	}

	if err := out.Validate(); err == nil {
		t.Error("table section with unregistered columns must fail validation")
	}
}
