package cellranger

import "github.com/scwatts/MultiQC/report"

// Fixed rename tables mapping the labels Cell Ranger prints in its
// summary tables to the short metric keys used in report columns.
// Labels missing from a given report version are simply not extracted.

var generalCellFields = []report.FieldMapping{
	{Label: "Estimated Number of Cells", Key: "estimated cells"},
	{Label: "Mean Reads per Cell", Key: "avg reads/cell"},
	{Label: "Fraction Reads in Cells", Key: "reads in cells"},
}

var generalSequencingFields = []report.FieldMapping{
	{Label: "Number of Reads", Key: "reads"},
	{Label: "Valid Barcodes", Key: "valid bc"},
	{Label: "Q30 Bases in Barcode", Key: "Q30 bc"},
	{Label: "Q30 Bases in UMI", Key: "Q30 UMI"},
	{Label: "Q30 Bases in RNA Read", Key: "Q30 read"},
}

var countTableFields = []report.FieldMapping{
	{Label: "Number of Reads", Key: "reads"},
	{Label: "Estimated Number of Cells", Key: "estimated cells"},
	{Label: "Mean Reads per Cell", Key: "avg reads/cell"},
	{Label: "Total Genes Detected", Key: "genes detected"},
	{Label: "Median Genes per Cell", Key: "median genes/cell"},
	{Label: "Fraction Reads in Cells", Key: "reads in cells"},
	{Label: "Valid Barcodes", Key: "valid bc"},
	{Label: "Valid UMIs", Key: "valid umi"},
	{Label: "Median UMI Counts per Cell", Key: "median umi/cell"},
	{Label: "Sequencing Saturation", Key: "saturation"},
	{Label: "Q30 Bases in Barcode", Key: "Q30 bc"},
	{Label: "Q30 Bases in UMI", Key: "Q30 UMI"},
	{Label: "Q30 Bases in RNA Read", Key: "Q30 read"},
	{Label: "Reads Mapped to Genome", Key: "reads mapped"},
	{Label: "Reads Mapped Confidently to Genome", Key: "confident reads"},
	{Label: "Reads Mapped Confidently to Transcriptome", Key: "confident transcriptome"},
	{Label: "Reads Mapped Confidently to Exonic Regions", Key: "confident exonic"},
	{Label: "Reads Mapped Confidently to Intronic Regions", Key: "confident intronic"},
	{Label: "Reads Mapped Confidently to Intergenic Regions", Key: "confident intergenic"},
	{Label: "Reads Mapped Antisense to Gene", Key: "reads antisense"},
}

// Columns hidden by default to keep the tables readable; the host can
// still toggle them on.
var hiddenGeneralCols = []string{
	"COUNT Q30 bc",
	"COUNT Q30 UMI",
	"COUNT Q30 read",
}

var hiddenTableCols = []string{
	"Q30 bc",
	"Q30 UMI",
	"Q30 read",
	"confident transcriptome",
	"confident intronic",
	"confident intergenic",
	"reads antisense",
	"saturation",
}
