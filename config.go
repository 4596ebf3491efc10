package multiqc

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/scwatts/MultiQC/report"
)

// Config carries the run-wide settings shared by all modules. Zero values
// are usable; DefaultConfig fills in the conventional read-count scaling.
type Config struct {
	ConfigPath string `json:"-" yaml:"-"`

	// Read counts are stored raw and rescaled for display via header
	// Modify hooks.
	ReadCountMultiplier float64 `json:"read_count_multiplier" yaml:"read_count_multiplier"`
	ReadCountPrefix     string  `json:"read_count_prefix" yaml:"read_count_prefix"`
	ReadCountDesc       string  `json:"read_count_desc" yaml:"read_count_desc"`

	// SampleNamesIgnore holds glob patterns; matching samples are dropped
	// from every aggregate after parsing.
	SampleNamesIgnore []string `json:"sample_names_ignore" yaml:"sample_names_ignore"`

	// SampleNamesRenameFile points at a two-column tab-delimited file
	// (from, to) applied before the ignore patterns.
	SampleNamesRenameFile string `json:"sample_names_rename_file" yaml:"sample_names_rename_file"`

	SampleNamesRename map[string]string `json:"-" yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		ReadCountMultiplier: 0.000001,
		ReadCountPrefix:     "M",
		ReadCountDesc:       "millions",
	}
}

// ParseConfigFromPath loads a config from a YAML (.yaml/.yml) or JSON
// file, then resolves the sample rename table if one is referenced.
func ParseConfigFromPath(path string) (Config, error) {
	out := DefaultConfig()
	out.ConfigPath = expandHomeDir(path)

	f, err := os.Open(out.ConfigPath)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(out.ConfigPath)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(&out); err != nil {
			return out, pfx.Err(err)
		}
	default:
		if err := json.NewDecoder(f).Decode(&out); err != nil {
			if e, ok := err.(*json.SyntaxError); ok {
				log.Printf("syntax error at byte offset %d", e.Offset)
			}
			return out, pfx.Err(err)
		}
	}

	out.SampleNamesRenameFile = expandHomeDir(out.SampleNamesRenameFile)
	if out.SampleNamesRenameFile != "" {
		out.SampleNamesRename, err = importSampleRenames(out.SampleNamesRenameFile)
		if err != nil {
			return out, pfx.Err(err)
		}
	}

	return out, nil
}

// FilterSamples applies the configured renames and ignore patterns to a
// module's aggregate.
func (c Config) FilterSamples(a report.Aggregate) report.Aggregate {
	return a.Rename(c.SampleNamesRename).Ignore(c.SampleNamesIgnore)
}

// KeepSample applies the rename table to one sample name and reports
// whether the (renamed) sample survives the ignore patterns. Modules use
// it to filter keyed collections other than report.Aggregate.
func (c Config) KeepSample(name string) (string, bool) {
	if renamed, found := c.SampleNamesRename[name]; found {
		name = renamed
	}

	for _, pattern := range c.SampleNamesIgnore {
		if matched, err := path.Match(pattern, name); err == nil && matched {
			return name, false
		}
	}

	return name, true
}

// ReadCountModify returns the Modify hook for read-count columns.
func (c Config) ReadCountModify() func(float64) float64 {
	multiplier := c.ReadCountMultiplier

	return func(x float64) float64 { return x * multiplier }
}

type sampleRename struct {
	From string `csv:"from"`
	To   string `csv:"to"`
}

func importSampleRenames(path string) (map[string]string, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true
		return r
	})

	records := []*sampleRename{}
	if err := gocsv.UnmarshalBytes(fileBytes, &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]string, len(records))
	for _, record := range records {
		out[record.From] = record.To
	}

	return out, nil
}

// Via https://stackoverflow.com/a/17617721/199475
func expandHomeDir(path string) string {

	usr, err := user.Current()
	if err != nil {
		return path
	}

	dir := usr.HomeDir

	if path == "~" {
		// In case of "~", which won't be caught by the "else if"
		path = dir
	} else if strings.HasPrefix(path, "~/") {
		// Use strings.HasPrefix so we don't match paths like
		// "/something/~/something/"
		path = filepath.Join(dir, path[2:])
	}

	return path
}
