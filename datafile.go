package multiqc

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/carbocation/pfx"
)

// WriteDataFile writes one module's aggregated table in the generic
// tab-delimited format: a Sample column followed by one column per metric
// key, sorted for stable output. Missing cells are left empty.
func WriteDataFile(w io.Writer, df DataFile) error {
	keySet := make(map[string]struct{})
	for _, rec := range df.Data {
		for key := range rec {
			keySet[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(append([]string{"Sample"}, keys...)); err != nil {
		return pfx.Err(err)
	}

	for _, sample := range df.Data.SampleNames() {
		rec := df.Data[sample]
		row := make([]string, 0, len(keys)+1)
		row = append(row, sample)

		for _, key := range keys {
			if v, found := rec[key]; found {
				row = append(row, v.String())
			} else {
				row = append(row, "")
			}
		}

		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()

	return pfx.Err(cw.Error())
}

// WriteDataFileTo creates <dir>/<name>.txt and writes the aggregated
// table into it.
func WriteDataFileTo(dir string, df DataFile) error {
	f, err := os.Create(filepath.Join(dir, df.Name+".txt"))
	if err != nil {
		return pfx.Err(err)
	}

	if err := WriteDataFile(f, df); err != nil {
		f.Close()
		return err
	}

	return pfx.Err(f.Close())
}
