package report

// Record maps short metric keys to parsed values. One record exists per
// sample per metric category (general stats vs full table).
type Record map[string]Value

// Merge copies every entry of other into r, overwriting on collision.
func (r Record) Merge(other Record) {
	for k, v := range other {
		r[k] = v
	}
}

// Row is one (label, value) pair from a source report table.
type Row struct {
	Label string
	Value string
}

// FieldMapping renames one source report label to its short metric key.
// Modules declare their mappings as fixed tables so the set of recognized
// labels is explicit.
type FieldMapping struct {
	Label string
	Key   string
}

// BuildRecord converts report rows into a Record using a fixed rename
// table, registering a header (titled with the source label) for each
// newly seen key. Labels absent from the rename table are skipped:
// report schemas vary across vendor tool versions, and unrecognized
// fields are not an error. A non-empty prefix namespaces both the key and
// the title.
func BuildRecord(rows []Row, fields []FieldMapping, prefix string, reg *HeaderRegistry) Record {
	byLabel := make(map[string]string, len(fields))
	for _, fm := range fields {
		byLabel[fm.Label] = fm.Key
	}

	rec := make(Record)

	for _, row := range rows {
		key, known := byLabel[row.Label]
		if !known {
			continue
		}

		title := row.Label
		if prefix != "" {
			key = prefix + " " + key
			title = prefix + " " + title
		}

		rec[key] = ParseValue(row.Value)
		reg.Register(key, Header{Title: title})
	}

	return rec
}
