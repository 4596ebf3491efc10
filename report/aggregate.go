package report

import (
	"log"
	"path"
	"sort"
)

// Aggregate collects one Record per sample name across all parsed files
// of a module.
type Aggregate map[string]Record

// Add stores rec under the given sample name. Sample names are unique
// within one run; a later file with the same name overwrites the earlier
// record with a logged notice rather than an error.
func (a Aggregate) Add(source, sample string, rec Record) {
	if _, dup := a[sample]; dup {
		log.Printf("Duplicate sample name found in %s! Overwriting: %s\n", source, sample)
	}

	a[sample] = rec
}

// SampleNames returns the sample names in sorted order.
func (a Aggregate) SampleNames() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Ignore returns a copy of the aggregate without samples whose name
// matches any of the glob patterns.
func (a Aggregate) Ignore(patterns []string) Aggregate {
	if len(patterns) == 0 {
		return a
	}

	out := make(Aggregate, len(a))

	for name, rec := range a {
		if matchesAny(name, patterns) {
			continue
		}
		out[name] = rec
	}

	return out
}

// Rename returns a copy of the aggregate with sample names replaced per
// the rename table. A rename that collides with an existing name
// overwrites it, with the same logged notice as Add.
func (a Aggregate) Rename(names map[string]string) Aggregate {
	if len(names) == 0 {
		return a
	}

	out := make(Aggregate, len(a))

	for _, name := range a.SampleNames() {
		renamed, found := names[name]
		if !found {
			renamed = name
		}
		out.Add("sample rename table", renamed, a[name])
	}

	return out
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := path.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	return false
}
