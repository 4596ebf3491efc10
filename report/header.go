package report

// Header holds the display metadata for one table column. Modify, when
// set, rescales numeric values before rendering (e.g. raw read counts to
// millions of reads).
type Header struct {
	Title         string
	Description   string
	Namespace     string
	Suffix        string
	DecimalPlaces int
	Hidden        bool
	Colour        string
	BgCols        map[string]string
	Modify        func(float64) float64
}

// HeaderRegistry accumulates column metadata keyed by short metric name,
// preserving the order in which keys were first registered. It is passed
// explicitly into each parse call rather than living as hidden shared
// state.
type HeaderRegistry struct {
	keys    []string
	entries map[string]Header
}

func NewHeaderRegistry() *HeaderRegistry {
	return &HeaderRegistry{entries: make(map[string]Header)}
}

// Register adds a header for key if none exists yet. The first
// registration wins; use Set to override.
func (r *HeaderRegistry) Register(key string, h Header) bool {
	if _, exists := r.entries[key]; exists {
		return false
	}

	r.keys = append(r.keys, key)
	r.entries[key] = h

	return true
}

// Set stores a header for key unconditionally, keeping the key's original
// position when it was already registered.
func (r *HeaderRegistry) Set(key string, h Header) {
	if _, exists := r.entries[key]; !exists {
		r.keys = append(r.keys, key)
	}

	r.entries[key] = h
}

func (r *HeaderRegistry) Has(key string) bool {
	_, exists := r.entries[key]

	return exists
}

func (r *HeaderRegistry) Get(key string) (Header, bool) {
	h, exists := r.entries[key]

	return h, exists
}

// Keys returns the registered metric keys in first-seen order.
func (r *HeaderRegistry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)

	return out
}

func (r *HeaderRegistry) Len() int {
	return len(r.keys)
}

// SetHidden marks the named columns as hidden by default. Keys not yet
// registered are ignored.
func (r *HeaderRegistry) SetHidden(keys ...string) {
	for _, key := range keys {
		h, exists := r.entries[key]
		if !exists {
			continue
		}

		h.Hidden = true
		r.entries[key] = h
	}
}
