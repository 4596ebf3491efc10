package report

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a single table cell: either a number or free text. Vendor
// reports format numbers for display ("1,234,567", "86.5%"), so ParseValue
// strips thousands separators and a trailing percent sign before
// attempting numeric conversion. Anything that still fails to parse is
// kept verbatim as text.
type Value struct {
	num     float64
	text    string
	numeric bool
}

func Number(f float64) Value {
	return Value{num: f, numeric: true}
}

func Text(s string) Value {
	return Value{text: s}
}

func ParseValue(raw string) Value {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	cleaned = strings.TrimSuffix(cleaned, "%")

	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return Number(f)
	}

	return Text(strings.TrimSpace(raw))
}

func (v Value) IsNumber() bool {
	return v.numeric
}

// Float returns the numeric value, or 0 for text values.
func (v Value) Float() float64 {
	return v.num
}

func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}

	return v.text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return json.Marshal(v.num)
	}

	return json.Marshal(v.text)
}
