package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexString is a JSON scalar the catalog encodes inconsistently. It decodes strings, numbers and null
// alike. Empty strings and the literal "NULL" in any case decode to an absent value, as do booleans,
// objects and arrays.
type FlexString struct {
	value string
	valid bool
}

// NewFlexString returns a FlexString holding s, or an absent value when s is blank or "NULL".
func NewFlexString(s string) FlexString {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return FlexString{}
	}

	return FlexString{value: s, valid: true}
}

// FlexInt returns a FlexString holding the decimal representation of i.
func FlexInt(i int) FlexString {
	return FlexString{value: strconv.Itoa(i), valid: true}
}

func (f FlexString) Valid() bool {
	return f.valid
}

// String returns the value, or an empty string when absent.
func (f FlexString) String() string {
	return f.value
}

// Int parses the value as a base 10 integer.
func (f FlexString) Int() (int, bool) {
	if !f.valid {
		return 0, false
	}

	i, err := strconv.Atoi(f.value)
	if err != nil {
		return 0, false
	}

	return i, true
}

func (f *FlexString) UnmarshalJSON(b []byte) error {
	*f = FlexString{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch c := b[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = NewFlexString(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*f = fromNumber(n)
	}

	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}

	return json.Marshal(f.value)
}

func fromNumber(n json.Number) FlexString {
	if i, err := n.Int64(); err == nil {
		return FlexString{value: strconv.FormatInt(i, 10), valid: true}
	}

	v, err := n.Float64()
	if err != nil {
		return NewFlexString(n.String())
	}

	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return FlexString{value: strconv.FormatInt(int64(v), 10), valid: true}
	}

	return FlexString{value: strconv.FormatFloat(v, 'f', -1, 64), valid: true}
}
