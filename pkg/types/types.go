package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Nullable is implemented by every value that can be absent in a catalog cell.
type Nullable interface {
	IsNil() bool
}

// NullableString holds a catalog string that may be missing.
// An empty CSV cell is treated as missing.
type NullableString struct {
	value string
	valid bool
}

func NewNullableString(s string) NullableString {
	return NullableString{value: s, valid: true}
}

func NullString() NullableString {
	return NullableString{}
}

// ParseNullableString maps an empty cell to null and keeps everything else verbatim.
func ParseNullableString(s string) NullableString {
	if s == "" {
		return NullableString{}
	}
	return NewNullableString(s)
}

func (n NullableString) IsNil() bool {
	return !n.valid
}

func (n NullableString) Get() (string, bool) {
	return n.value, n.valid
}

// String returns the value, or "" when null.
func (n NullableString) String() string {
	return n.value
}

func (n NullableString) Equals(s string) bool {
	return n.valid && n.value == s
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// NullableInt is the nullable integer used for priorities and observation counts.
type NullableInt struct {
	value int64
	valid bool
}

func NewNullableInt(v int64) NullableInt {
	return NullableInt{value: v, valid: true}
}

func NullInt() NullableInt {
	return NullableInt{}
}

// ParseNullableInt parses an integer cell. Empty cells are null. Integral
// floats such as "3.0" are accepted since some exports write counts that way.
func ParseNullableInt(s string) (NullableInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullableInt{}, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewNullableInt(v), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NullableInt{}, err
	}
	if math.IsNaN(f) {
		return NullableInt{}, nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return NullableInt{}, strconv.ErrSyntax
	}
	return NewNullableInt(int64(f)), nil
}

func (n NullableInt) IsNil() bool {
	return !n.valid
}

func (n NullableInt) Get() (int64, bool) {
	return n.value, n.valid
}

// GreaterThan is false for null.
func (n NullableInt) GreaterThan(v int64) bool {
	return n.valid && n.value > v
}

// String formats the value for CSV output; null is "".
func (n NullableInt) String() string {
	if !n.valid {
		return ""
	}
	return strconv.FormatInt(n.value, 10)
}

func (n NullableInt) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(n.value, 10)), nil
}

// NullableFloat holds magnitudes, periods, depths and epochs.
type NullableFloat struct {
	value float64
	valid bool
}

func NewNullableFloat(v float64) NullableFloat {
	return NullableFloat{value: v, valid: true}
}

func NullFloat() NullableFloat {
	return NullableFloat{}
}

// ParseNullableFloat treats "" and "nan" as null.
func ParseNullableFloat(s string) (NullableFloat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullableFloat{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NullableFloat{}, err
	}
	if math.IsNaN(f) {
		return NullableFloat{}, nil
	}
	return NewNullableFloat(f), nil
}

func (n NullableFloat) IsNil() bool {
	return !n.valid
}

func (n NullableFloat) Get() (float64, bool) {
	return n.value, n.valid
}

// Sub returns n - v, keeping null as null.
func (n NullableFloat) Sub(v float64) NullableFloat {
	if !n.valid {
		return n
	}
	return NewNullableFloat(n.value - v)
}

// String uses the shortest representation that round-trips.
func (n NullableFloat) String() string {
	if !n.valid {
		return ""
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

func (n NullableFloat) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

var (
	_ Nullable = NullableString{}
	_ Nullable = NullableInt{}
	_ Nullable = NullableFloat{}
)
