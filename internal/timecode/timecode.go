package timecode

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Timestamp is a catalog timestamp as authored: absent, a bare number of
// seconds, or a loosely formatted clock string such as "1:02:03" or "0:45".
// The original representation is preserved so a load/save cycle does not
// rewrite entries nobody touched.
type Timestamp struct {
	raw     string
	seconds int
	isInt   bool
	present bool
}

// FromString builds a Timestamp from a raw string value.
func FromString(value string) Timestamp {
	return Timestamp{raw: value, present: true}
}

// FromSeconds builds a Timestamp from an integer seconds value.
func FromSeconds(seconds int) Timestamp {
	return Timestamp{seconds: seconds, isInt: true, present: true}
}

// IsZero reports whether the timestamp was absent from the source document.
func (t Timestamp) IsZero() bool {
	return !t.present
}

// String returns the raw textual form of the timestamp.
func (t Timestamp) String() string {
	if !t.present {
		return ""
	}
	if t.isInt {
		return strconv.Itoa(t.seconds)
	}
	return t.raw
}

// Seconds resolves the timestamp to a non-negative seconds offset.
//
// Absent values and anything malformed resolve to 0, which the pipeline
// treats as "not yet authored". This never fails.
func (t Timestamp) Seconds() int {
	if !t.present {
		return 0
	}
	if t.isInt {
		return t.seconds
	}
	s := strings.TrimSpace(t.raw)
	if isDigits(s) {
		n, _ := strconv.Atoi(s)
		return n
	}
	parts := strings.Split(s, ":")
	values := make([]int, len(parts))
	for i, part := range parts {
		if isDigits(part) {
			values[i], _ = strconv.Atoi(part)
		}
	}
	switch len(values) {
	case 3:
		return values[0]*3600 + values[1]*60 + values[2]
	case 2:
		return values[0]*60 + values[1]
	case 1:
		return values[0]
	}
	return 0
}

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = Timestamp{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = FromString(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = FromSeconds(n)
	return nil
}

// MarshalJSON writes the timestamp back in its original representation.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.present {
		return []byte("null"), nil
	}
	if t.isInt {
		return json.Marshal(t.seconds)
	}
	return json.Marshal(t.raw)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
