package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// isoLayout is the layout produced by JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a point in time that tolerates the loose date encodings found
// in client storage. Anything that cannot be parsed decodes as the zero
// value, which sorts as the earliest possible time.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(isoLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = ParseTimestamp(string(bytes.TrimSpace(b)))
	return nil
}

// ParseTimestamp decodes a raw JSON value (quoted string, number or null).
func ParseTimestamp(raw string) Timestamp {
	if raw == "" || raw == "null" {
		return Timestamp{}
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return Timestamp{}
		}
		return parseString(s)
	}
	// epoch milliseconds, as produced by Date.now()
	ms, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Timestamp{}
	}
	return Timestamp{Time: time.UnixMilli(int64(ms)).UTC()}
}

var stringLayouts = []string{
	time.RFC3339Nano,
	isoLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseString(s string) Timestamp {
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range stringLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: v.UTC()}
		}
	}
	return Timestamp{}
}
