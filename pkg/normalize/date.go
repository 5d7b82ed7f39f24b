package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateKind tags the shape a date-like field arrived in.
type DateKind int

const (
	DatePlain   DateKind = iota + 1 // "202401", "2024-01-15", RFC 3339 ...
	DateWrapped                     // {"value": "2024-01-15"}
	DateEpoch                       // {"_seconds": 1700000000, "_nanoseconds": 0}
)

// DateValue is a date-like field in one of the accepted shapes.
type DateValue struct {
	Kind    DateKind
	Text    string
	Seconds int64
	Nanos   int64
}

// ErrUnrecognizedDate is returned for values in none of the accepted shapes.
var ErrUnrecognizedDate = errors.New("unrecognized date value")

var plainLayouts = []string{
	"200601",
	"20060102",
	"2006-01",
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// ParseDateValue classifies v without guessing: strings are plain, maps need a
// string "value" or a numeric "_seconds" key. Anything else is rejected.
func ParseDateValue(v any) (DateValue, error) {
	switch x := v.(type) {
	case string:
		return DateValue{Kind: DatePlain, Text: x}, nil
	case time.Time:
		return DateValue{Kind: DateEpoch, Seconds: x.Unix(), Nanos: int64(x.Nanosecond())}, nil
	case map[string]any:
		if inner, ok := x["value"]; ok {
			s, ok := inner.(string)
			if !ok {
				return DateValue{}, fmt.Errorf("%w: non-string wrapped value %T", ErrUnrecognizedDate, inner)
			}
			return DateValue{Kind: DateWrapped, Text: s}, nil
		}
		secRaw, ok := x["_seconds"]
		if !ok {
			secRaw, ok = x["seconds"]
		}
		if ok {
			sec, err := wholeNumber(secRaw)
			if err != nil {
				return DateValue{}, err
			}
			var nanos int64
			nanoRaw, ok := x["_nanoseconds"]
			if !ok {
				nanoRaw, ok = x["nanoseconds"]
			}
			if ok && nanoRaw != nil {
				if nanos, err = wholeNumber(nanoRaw); err != nil {
					return DateValue{}, err
				}
			}
			return DateValue{Kind: DateEpoch, Seconds: sec, Nanos: nanos}, nil
		}
	}
	return DateValue{}, fmt.Errorf("%w: %T", ErrUnrecognizedDate, v)
}

// Time resolves the value to a UTC instant.
func (d DateValue) Time() (time.Time, error) {
	switch d.Kind {
	case DatePlain, DateWrapped:
		return parsePlain(d.Text)
	case DateEpoch:
		return time.Unix(d.Seconds, d.Nanos).UTC(), nil
	}
	return time.Time{}, ErrUnrecognizedDate
}

// ToTime is ParseDateValue followed by Time.
func ToTime(v any) (time.Time, error) {
	d, err := ParseDateValue(v)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time()
}

func parsePlain(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range plainLayouts {
		if len(layout) != len(s) && layout != time.RFC3339Nano {
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, s)
}

func wholeNumber(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%w: fractional seconds field %v", ErrUnrecognizedDate, n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnrecognizedDate, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: seconds field of type %T", ErrUnrecognizedDate, v)
}
