// Package normalize flattens warehouse driver values into JSON primitives and
// reconciles the date shapes the dashboards receive.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// MaxSafeInteger is the largest integer a JSON consumer can hold exactly in a
// float64. Integers beyond ±MaxSafeInteger are emitted as strings.
const MaxSafeInteger = 1<<53 - 1

// Rows normalizes every row in place order and returns a new slice.
func Rows(rows []map[string]any) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = Row(r)
	}
	return out
}

// Row returns a copy of r with every value passed through Value.
func Row(r map[string]any) map[string]any {
	if r == nil {
		return nil
	}
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = Value(v)
	}
	return out
}

// Value converts one driver value into a string, number, bool or nil.
// Slices and string-keyed maps are normalized recursively. Applying Value to
// its own output returns the same value.
func Value(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool:
		return x
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return integer(int64(x))
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return integer(x)
	case uint:
		return unsigned(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return unsigned(x)
	case []byte:
		return string(x)
	case json.Number:
		return jsonNumber(x)
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return FormatTime(*x)
	case *big.Int:
		if x == nil {
			return nil
		}
		return bigInteger(x)
	case pgtype.Numeric:
		return numeric(x)
	case pgtype.Date:
		if !x.Valid {
			return nil
		}
		if x.InfinityModifier != pgtype.Finite {
			return x.InfinityModifier.String()
		}
		return x.Time.Format(time.DateOnly)
	case pgtype.Timestamp:
		if !x.Valid {
			return nil
		}
		if x.InfinityModifier != pgtype.Finite {
			return x.InfinityModifier.String()
		}
		return FormatTime(x.Time)
	case pgtype.Timestamptz:
		if !x.Valid {
			return nil
		}
		if x.InfinityModifier != pgtype.Finite {
			return x.InfinityModifier.String()
		}
		return FormatTime(x.Time)
	case pgtype.Text:
		if !x.Valid {
			return nil
		}
		return x.String
	case pgtype.Int8:
		if !x.Valid {
			return nil
		}
		return integer(x.Int64)
	case pgtype.Float8:
		if !x.Valid {
			return nil
		}
		return finite(x.Float64)
	case pgtype.Bool:
		if !x.Valid {
			return nil
		}
		return x.Bool
	case map[string]any:
		return Row(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Value(item)
		}
		return out
	}
	return reflected(reflect.ValueOf(v))
}

// FormatTime renders a warehouse temporal value. Values at exact midnight are
// calendar dates and render as 2006-01-02; everything else is RFC 3339.
func FormatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339Nano)
}

func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func integer(i int64) any {
	if i > MaxSafeInteger || i < -MaxSafeInteger {
		return strconv.FormatInt(i, 10)
	}
	return i
}

func unsigned(u uint64) any {
	if u > MaxSafeInteger {
		return strconv.FormatUint(u, 10)
	}
	return int64(u)
}

func bigInteger(b *big.Int) any {
	if b.IsInt64() {
		return integer(b.Int64())
	}
	return b.String()
}

func jsonNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return integer(i)
	}
	if f, err := n.Float64(); err == nil {
		return finite(f)
	}
	return n.String()
}

// numeric keeps integers exact and only lets fractional values become floats
// when the float prints back to the same decimal.
func numeric(n pgtype.Numeric) any {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil
	}
	s := decimalString(n)
	if !strings.Contains(s, ".") {
		b, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return s
		}
		return bigInteger(b)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	return s
}

func decimalString(n pgtype.Numeric) string {
	unscaled := n.Int
	if unscaled == nil {
		unscaled = new(big.Int)
	}
	neg := unscaled.Sign() < 0
	digits := new(big.Int).Abs(unscaled).String()

	var s string
	if n.Exp >= 0 {
		s = digits
		if digits != "0" {
			s += strings.Repeat("0", int(n.Exp))
		}
	} else {
		scale := int(-n.Exp)
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		intPart := digits[:len(digits)-scale]
		frac := strings.TrimRight(digits[len(digits)-scale:], "0")
		s = intPart
		if frac != "" {
			s += "." + frac
		}
	}
	if neg && s != "0" {
		s = "-" + s
	}
	return s
}

// reflected handles typed slices, typed maps and pointers the driver may
// hand back (for example []string for text[] columns).
func reflected(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Value(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Value(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Value(iter.Value().Interface())
		}
		return out
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return integer(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return unsigned(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float())
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(rv.Interface())
}
