package normalize

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string", "Coffee", "Coffee"},
		{"bool", true, true},
		{"small int64", int64(42), int64(42)},
		{"int32", int32(-7), int64(-7)},
		{"unsafe int64", int64(9007199254740993), "9007199254740993"},
		{"unsafe negative int64", int64(-9007199254740993), "-9007199254740993"},
		{"unsafe uint64", uint64(math.MaxUint64), "18446744073709551615"},
		{"float", 4.25, 4.25},
		{"NaN", math.NaN(), nil},
		{"Inf", math.Inf(1), nil},
		{"bytes", []byte("abc"), "abc"},
		{"midnight", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "2024-01-15"},
		{"timestamp", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), "2024-01-15T08:30:00Z"},
		{"big int", new(big.Int).Lsh(big.NewInt(1), 70), "1180591620717411303424"},
		{"pg date", pgtype.Date{Time: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC), Valid: true}, "2023-11-14"},
		{"pg null date", pgtype.Date{}, nil},
		{"pg numeric int", pgtype.Numeric{Int: big.NewInt(1234), Exp: 0, Valid: true}, int64(1234)},
		{"pg numeric scaled int", pgtype.Numeric{Int: big.NewInt(12), Exp: 3, Valid: true}, int64(12000)},
		{"pg numeric fraction", pgtype.Numeric{Int: big.NewInt(375), Exp: -2, Valid: true}, 3.75},
		{"pg numeric small fraction", pgtype.Numeric{Int: big.NewInt(-5), Exp: -3, Valid: true}, -0.005},
		{"pg numeric NaN", pgtype.Numeric{NaN: true, Valid: true}, nil},
		{"pg numeric huge", pgtype.Numeric{Int: big.NewInt(1), Exp: 20, Valid: true}, "100000000000000000000"},
		{"pg text", pgtype.Text{String: "open", Valid: true}, "open"},
		{"typed slice", []string{"a", "b"}, []any{"a", "b"}},
		{"nested map", map[string]any{"at": time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}, map[string]any{"at": "2024-02-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.in))
		})
	}
}

func TestRow_OutputIsPrimitive(t *testing.T) {
	row := Row(map[string]any{
		"business_count": int64(12),
		"avg_stars":      pgtype.Numeric{Int: big.NewInt(412), Exp: -2, Valid: true},
		"period":         pgtype.Date{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		"is_open":        true,
		"missing":        nil,
		"ratio":          math.NaN(),
	})

	for k, v := range row {
		switch v.(type) {
		case nil, string, bool, int64, float64:
		default:
			t.Errorf("column %s has non-primitive %T", k, v)
		}
	}
	assert.Equal(t, 4.12, row["avg_stars"])
	assert.Equal(t, "2024-03-01", row["period"])
	assert.Nil(t, row["ratio"])
}

func TestRow_Idempotent(t *testing.T) {
	in := map[string]any{
		"a": int64(1) << 60,
		"b": time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		"c": pgtype.Numeric{Int: big.NewInt(1999), Exp: -3, Valid: true},
		"d": []byte("x"),
		"e": []any{int32(1), "two"},
	}

	once := Row(in)
	twice := Row(once)

	assert.Equal(t, once, twice)
}

func TestRows_PreservesOrder(t *testing.T) {
	rows := Rows([]map[string]any{{"n": int64(1)}, {"n": int64(2)}, {"n": int64(3)}})

	assert.Equal(t, []map[string]any{{"n": int64(1)}, {"n": int64(2)}, {"n": int64(3)}}, rows)
}
