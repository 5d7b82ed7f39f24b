package view

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/pkg/chart"
	"github.com/sangkips/insights/pkg/normalize"
	"go.uber.org/zap"
)

var weekdays = map[string]int{
	"monday": 0, "mon": 0,
	"tuesday": 1, "tue": 1, "tues": 1,
	"wednesday": 2, "wed": 2,
	"thursday": 3, "thu": 3, "thurs": 3,
	"friday": 4, "fri": 4,
	"saturday": 5, "sat": 5,
	"sunday": 6, "sun": 6,
}

// weekdayIndex orders a day_of_week value Monday first. Names and
// abbreviations match case-insensitively; numbers use Monday=0 .. Sunday=6.
func weekdayIndex(v any) (int, bool) {
	if s, ok := v.(string); ok {
		if i, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]; ok {
			return i, true
		}
	}
	f, ok := chart.Number(v)
	if !ok || f != math.Trunc(f) || f < 0 || f > 6 {
		return 0, false
	}
	return int(f), true
}

// SortByWeekday returns rows ordered Monday to Sunday by field. Rows with an
// unrecognized day keep their relative order after the known ones.
func SortByWeekday(rows []entity.Row, field string) []entity.Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b entity.Row) int {
		ia, oka := weekdayIndex(a[field])
		ib, okb := weekdayIndex(b[field])
		switch {
		case oka && okb:
			return ia - ib
		case oka:
			return -1
		case okb:
			return 1
		}
		return 0
	})
	return out
}

// SortChronologically returns rows ordered by the date in field. Rows whose
// date does not parse are logged and kept, in their original order, at the
// end.
func SortChronologically(rows []entity.Row, field string, log *zap.Logger) []entity.Row {
	type dated struct {
		row entity.Row
		at  time.Time
	}
	var ok []dated
	var rest []entity.Row
	for _, r := range rows {
		t, err := normalize.ToTime(r[field])
		if err != nil {
			rest = append(rest, r)
			continue
		}
		ok = append(ok, dated{row: r, at: t})
	}
	if len(rest) > 0 && log != nil {
		log.Warn("rows with unparseable dates", zap.String("field", field), zap.Int("count", len(rest)))
	}

	slices.SortStableFunc(ok, func(a, b dated) int { return a.at.Compare(b.at) })

	out := make([]entity.Row, 0, len(rows))
	for _, d := range ok {
		out = append(out, d.row)
	}
	return append(out, rest...)
}
