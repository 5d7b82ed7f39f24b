package chart

import "math"

// linear maps a numeric domain onto a pixel range.
type linear struct {
	d0, d1 float64
	r0, r1 float64
}

func newLinear(d0, d1, r0, r1 float64) linear {
	if d0 == d1 {
		d1 = d0 + 1
	}
	return linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

func (s linear) At(v float64) float64 {
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Ticks returns up to n+1 evenly spaced round values inside the domain.
func (s linear) Ticks(n int) []float64 {
	lo, hi := math.Min(s.d0, s.d1), math.Max(s.d0, s.d1)
	step := niceStep((hi - lo) / float64(n))
	if step == 0 {
		return []float64{lo}
	}
	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f <= 1:
		return mag
	case f <= 2:
		return 2 * mag
	case f <= 5:
		return 5 * mag
	}
	return 10 * mag
}

// BarDomain returns the value domain for bars. The lower bound is the data
// minimum when any value is negative and zero otherwise.
func BarDomain(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return math.Min(lo, 0), math.Max(hi, 0)
}
