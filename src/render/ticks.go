package render

import (
	"math"
	"strconv"
)

const (
	arenaIntervals    = 8 // 0.5 m steps for the default arena
	colorbarIntervals = 5
	maxTicks          = 64
)

// Step mantissas; steps are one of these times a power of ten.
var stepMantissas = []float64{1, 2, 2.5, 5}

// Ticks is an evenly spaced set of tick values. Step is 0 for a single tick
// on a degenerate range.
type Ticks struct {
	Values []float64
	Step   float64
}

// niceStep returns the smallest 1/2/2.5/5 step that splits span into at most
// n intervals.
func niceStep(span float64, n int) float64 {
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range stepMantissas {
		if m*mag >= raw*(1-1e-9) {
			return m * mag
		}
	}
	return 10 * mag
}

// decimals is the number of fraction digits needed to print multiples of step.
func decimals(step float64) int {
	if step <= 0 {
		return 0
	}
	e := math.Floor(math.Log10(step))
	d := int(-e)
	if m := step / math.Pow(10, e); math.Abs(m-2.5) < 1e-9 {
		d++
	}
	return max(d, 0)
}

// multiplesWithin lists k*step for every integer k with lo <= k*step <= hi.
// Values are computed from k, never accumulated.
func multiplesWithin(lo, hi, step float64) Ticks {
	first := math.Ceil(lo/step - 1e-9)
	last := math.Floor(hi/step + 1e-9)
	if last < first || last-first >= maxTicks {
		return Ticks{Values: []float64{lo}}
	}
	p := math.Pow(10, float64(decimals(step)))
	var out []float64
	for k := first; k <= last; k++ {
		v := math.Round(k*step*p) / p
		if v == 0 {
			v = 0 // no negative zero
		}
		out = append(out, v)
	}
	return Ticks{Values: out, Step: step}
}

// ArenaTicks returns ticks symmetric around the origin within ±lim.
func ArenaTicks(lim float64) Ticks {
	if !(lim > 0) || math.IsInf(lim, 0) {
		return Ticks{Values: []float64{0}}
	}
	return multiplesWithin(-lim, lim, niceStep(2*lim, arenaIntervals))
}

// ColorbarTicks returns ticks inside the scale's own range. A range that is
// empty or too narrow to split at float64 precision gets a single tick at Min.
func ColorbarTicks(s TimeScale) Ticks {
	if math.IsNaN(s.Min) || math.IsInf(s.Min, 0) || math.IsInf(s.Max, 0) {
		return Ticks{Values: []float64{0}}
	}
	if !(s.Max-s.Min > 1e-9*math.Max(1, math.Abs(s.Max))) {
		return Ticks{Values: []float64{s.Min}}
	}
	return multiplesWithin(s.Min, s.Max, niceStep(s.Max-s.Min, colorbarIntervals))
}

// Label prints v with as many decimals as the step needs. Single ticks use
// up to four significant digits.
func (t Ticks) Label(v float64) string {
	if t.Step <= 0 {
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
	return strconv.FormatFloat(v, 'f', decimals(t.Step), 64)
}
