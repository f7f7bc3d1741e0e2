// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// A ColorSpec selects how subbasin values map to colors. It has three
// cases, fixed at construction: automatic selection from the variable
// name, a color ramp, or an explicit palette.
type ColorSpec struct {
	kind    colorKind
	ramp    Ramp
	palette []color.RGBA
}

type colorKind int

const (
	colorZero colorKind = iota
	colorAuto
	colorRamp
	colorPalette
)

// Auto selects a ramp and breakpoints from the variable name, falling
// back to the generic difference ramp with quantile breakpoints for
// unrecognized variables.
func Auto() ColorSpec { return ColorSpec{kind: colorAuto} }

// ByRamp colors classes with r. Breakpoints come from the recipe tuned
// to the built-in difference ramps, or from data quantiles otherwise.
func ByRamp(r Ramp) ColorSpec { return ColorSpec{kind: colorRamp, ramp: r} }

// Palette colors classes with an explicit color sequence.
func Palette(colors ...color.RGBA) ColorSpec {
	return ColorSpec{kind: colorPalette, palette: colors}
}

// A Classification maps values to colors through a sorted sequence of
// breakpoints defining right-closed intervals. Colors has one entry per
// interval, Labels likewise.
type Classification struct {
	Breaks []float64
	Colors []color.RGBA
	Labels []string
}

// ClassOf returns the interval index containing v, or -1 if v is NaN
// or falls outside the covered range. Intervals are right-closed; the
// lowest interval is closed on both ends.
func (c *Classification) ClassOf(v float64) int {
	n := len(c.Breaks)
	if math.IsNaN(v) || n < 2 || v < c.Breaks[0] || v > c.Breaks[n-1] {
		return -1
	}
	if v == c.Breaks[0] {
		return 0
	}
	// First i with Breaks[i] >= v; v lands in interval i-1.
	i := sort.SearchFloat64s(c.Breaks, v)
	return i - 1
}

// autoPreset is a hand-tuned classification for a known HYPE output
// variable.
type autoPreset struct {
	breaks []float64
	ramp   Ramp
	title  string
}

var autoPresets = map[string]autoPreset{
	"CCTN": {[]float64{0, 125, 250, 500, 1000, 2500, 5000}, Nitrogen, "Total Nitrogen (µg/l)"},
	"CCTP": {[]float64{0, 5, 10, 25, 50, 100, 250}, Phosphorus, "Total Phosphorus (µg/l)"},
	"COUT": {[]float64{0, 0.5, 1, 5, 10, 50, 100, 500}, Discharge, "Discharge (m³/s)"},
	"CCTE": {[]float64{0, 2, 6, 10, 14, 18, 22, 26}, Temperature, "Water Temperature (°C)"},
}

// autoTitle returns the legend title derived from a variable name.
func autoTitle(varName string) string {
	if p, ok := autoPresets[strings.ToUpper(varName)]; ok {
		return p.title
	}
	return varName
}

// resolveClassification turns a color spec, optional explicit
// breakpoints, and the observed values into a concrete classification.
// Non-fatal advisories are appended to *warns.
func resolveClassification(vals []float64, spec ColorSpec, varName string, breaks []float64, warns *[]error) (*Classification, error) {
	lo, hi, any := valueRange(vals)
	if !any {
		return nil, &InvalidInputError{What: "values", Detail: "no non-missing values"}
	}

	// A lone breakpoint cannot define an interval. Replace it with
	// the full data range.
	if len(breaks) == 1 {
		*warns = append(*warns, &RangeWarning{
			Msg: fmt.Sprintf("single breakpoint %g discarded; using data range [%g, %g]", breaks[0], lo, hi)})
		breaks = []float64{lo, hi}
	}
	if len(breaks) > 0 {
		breaks = append([]float64(nil), breaks...)
		sort.Float64s(breaks)
		if lo < breaks[0] || hi > breaks[len(breaks)-1] {
			*warns = append(*warns, &RangeWarning{
				Msg: fmt.Sprintf("breakpoints [%g, %g] do not cover data range [%g, %g]; uncovered subbasins left unfilled",
					breaks[0], breaks[len(breaks)-1], lo, hi)})
		}
	}

	var ramp Ramp
	var palette []color.RGBA
	switch spec.kind {
	case colorRamp:
		ramp = spec.ramp
		if len(ramp.anchors) == 0 {
			return nil, &InvalidArgumentError{Arg: "color", Value: "ramp without anchors",
				Allowed: "a ramp with at least one anchor color"}
		}
		if len(breaks) == 0 {
			switch ramp.Name {
			case DiffTemp.Name:
				breaks = diffTempBreaks(lo, hi)
			case DiffGeneric.Name:
				breaks = diffLogBreaks(lo, hi)
			default:
				breaks = quantileBreaks(vals, 10)
			}
		}

	case colorAuto:
		if p, ok := autoPresets[strings.ToUpper(varName)]; ok {
			ramp = p.ramp
			if len(breaks) == 0 {
				breaks = extendTails(p.breaks, lo, hi)
			}
		} else {
			ramp = DiffGeneric
			if len(breaks) == 0 {
				breaks = quantileBreaks(vals, 10)
			}
		}

	case colorPalette:
		palette = spec.palette
		if len(palette) == 0 {
			return nil, &InvalidArgumentError{Arg: "color", Value: "empty palette",
				Allowed: "at least one color"}
		}
		if len(breaks) > 0 {
			if len(palette) != len(breaks)-1 {
				return nil, &CountMismatchError{Colors: len(palette), Breaks: len(breaks)}
			}
		} else {
			breaks = quantileBreaks(vals, len(palette))
		}

	default:
		return nil, &InvalidArgumentError{Arg: "color", Value: spec.kind,
			Allowed: "Auto, ByRamp, or Palette"}
	}

	userPalette := spec.kind == colorPalette
	breaks, dropped := dedupSorted(breaks)
	if dropped > 0 && userPalette {
		*warns = append(*warns, &TruncationWarning{Dropped: dropped})
	}
	if len(breaks) == 1 {
		// All boundaries collapsed (e.g. every value is zero).
		// Widen into a valid single interval.
		breaks = []float64{breaks[0] - 1, breaks[0] + 1}
	}

	n := len(breaks) - 1
	var colors []color.RGBA
	if userPalette {
		colors = palette[:n]
	} else {
		colors = ramp.Colors(n)
	}

	return &Classification{
		Breaks: breaks,
		Colors: colors,
		Labels: intervalLabels(breaks),
	}, nil
}

func valueRange(vals []float64) (lo, hi float64, any bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		any = true
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return
}

// quantileBreaks returns n+1 breakpoints at equal quantile steps of the
// non-missing values.
func quantileBreaks(vals []float64, n int) []float64 {
	xs := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	s := stats.Sample{Xs: xs}
	s.Sort()
	breaks := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		breaks[i] = s.Quantile(float64(i) / float64(n))
	}
	return breaks
}

// diffTempBreaks is the recipe for temperature difference maps: a fixed
// grid from -7.5 to 7.5 in steps of 1.5, with the outermost boundaries
// pushed out to the data range when it extends past the grid.
func diffTempBreaks(lo, hi float64) []float64 {
	breaks := make([]float64, 0, 11)
	for b := -7.5; b <= 7.5; b += 1.5 {
		breaks = append(breaks, b)
	}
	return extendTails(breaks, lo, hi)
}

// diffLogBreaks is the recipe for generic difference maps: breakpoints
// log-spaced over three decades below the largest magnitude, mirrored
// around zero.
func diffLogBreaks(lo, hi float64) []float64 {
	m := math.Max(math.Abs(lo), math.Abs(hi))
	if m == 0 {
		return []float64{0}
	}
	const steps = 4
	pos := make([]float64, steps)
	for i := 0; i < steps; i++ {
		// m/1000 .. m, log-spaced.
		pos[i] = m * math.Pow(10, -3*float64(steps-1-i)/float64(steps-1))
	}
	breaks := make([]float64, 0, 2*steps+1)
	for i := steps - 1; i >= 0; i-- {
		breaks = append(breaks, -pos[i])
	}
	breaks = append(breaks, 0)
	breaks = append(breaks, pos...)
	return breaks
}

// extendTails widens the outermost breakpoints to cover the data range.
func extendTails(breaks []float64, lo, hi float64) []float64 {
	out := append([]float64(nil), breaks...)
	if len(out) == 0 {
		return out
	}
	if lo < out[0] {
		out[0] = lo
	}
	if hi > out[len(out)-1] {
		out[len(out)-1] = hi
	}
	return out
}

func dedupSorted(breaks []float64) (out []float64, dropped int) {
	out = breaks[:0]
	for i, b := range breaks {
		if i > 0 && b == out[len(out)-1] {
			dropped++
			continue
		}
		out = append(out, b)
	}
	return
}

func intervalLabels(breaks []float64) []string {
	labels := make([]string, len(breaks)-1)
	for i := range labels {
		open := "("
		if i == 0 {
			open = "["
		}
		labels[i] = open + fmtBreak(breaks[i]) + ", " + fmtBreak(breaks[i+1]) + "]"
	}
	return labels
}

func fmtBreak(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
