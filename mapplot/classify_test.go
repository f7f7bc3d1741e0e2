// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"image/color"
	"math"
	"reflect"
	"sort"
	"testing"
)

var (
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
)

func resolve(t *testing.T, vals []float64, spec ColorSpec, varName string, breaks []float64) (*Classification, []error) {
	t.Helper()
	var warns []error
	cls, err := resolveClassification(vals, spec, varName, breaks, &warns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cls, warns
}

func TestExplicitBreaksAndPalette(t *testing.T) {
	cls, warns := resolve(t, []float64{10, 600}, Palette(yellow, red), "", []float64{0, 500, 1000})
	if want := []float64{0, 500, 1000}; !reflect.DeepEqual(cls.Breaks, want) {
		t.Errorf("breaks = %v, want %v", cls.Breaks, want)
	}
	if !reflect.DeepEqual(cls.Colors, []color.RGBA{yellow, red}) {
		t.Errorf("colors = %v", cls.Colors)
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if c := cls.ClassOf(10); c != 0 {
		t.Errorf("ClassOf(10) = %d, want 0", c)
	}
	if c := cls.ClassOf(600); c != 1 {
		t.Errorf("ClassOf(600) = %d, want 1", c)
	}
}

func TestCountMismatch(t *testing.T) {
	var warns []error
	_, err := resolveClassification([]float64{1, 2}, Palette(yellow, red, green), "",
		[]float64{0, 1, 2}, &warns)
	if _, ok := err.(*CountMismatchError); !ok {
		t.Fatalf("err = %v, want *CountMismatchError", err)
	}

	// Three colors against four breakpoints is fine.
	if _, err := resolveClassification([]float64{1, 2}, Palette(yellow, red, green), "",
		[]float64{0, 1, 2, 3}, &warns); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmptyRampRejected(t *testing.T) {
	var warns []error
	_, err := resolveClassification([]float64{1, 2}, ByRamp(Ramp{}), "", nil, &warns)
	if _, ok := err.(*InvalidArgumentError); !ok {
		t.Fatalf("err = %v, want *InvalidArgumentError", err)
	}
}

func TestSingleBreakpointReplaced(t *testing.T) {
	cls, warns := resolve(t, []float64{2, 8}, ByRamp(Blues), "", []float64{5})
	if want := []float64{2, 8}; !reflect.DeepEqual(cls.Breaks, want) {
		t.Errorf("breaks = %v, want %v", cls.Breaks, want)
	}
	if len(warns) != 1 {
		t.Fatalf("warnings = %v, want one RangeWarning", warns)
	}
	if _, ok := warns[0].(*RangeWarning); !ok {
		t.Errorf("warning is %T, want *RangeWarning", warns[0])
	}
}

func TestBreaksNotCoveringRange(t *testing.T) {
	cls, warns := resolve(t, []float64{-5, 50}, Palette(yellow, red), "", []float64{0, 10, 20})
	found := false
	for _, w := range warns {
		if _, ok := w.(*RangeWarning); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a RangeWarning", warns)
	}
	// Out-of-range values stay unclassified.
	if c := cls.ClassOf(-5); c != -1 {
		t.Errorf("ClassOf(-5) = %d, want -1", c)
	}
	if c := cls.ClassOf(50); c != -1 {
		t.Errorf("ClassOf(50) = %d, want -1", c)
	}
}

func TestBreaksSortedAndDeduped(t *testing.T) {
	cls, _ := resolve(t, []float64{1, 4}, ByRamp(Blues), "", []float64{5, 1, 3, 3})
	if want := []float64{1, 3, 5}; !reflect.DeepEqual(cls.Breaks, want) {
		t.Errorf("breaks = %v, want %v", cls.Breaks, want)
	}
	if len(cls.Colors) != 2 {
		t.Errorf("len(colors) = %d, want 2", len(cls.Colors))
	}
}

func TestDedupTruncatesPalette(t *testing.T) {
	cls, warns := resolve(t, []float64{0.5, 1.5}, Palette(yellow, red, green), "",
		[]float64{0, 1, 1, 2})
	if want := []float64{0, 1, 2}; !reflect.DeepEqual(cls.Breaks, want) {
		t.Errorf("breaks = %v, want %v", cls.Breaks, want)
	}
	if !reflect.DeepEqual(cls.Colors, []color.RGBA{yellow, red}) {
		t.Errorf("colors = %v, want first two of the palette", cls.Colors)
	}
	var trunc *TruncationWarning
	for _, w := range warns {
		if tw, ok := w.(*TruncationWarning); ok {
			trunc = tw
		}
	}
	if trunc == nil || trunc.Dropped != 1 {
		t.Errorf("warnings = %v, want TruncationWarning with 1 dropped", warns)
	}
}

func TestAllZeroAutoWidens(t *testing.T) {
	// Every value equal: quantile breakpoints collapse to a single
	// point, which must widen into a valid interval.
	cls, _ := resolve(t, []float64{0, 0, 0}, Auto(), "", nil)
	if want := []float64{-1, 1}; !reflect.DeepEqual(cls.Breaks, want) {
		t.Errorf("breaks = %v, want %v", cls.Breaks, want)
	}
	if len(cls.Colors) != 1 {
		t.Fatalf("len(colors) = %d, want 1", len(cls.Colors))
	}
	for _, v := range []float64{0, 0, 0} {
		if c := cls.ClassOf(v); c != 0 {
			t.Errorf("ClassOf(%g) = %d, want 0", v, c)
		}
	}
}

func TestClassOfRightClosed(t *testing.T) {
	cls := &Classification{Breaks: []float64{0, 1, 2}}
	for _, test := range []struct {
		v    float64
		want int
	}{
		{0, 0}, // global minimum belongs to the lowest interval
		{0.5, 0},
		{1, 0}, // boundary value falls in the lower interval
		{1.5, 1},
		{2, 1},
		{2.1, -1},
		{-0.1, -1},
		{math.NaN(), -1},
	} {
		if got := cls.ClassOf(test.v); got != test.want {
			t.Errorf("ClassOf(%g) = %d, want %d", test.v, got, test.want)
		}
	}
}

func TestAutoPreset(t *testing.T) {
	vals := []float64{10, 800, 9000}
	cls, _ := resolve(t, vals, Auto(), "cctn", nil)
	// Preset tails extend to the data range.
	if cls.Breaks[0] != 0 || cls.Breaks[len(cls.Breaks)-1] != 9000 {
		t.Errorf("breaks = %v, want tails covering [0, 9000]", cls.Breaks)
	}
	if len(cls.Colors) != len(cls.Breaks)-1 {
		t.Errorf("%d colors for %d breaks", len(cls.Colors), len(cls.Breaks))
	}
	if got := autoTitle("cctn"); got != "Total Nitrogen (µg/l)" {
		t.Errorf("autoTitle = %q", got)
	}
}

func TestQuantileBreaks(t *testing.T) {
	vals := make([]float64, 101)
	for i := range vals {
		vals[i] = float64(i)
	}
	breaks := quantileBreaks(vals, 10)
	if len(breaks) != 11 {
		t.Fatalf("len(breaks) = %d, want 11", len(breaks))
	}
	if !sort.Float64sAreSorted(breaks) {
		t.Errorf("breaks not sorted: %v", breaks)
	}
	if breaks[0] != 0 || breaks[10] != 100 {
		t.Errorf("breaks = %v, want span [0, 100]", breaks)
	}
}

func TestDiffLogBreaksMirrored(t *testing.T) {
	breaks := diffLogBreaks(-40, 100)
	n := len(breaks)
	if n%2 == 0 {
		t.Fatalf("len(breaks) = %d, want odd", n)
	}
	if breaks[n/2] != 0 {
		t.Errorf("center break = %g, want 0", breaks[n/2])
	}
	for i := 0; i < n/2; i++ {
		if breaks[i] != -breaks[n-1-i] {
			t.Errorf("breaks[%d] = %g not mirrored against %g", i, breaks[i], breaks[n-1-i])
		}
	}
	if !sort.Float64sAreSorted(breaks) {
		t.Errorf("breaks not sorted: %v", breaks)
	}
	if breaks[n-1] != 100 {
		t.Errorf("outermost break = %g, want 100", breaks[n-1])
	}
}

func TestDiffTempBreaks(t *testing.T) {
	breaks := diffTempBreaks(-2, 3)
	if len(breaks) != 11 {
		t.Fatalf("len(breaks) = %d, want 11", len(breaks))
	}
	if breaks[0] != -7.5 || breaks[10] != 7.5 {
		t.Errorf("breaks = %v, want [-7.5, 7.5]", breaks)
	}
	// Data past the grid pushes the tails out.
	wide := diffTempBreaks(-20, 12)
	if wide[0] != -20 || wide[10] != 12 {
		t.Errorf("extended breaks = %v, want tails [-20, 12]", wide)
	}
}

func TestRampColors(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		cs := Nitrogen.Colors(n)
		if len(cs) != n {
			t.Errorf("Colors(%d) returned %d colors", n, len(cs))
		}
	}
	cs := DiffTemp.Colors(3)
	if cs[0] == cs[2] {
		t.Errorf("ramp endpoints identical: %v", cs)
	}
}
