// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"fmt"
	"image/color"
)

// A Ramp generates ordered color sequences of any length by linear
// interpolation over a fixed set of anchor colors. The name identifies
// built-in ramps so classification can pick breakpoint recipes tuned to
// them.
type Ramp struct {
	Name    string
	anchors []color.RGBA
}

// NewRamp returns a ramp interpolating over the given anchor colors.
func NewRamp(name string, anchors ...color.RGBA) Ramp {
	return Ramp{Name: name, anchors: anchors}
}

// Colors returns n colors evenly spaced along the ramp.
func (r Ramp) Colors(n int) []color.RGBA {
	if n <= 0 || len(r.anchors) == 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	if n == 1 {
		out[0] = r.anchors[len(r.anchors)/2]
		return out
	}
	for i := range out {
		t := float64(i) / float64(n-1)
		out[i] = r.at(t)
	}
	return out
}

func (r Ramp) at(t float64) color.RGBA {
	if t <= 0 {
		return r.anchors[0]
	}
	if t >= 1 {
		return r.anchors[len(r.anchors)-1]
	}
	idx := t * float64(len(r.anchors)-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= len(r.anchors) {
		hi = len(r.anchors) - 1
	}
	return lerp(r.anchors[lo], r.anchors[hi], idx-float64(lo))
}

func lerp(c1, c2 color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c1.R) + t*(float64(c2.R)-float64(c1.R))),
		G: uint8(float64(c1.G) + t*(float64(c2.G)-float64(c1.G))),
		B: uint8(float64(c1.B) + t*(float64(c2.B)-float64(c1.B))),
		A: 255,
	}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Built-in ramps for common HYPE output variables. Nitrogen and
// Phosphorus run light to saturated, Temperature cold to warm,
// Discharge light to deep blue. DiffTemp and DiffGeneric are diverging
// ramps for difference maps, white at the center.
var (
	Nitrogen = NewRamp("nitrogen",
		color.RGBA{R: 255, G: 255, B: 204, A: 255},
		color.RGBA{R: 194, G: 230, B: 153, A: 255},
		color.RGBA{R: 120, G: 198, B: 121, A: 255},
		color.RGBA{R: 49, G: 163, B: 84, A: 255},
		color.RGBA{R: 0, G: 104, B: 55, A: 255})

	Phosphorus = NewRamp("phosphorus",
		color.RGBA{R: 255, G: 255, B: 212, A: 255},
		color.RGBA{R: 254, G: 217, B: 142, A: 255},
		color.RGBA{R: 254, G: 153, B: 41, A: 255},
		color.RGBA{R: 217, G: 95, B: 14, A: 255},
		color.RGBA{R: 153, G: 52, B: 4, A: 255})

	Temperature = NewRamp("temperature",
		color.RGBA{R: 44, G: 123, B: 182, A: 255},
		color.RGBA{R: 171, G: 217, B: 233, A: 255},
		color.RGBA{R: 255, G: 255, B: 191, A: 255},
		color.RGBA{R: 253, G: 174, B: 97, A: 255},
		color.RGBA{R: 215, G: 25, B: 28, A: 255})

	Discharge = NewRamp("discharge",
		color.RGBA{R: 241, G: 238, B: 246, A: 255},
		color.RGBA{R: 189, G: 201, B: 225, A: 255},
		color.RGBA{R: 116, G: 169, B: 207, A: 255},
		color.RGBA{R: 43, G: 140, B: 190, A: 255},
		color.RGBA{R: 4, G: 90, B: 141, A: 255})

	DiffTemp = NewRamp("difftemp",
		color.RGBA{R: 5, G: 48, B: 97, A: 255},
		color.RGBA{R: 67, G: 147, B: 195, A: 255},
		color.RGBA{R: 209, G: 229, B: 240, A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		color.RGBA{R: 253, G: 219, B: 199, A: 255},
		color.RGBA{R: 214, G: 96, B: 77, A: 255},
		color.RGBA{R: 103, G: 0, B: 31, A: 255})

	DiffGeneric = NewRamp("diffgeneric",
		color.RGBA{R: 84, G: 48, B: 5, A: 255},
		color.RGBA{R: 191, G: 129, B: 45, A: 255},
		color.RGBA{R: 246, G: 232, B: 195, A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		color.RGBA{R: 199, G: 234, B: 229, A: 255},
		color.RGBA{R: 53, G: 151, B: 143, A: 255},
		color.RGBA{R: 0, G: 60, B: 48, A: 255})

	Blues = NewRamp("blues",
		color.RGBA{R: 239, G: 243, B: 255, A: 255},
		color.RGBA{R: 107, G: 174, B: 214, A: 255},
		color.RGBA{R: 8, G: 81, B: 156, A: 255})
)
