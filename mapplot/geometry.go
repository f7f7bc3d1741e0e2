// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"image"
	"math"

	"github.com/paulmach/orb"
)

// The layout code deals in three coordinate spaces that must never be
// mixed silently: device pixels (origin top-left, y down), map units
// (the polygon CRS, y up), and plot-region fractions (origin
// bottom-left of the region inside the margins). Each space gets its
// own type and all crossings go through Viewport conversions.

// Px is a length in device pixels.
type Px float64

// Frac is a fraction of the plot region, 0 to 1.
type Frac float64

// DevPt is a device position in pixels, origin top-left.
type DevPt struct {
	X, Y Px
}

// FracPt is a plot-region position in fractions, origin bottom-left.
type FracPt struct {
	X, Y Frac
}

// A Viewport binds chosen map axis limits to the device plot region.
type Viewport struct {
	Region                 image.Rectangle
	XMin, XMax, YMin, YMax float64
}

// MapToDev converts a map coordinate to device pixels.
func (v *Viewport) MapToDev(p orb.Point) DevPt {
	fx := (p[0] - v.XMin) / (v.XMax - v.XMin)
	fy := (p[1] - v.YMin) / (v.YMax - v.YMin)
	return v.FracToDev(FracPt{Frac(fx), Frac(fy)})
}

// FracToDev converts a plot-region fraction to device pixels.
func (v *Viewport) FracToDev(p FracPt) DevPt {
	w := float64(v.Region.Dx())
	h := float64(v.Region.Dy())
	return DevPt{
		X: Px(float64(v.Region.Min.X) + float64(p.X)*w),
		Y: Px(float64(v.Region.Max.Y) - float64(p.Y)*h),
	}
}

// DevToFrac converts device pixels back to plot-region fractions.
func (v *Viewport) DevToFrac(p DevPt) FracPt {
	w := float64(v.Region.Dx())
	h := float64(v.Region.Dy())
	return FracPt{
		X: Frac((float64(p.X) - float64(v.Region.Min.X)) / w),
		Y: Frac((float64(v.Region.Max.Y) - float64(p.Y)) / h),
	}
}

// PxPerMapUnit returns the horizontal device scale. With limits chosen
// by mapLimits the vertical scale matches, up to the geographic
// latitude correction.
func (v *Viewport) PxPerMapUnit() float64 {
	return float64(v.Region.Dx()) / (v.XMax - v.XMin)
}

// regionAspect returns the height/width ratio of a device rectangle.
func regionAspect(r image.Rectangle) float64 {
	return float64(r.Dy()) / float64(r.Dx())
}

// bboxAspect returns the on-screen height/width ratio of a map
// bounding box. An unprojected map has no metric coordinates to take
// the ratio of directly, so one is synthesized by shrinking longitude
// extent with the cosine of the central latitude.
func bboxAspect(b orb.Bound, geographic bool) float64 {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	if geographic {
		dx *= latCorrection(b)
	}
	return dy / dx
}

func latCorrection(b orb.Bound) float64 {
	mid := (b.Min[1] + b.Max[1]) / 2
	c := math.Cos(mid * math.Pi / 180)
	if c < 0.01 {
		c = 0.01
	}
	return c
}

// mapLimits chooses axis limits that show the whole bounding box at
// its true aspect ratio inside a plot region with aspect plotAspect
// (height/width). The shorter map dimension is padded; adj places the
// map flush against the start (0), centered (0.5), or flush against
// the end (1) of the padded dimension.
func mapLimits(b orb.Bound, geographic bool, plotAspect, adj float64) (xmin, xmax, ymin, ymax float64) {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	corr := 1.0
	if geographic {
		corr = latCorrection(b)
	}

	if bboxAspect(b, geographic) > plotAspect {
		// Map is proportionally narrower than the window: the
		// vertical extent fills the region and the horizontal
		// limits widen to match the window aspect.
		ymin, ymax = b.Min[1], b.Max[1]
		need := dy / (plotAspect * corr)
		xmin = b.Min[0] - adj*(need-dx)
		xmax = xmin + need
	} else {
		xmin, xmax = b.Min[0], b.Max[0]
		need := plotAspect * dx * corr
		ymin = b.Min[1] - adj*(need-dy)
		ymax = ymin + need
	}
	return
}

// niceLength rounds d down to a 1, 2, or 5 times a power of ten, for
// scale bar lengths.
func niceLength(d float64) float64 {
	if d <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(d))
	base := math.Pow(10, exp)
	switch f := d / base; {
	case f >= 5:
		return 5 * base
	case f >= 2:
		return 2 * base
	default:
		return base
	}
}
