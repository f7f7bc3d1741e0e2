// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// A Surface receives the drawing calls of a render. Implementations
// exist for SVG output and for raster (PNG) output.
type Surface interface {
	// Start begins a figure of the given pixel size.
	Start(w, h int)

	// FillPolygon fills a closed polygon given as parallel
	// coordinate slices. Rings after the first cut holes.
	FillPolygon(rings [][]DevPt, fill color.Color)

	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h Px, fill color.Color)

	// StrokeRect outlines an axis-aligned rectangle.
	StrokeRect(x, y, w, h Px, c color.Color, width Px)

	// Line draws a stroked segment with the device's line cap.
	Line(x1, y1, x2, y2 Px, c color.Color, width Px, cap string)

	// Text draws s with its anchor point at (x, y). Size is the
	// font pixel size; anchor is "start", "middle", or "end".
	Text(x, y Px, s string, size Px, c color.Color, anchor string)

	// End finishes the figure.
	End() error
}

// Margins is the space around the plot region, in pixels, in plot
// order: bottom, left, top, right.
type Margins struct {
	Bottom, Left, Top, Right Px
}

// DefaultMargins leaves modest room on every side.
var DefaultMargins = Margins{Bottom: 24, Left: 24, Top: 16, Right: 16}

const baseFontPx = 12.0

// A Device is the mutable plot-device state: figure size, margins,
// character expansion, and stroke style. A render mutates it and can
// restore the prior state on exit through the closure returned by Save.
type Device struct {
	W, H    Px
	Mar     Margins
	Cex     float64
	Clip    bool
	LineCap string

	surf Surface
	// viewport of the last completed render, for add-to-plot calls.
	vp *Viewport

	// started reports whether a figure has begun on the surface; an
	// add-to-plot render requires one.
	started bool
}

// NewDevice returns a device of the given pixel size drawing to surf.
func NewDevice(surf Surface, w, h int) *Device {
	return &Device{
		W:       Px(w),
		H:       Px(h),
		Mar:     DefaultMargins,
		Cex:     1,
		Clip:    true,
		LineCap: "round",
		surf:    surf,
	}
}

// Save snapshots the adjustable device state and returns a closure
// restoring it.
func (d *Device) Save() func() {
	mar, cex, clip, lineCap := d.Mar, d.Cex, d.Clip, d.LineCap
	return func() {
		d.Mar, d.Cex, d.Clip, d.LineCap = mar, cex, clip, lineCap
	}
}

// PlotRegion returns the device rectangle inside the margins.
func (d *Device) PlotRegion() image.Rectangle {
	return image.Rect(
		int(d.Mar.Left), int(d.Mar.Top),
		int(d.W-d.Mar.Right), int(d.H-d.Mar.Bottom))
}

// FontSize returns the font pixel size at the device's character
// expansion, scaled by an additional factor.
func (d *Device) FontSize(scale float64) Px {
	return Px(baseFontPx * d.Cex * scale)
}

// TextWidth measures s at the given font size, in pixels. The measure
// uses the fixed reference face scaled to the requested size, so it is
// deterministic across surfaces.
func (d *Device) TextWidth(s string, size Px) Px {
	w := font.MeasureString(basicfont.Face7x13, s)
	px := float64(w) / 64
	return Px(px * float64(size) / float64(basicfont.Face7x13.Height))
}

// LineHeight returns the leading at the given font size.
func (d *Device) LineHeight(size Px) Px {
	return Px(1.25 * float64(size))
}
