// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mapplot renders color-coded maps of HYPE model results over
// subbasin polygons. Values are classified into breakpoint intervals,
// joined onto the polygons by SUBID, and drawn as a choropleth with an
// optional legend, scale bar, and north arrow.
package mapplot

import (
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-gg/table"
)

// Options configures a Render call. The zero value is not valid; start
// from DefaultOptions.
type Options struct {
	// Device is the output device. If nil, a default 800x800 SVG
	// device writing to Output is created.
	Device *Device
	Output io.Writer

	// MapAdj aligns the map inside the padded plot dimension:
	// 0 flush start, 0.5 centered, 1 flush end.
	MapAdj float64

	// Legend toggles the class legend; LegendPos is one of
	// bottomright, right, topright, topleft, left, bottomleft.
	Legend      bool
	LegendPos   string
	LegendTitle string // empty derives a title from the variable name

	// OuterBreaks shows the outermost breakpoint annotations.
	OuterBreaks bool

	// LegendInset offsets the legend from its plot edge, in
	// plot-region fractions. The y inset defaults to 0.
	LegendInset FracPt

	// Color selects the classification coloring; Breaks optionally
	// fixes explicit class boundaries.
	Color  ColorSpec
	Breaks []float64

	ScaleBar   bool
	NorthArrow bool

	// Cex scales all text; 0 keeps the device setting. Mar
	// overrides the device margins when non-nil.
	Cex float64
	Mar *Margins

	// Add draws onto the device's existing figure and coordinate
	// system instead of starting a new one.
	Add bool

	// RestoreState restores the device state on return.
	RestoreState bool
}

// DefaultOptions returns the standard render configuration: automatic
// colors, a legend on the right, outer break labels shown, device
// state restored.
func DefaultOptions() Options {
	return Options{
		Legend:       true,
		LegendPos:    "right",
		OuterBreaks:  true,
		Color:        Auto(),
		RestoreState: true,
	}
}

// Render draws values over the subbasin polygons and returns a copy of
// the subbasin set whose attribute table carries the matched value,
// class label, and resolved color per subbasin. The second return
// value collects non-fatal warnings.
//
// values must have exactly two columns: SUBID and a numeric value.
// subidCol designates the attribute-table column holding each
// polygon's SUBID.
func Render(values *table.Table, subs *SubbasinSet, subidCol int, varName string, opt Options) (*SubbasinSet, []error, error) {
	ids, vals, err := resultColumns(values)
	if err != nil {
		return nil, nil, err
	}
	if subs == nil || len(subs.Subbasins) == 0 {
		return nil, nil, &InvalidInputError{What: "subbasins", Detail: "empty polygon set"}
	}
	attrIDs, err := attrSUBIDs(subs, subidCol)
	if err != nil {
		return nil, nil, err
	}
	if opt.MapAdj != 0 && opt.MapAdj != 0.5 && opt.MapAdj != 1 {
		return nil, nil, &InvalidArgumentError{Arg: "map alignment", Value: opt.MapAdj,
			Allowed: "0, 0.5, or 1"}
	}
	if (opt.Legend || opt.LegendPos != "") && !validLegendPos(opt.LegendPos) {
		return nil, nil, &InvalidArgumentError{Arg: "legend position", Value: opt.LegendPos,
			Allowed: "bottomright, right, topright, topleft, left, or bottomleft"}
	}

	var warns []error
	cls, err := resolveClassification(vals, opt.Color, varName, opt.Breaks, &warns)
	if err != nil {
		return nil, warns, err
	}

	byID := make(map[int]float64, len(ids))
	for i, id := range ids {
		byID[id] = vals[i]
	}
	out := subs.augment(attrIDs, byID, cls)

	dev := opt.Device
	if dev == nil {
		if opt.Output == nil {
			return nil, warns, &InvalidArgumentError{Arg: "output", Value: nil,
				Allowed: "a Device or an Output writer"}
		}
		dev = NewDevice(NewSVGSurface(opt.Output), 800, 800)
	}
	if opt.Add && !dev.started {
		return nil, warns, &InvalidArgumentError{Arg: "add", Value: true,
			Allowed: "a device holding a previous figure"}
	}

	restore := dev.Save()
	if opt.RestoreState {
		defer restore()
	}
	if opt.Mar != nil {
		dev.Mar = *opt.Mar
	}
	if opt.Cex > 0 {
		dev.Cex = opt.Cex
	}

	region := dev.PlotRegion()
	var vp Viewport
	if opt.Add && dev.vp != nil {
		// Adding to an existing figure keeps its coordinate
		// system.
		vp = *dev.vp
	} else {
		xmin, xmax, ymin, ymax := mapLimits(subs.Bounds(), subs.Geographic,
			regionAspect(region), opt.MapAdj)
		vp = Viewport{Region: region, XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
	}

	if !opt.Add {
		dev.surf.Start(int(dev.W), int(dev.H))
		dev.started = true
	}
	drawSubbasins(dev, &vp, out, cls, byID, attrIDs)

	var legendLL DevPt
	haveLegend := false
	if opt.Legend {
		title := opt.LegendTitle
		if title == "" {
			title = autoTitle(varName)
		}
		labels := breakLabels(cls.Breaks, opt.OuterBreaks)
		m := measureLegend(dev, cls, title, labels)
		l := placeLegend(dev, opt.LegendPos, opt.LegendInset, m)
		drawLegend(dev, l, cls, title, labels)
		legendLL = DevPt{X: l.boxX, Y: l.boxY + m.boxH}
		haveLegend = true
	}

	// The scale bar and north arrow hang off the legend's lower
	// left corner; without a legend they fall back to the region
	// corner.
	if !haveLegend {
		legendLL = DevPt{X: Px(region.Min.X) + 10, Y: Px(region.Max.Y) - 40}
	}
	if opt.ScaleBar {
		if subs.Geographic {
			warns = append(warns, &RangeWarning{
				Msg: "scale bar on an unprojected map: bar length is in degrees and varies with latitude"})
		}
		drawScaleBar(dev, &vp, legendLL.X, legendLL.Y+1.8*dev.LineHeight(dev.FontSize(1)),
			subs.Geographic)
	}
	if opt.NorthArrow {
		drawNorthArrow(dev, legendLL.X+Px(0.35*float64(region.Dx())),
			legendLL.Y+dev.LineHeight(dev.FontSize(1)))
	}

	if !opt.Add {
		if err := dev.surf.End(); err != nil {
			return out, warns, err
		}
	}
	dev.vp = &vp
	return out, warns, nil
}

// drawSubbasins fills every classified polygon with its class color,
// without borders. Subbasins with no matched value are skipped and
// stay white.
func drawSubbasins(d *Device, vp *Viewport, s *SubbasinSet, cls *Classification, byID map[int]float64, ids []int) {
	for i := range s.Subbasins {
		v, ok := byID[ids[i]]
		if !ok {
			continue
		}
		ci := cls.ClassOf(v)
		if ci < 0 {
			continue
		}
		fillGeom(d, vp, &s.Subbasins[i], cls.Colors[ci])
	}
}

func fillGeom(d *Device, vp *Viewport, sb *Subbasin, c color.RGBA) {
	for _, poly := range sb.Geom {
		rings := make([][]DevPt, 0, len(poly))
		for _, ring := range poly {
			pts := make([]DevPt, len(ring))
			for i, p := range ring {
				pts[i] = vp.MapToDev(p)
			}
			rings = append(rings, pts)
		}
		d.surf.FillPolygon(rings, c)
	}
}

// resultColumns validates the result table shape and extracts the
// SUBID and value columns.
func resultColumns(values *table.Table) ([]int, []float64, error) {
	if values == nil {
		return nil, nil, &InvalidInputError{What: "values", Detail: "nil table"}
	}
	cols := values.Columns()
	if len(cols) != 2 {
		return nil, nil, &InvalidInputError{What: "values",
			Detail: "must have exactly two columns (SUBID, value)"}
	}
	ids, err := intColumn(values.Column(cols[0]))
	if err != nil {
		return nil, nil, &InvalidInputError{What: "values",
			Detail: "first column is not integer SUBIDs"}
	}
	vals, ok := floatColumn(values.Column(cols[1]))
	if !ok {
		return nil, nil, &InvalidInputError{What: "values",
			Detail: "second column is not numeric"}
	}
	return ids, vals, nil
}

func attrSUBIDs(subs *SubbasinSet, subidCol int) ([]int, error) {
	cols := subs.Attrs.Columns()
	if subidCol < 0 || subidCol >= len(cols) {
		return nil, &InvalidInputError{What: "subbasins",
			Detail: "SUBID column index out of range"}
	}
	ids, err := intColumn(subs.Attrs.Column(cols[subidCol]))
	if err != nil {
		return nil, &InvalidInputError{What: "subbasins",
			Detail: "designated SUBID column is not integer"}
	}
	return ids, nil
}

func intColumn(col interface{}) ([]int, error) {
	switch xs := col.(type) {
	case []int:
		return xs, nil
	case []float64:
		out := make([]int, len(xs))
		for i, v := range xs {
			if v != math.Trunc(v) {
				return nil, &InvalidInputError{What: "values", Detail: "non-integer SUBID"}
			}
			out[i] = int(v)
		}
		return out, nil
	}
	return nil, &InvalidInputError{What: "values", Detail: "unsupported column type"}
}

func floatColumn(col interface{}) ([]float64, bool) {
	switch xs := col.(type) {
	case []float64:
		return xs, true
	case []int:
		out := make([]float64, len(xs))
		for i, v := range xs {
			out[i] = float64(v)
		}
		return out, true
	}
	return nil, false
}
