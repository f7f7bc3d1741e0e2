// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"image/color"
	"strings"
)

// Legend position keywords, clockwise from the lower right.
var legendPositions = []string{
	"bottomright", "right", "topright", "topleft", "left", "bottomleft",
}

func validLegendPos(pos string) bool {
	for _, p := range legendPositions {
		if p == pos {
			return true
		}
	}
	return false
}

// legendMetrics is the measured size of a legend before any ink is
// laid down.
type legendMetrics struct {
	boxW, boxH Px
	rowH       Px // height of one class swatch
	swatchW    Px
	labelW     Px // widest breakpoint annotation
	titleH     Px
	pad        Px
}

// trialRowOffsets lays out swatch rows for the given colors without
// drawing and returns their top offsets.
func trialRowOffsets(d *Device, colors []color.RGBA) []Px {
	lineH := d.LineHeight(d.FontSize(1))
	offs := make([]Px, len(colors))
	for i := range colors {
		offs[i] = Px(i) * lineH
	}
	return offs
}

// measureLegend computes legend geometry by a zero-ink trial layout.
// The per-class row height comes from the spacing of two consecutive
// trial rows; a single-class legend would make that spacing degenerate,
// so the trial falls back to a neutral two-color ramp.
func measureLegend(d *Device, cls *Classification, title string, labels []string) legendMetrics {
	var m legendMetrics
	m.pad = d.FontSize(1) / 2
	m.swatchW = Px(1.5 * float64(d.FontSize(1)))

	offs := trialRowOffsets(d, cls.Colors)
	if len(offs) < 2 {
		offs = trialRowOffsets(d, Blues.Colors(2))
	}
	m.rowH = offs[1] - offs[0]

	m.titleH = d.LineHeight(d.FontSize(1.1))
	for _, l := range labels {
		if w := d.TextWidth(l, d.FontSize(0.9)); w > m.labelW {
			m.labelW = w
		}
	}
	titleW := d.TextWidth(title, d.FontSize(1.1))
	m.boxW = m.swatchW + 2*m.pad
	if w := titleW + 2*m.pad; w > m.boxW {
		m.boxW = w
	}
	m.boxH = m.titleH + Px(len(cls.Colors))*m.rowH + 2*m.pad
	return m
}

// legendLayout is a placed legend: the box, the swatch bar inside it,
// and where annotations go. Annotations sit beside the bar on the
// outward side, toward the nearer vertical plot edge.
type legendLayout struct {
	boxX, boxY Px // top-left
	m          legendMetrics
	barX       Px // swatch column left edge
	barTop     Px
	labelX     Px
	labelEnd   bool // anchor text at its end (left-side legends)
}

// placeLegend positions a measured legend at one of the six canonical
// positions, inset by plot-region fractions. The annotation width adds
// to the inset so labels stay inside the region.
func placeLegend(d *Device, pos string, inset FracPt, m legendMetrics) legendLayout {
	region := d.PlotRegion()
	w := Px(region.Dx())
	h := Px(region.Dy())
	gap := m.pad

	var l legendLayout
	l.m = m
	right := strings.Contains(pos, "right")

	if right {
		l.boxX = Px(region.Max.X) - Px(inset.X)*w - m.boxW - m.labelW - gap
	} else {
		l.boxX = Px(region.Min.X) + Px(inset.X)*w + m.labelW + gap
	}

	switch pos {
	case "bottomright", "bottomleft":
		l.boxY = Px(region.Max.Y) - Px(inset.Y)*h - m.boxH
	case "topright", "topleft":
		l.boxY = Px(region.Min.Y) + Px(inset.Y)*h
	default: // right, left: vertically centered
		l.boxY = Px(region.Min.Y) + (h-m.boxH)/2 + Px(inset.Y)*h
	}

	l.barX = l.boxX + m.pad
	l.barTop = l.boxY + m.titleH + m.pad
	if right {
		l.labelX = l.boxX + m.boxW + gap
		l.labelEnd = false
	} else {
		l.labelX = l.boxX - gap
		l.labelEnd = true
	}
	return l
}

// drawLegend renders the legend box with its title and color bar, then
// the breakpoint annotations as separate text beside the bar. The bar
// stacks classes with the highest interval on top; annotation j marks
// breakpoint j counted from the lowest.
func drawLegend(d *Device, l legendLayout, cls *Classification, title string, labels []string) {
	black := color.RGBA{A: 255}
	n := Px(len(cls.Colors))

	d.surf.StrokeRect(l.boxX, l.boxY, l.m.boxW, l.m.boxH, black, 1)
	d.surf.Text(l.boxX+l.m.pad, l.boxY+l.m.titleH, title, d.FontSize(1.1), black, "start")

	for i, c := range cls.Colors {
		// Row 0 is the highest class.
		y := l.barTop + Px(len(cls.Colors)-1-i)*l.m.rowH
		d.surf.FillRect(l.barX, y, l.m.swatchW, l.m.rowH, c)
		d.surf.StrokeRect(l.barX, y, l.m.swatchW, l.m.rowH, black, 0.5)
	}

	anchor := "start"
	if l.labelEnd {
		anchor = "end"
	}
	size := d.FontSize(0.9)
	for j, label := range labels {
		if label == "" {
			continue
		}
		y := l.barTop + (n-Px(j))*l.m.rowH + size/3
		d.surf.Text(l.labelX, y, label, size, black, anchor)
	}
}

// breakLabels formats breakpoints for annotation. The outermost labels
// are blanked when outer is false.
func breakLabels(breaks []float64, outer bool) []string {
	labels := make([]string, len(breaks))
	for i, b := range breaks {
		labels[i] = fmtBreak(b)
	}
	if !outer {
		labels[0] = ""
		labels[len(labels)-1] = ""
	}
	return labels
}
