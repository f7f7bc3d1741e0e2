// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"fmt"
	"image/color"
)

// drawScaleBar draws a distance bar with its left end at (x, y). The
// bar spans a 1-2-5 rounded length close to a quarter of the visible
// map width. On projected maps coordinates are taken as meters; on
// geographic maps the length is labelled in degrees (the caller has
// already warned that it is of limited use).
func drawScaleBar(d *Device, vp *Viewport, x, y Px, geographic bool) {
	mapW := vp.XMax - vp.XMin
	length := niceLength(mapW / 4)
	if length == 0 {
		return
	}
	pxLen := Px(length * vp.PxPerMapUnit())
	black := color.RGBA{A: 255}
	tick := d.FontSize(1) / 3

	d.surf.Line(x, y, x+pxLen, y, black, 1.5, d.LineCap)
	d.surf.Line(x, y-tick, x, y+tick, black, 1.5, d.LineCap)
	d.surf.Line(x+pxLen, y-tick, x+pxLen, y+tick, black, 1.5, d.LineCap)

	var label string
	switch {
	case geographic:
		label = fmt.Sprintf("%g°", length)
	case length >= 1000:
		label = fmt.Sprintf("%g km", length/1000)
	default:
		label = fmt.Sprintf("%g m", length)
	}
	d.surf.Text(x+pxLen/2, y-tick-2, label, d.FontSize(0.9), black, "middle")
}

// drawNorthArrow draws a north-pointing triangle with an N label,
// centered horizontally on x with its tip at y.
func drawNorthArrow(d *Device, x, y Px) {
	h := Px(2.2 * float64(d.FontSize(1)))
	w := h / 2
	black := color.RGBA{A: 255}
	d.surf.FillPolygon([][]DevPt{{
		{X: x, Y: y},
		{X: x + w/2, Y: y + h},
		{X: x - w/2, Y: y + h},
	}}, black)
	d.surf.Text(x, y+h+d.LineHeight(d.FontSize(0.9)), "N", d.FontSize(0.9), black, "middle")
}
