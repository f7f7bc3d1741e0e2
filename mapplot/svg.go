// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVGSurface draws to an SVG document on an io.Writer.
type SVGSurface struct {
	canvas *svg.SVG
}

// NewSVGSurface returns a surface writing SVG to w.
func NewSVGSurface(w io.Writer) *SVGSurface {
	return &SVGSurface{canvas: svg.New(w)}
}

func (s *SVGSurface) Start(w, h int) {
	s.canvas.Start(w, h)
}

func (s *SVGSurface) FillPolygon(rings [][]DevPt, fill color.Color) {
	if len(rings) == 0 {
		return
	}
	var d strings.Builder
	for _, ring := range rings {
		for i, p := range ring {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&d, "%s%.2f %.2f ", cmd, float64(p.X), float64(p.Y))
		}
		d.WriteString("Z ")
	}
	s.canvas.Path(d.String(),
		fmt.Sprintf("fill:%s;fill-rule:evenodd;stroke:none", cssColor(fill)))
}

func (s *SVGSurface) FillRect(x, y, w, h Px, fill color.Color) {
	s.canvas.Rect(int(x), int(y), int(w), int(h),
		fmt.Sprintf("fill:%s;stroke:none", cssColor(fill)))
}

func (s *SVGSurface) StrokeRect(x, y, w, h Px, c color.Color, width Px) {
	s.canvas.Rect(int(x), int(y), int(w), int(h),
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f", cssColor(c), float64(width)))
}

func (s *SVGSurface) Line(x1, y1, x2, y2 Px, c color.Color, width Px, cap string) {
	s.canvas.Line(int(x1), int(y1), int(x2), int(y2),
		fmt.Sprintf("stroke:%s;stroke-width:%.2f;stroke-linecap:%s",
			cssColor(c), float64(width), cap))
}

func (s *SVGSurface) Text(x, y Px, str string, size Px, c color.Color, anchor string) {
	s.canvas.Text(int(x), int(y), str,
		fmt.Sprintf("font-family:sans-serif;font-size:%.1fpx;fill:%s;text-anchor:%s",
			float64(size), cssColor(c), anchor))
}

func (s *SVGSurface) End() error {
	s.canvas.End()
	return nil
}

func cssColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
