// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RasterSurface draws to an in-memory RGBA image and encodes it as PNG
// on End. Polygons go through the x/image/vector rasterizer; text uses
// the fixed reference face, so small sizes render best.
type RasterSurface struct {
	w   io.Writer
	img *image.RGBA
}

// NewRasterSurface returns a surface encoding PNG to w.
func NewRasterSurface(w io.Writer) *RasterSurface {
	return &RasterSurface{w: w}
}

func (s *RasterSurface) Start(w, h int) {
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(s.img, s.img.Bounds(), image.White, image.Point{}, draw.Src)
}

func (s *RasterSurface) FillPolygon(rings [][]DevPt, fill color.Color) {
	if len(rings) == 0 {
		return
	}
	b := s.img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	for _, ring := range rings {
		for i, p := range ring {
			if i == 0 {
				r.MoveTo(float32(p.X), float32(p.Y))
			} else {
				r.LineTo(float32(p.X), float32(p.Y))
			}
		}
		r.ClosePath()
	}
	r.Draw(s.img, b, image.NewUniform(fill), image.Point{})
}

func (s *RasterSurface) FillRect(x, y, w, h Px, fill color.Color) {
	rect := image.Rect(int(x), int(y), int(x+w), int(y+h))
	draw.Draw(s.img, rect, image.NewUniform(fill), image.Point{}, draw.Over)
}

func (s *RasterSurface) StrokeRect(x, y, w, h Px, c color.Color, width Px) {
	s.Line(x, y, x+w, y, c, width, "butt")
	s.Line(x+w, y, x+w, y+h, c, width, "butt")
	s.Line(x+w, y+h, x, y+h, c, width, "butt")
	s.Line(x, y+h, x, y, c, width, "butt")
}

// Line rasterizes a stroked segment as a filled quad. Caps are
// ignored; raster output is preview quality.
func (s *RasterSurface) Line(x1, y1, x2, y2 Px, c color.Color, width Px, _ string) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	l := dx*dx + dy*dy
	if l == 0 {
		return
	}
	l = float64(width) / 2 / math.Sqrt(l)
	nx, ny := -dy*l, dx*l

	b := s.img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(float64(x1)+nx), float32(float64(y1)+ny))
	r.LineTo(float32(float64(x2)+nx), float32(float64(y2)+ny))
	r.LineTo(float32(float64(x2)-nx), float32(float64(y2)-ny))
	r.LineTo(float32(float64(x1)-nx), float32(float64(y1)-ny))
	r.ClosePath()
	r.Draw(s.img, b, image.NewUniform(c), image.Point{})
}

func (s *RasterSurface) Text(x, y Px, str string, size Px, c color.Color, anchor string) {
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(str)
	dot := fixed.P(int(x), int(y))
	switch anchor {
	case "middle":
		dot.X -= w / 2
	case "end":
		dot.X -= w
	}
	d.Dot = dot
	d.DrawString(str)
}

func (s *RasterSurface) End() error {
	return png.Encode(s.w, s.img)
}
