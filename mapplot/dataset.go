// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// A SubbasinSet is a collection of subbasin polygons with an attached
// attribute table. Row i of the attribute table describes Subbasins[i].
type SubbasinSet struct {
	Subbasins []Subbasin

	// Attrs is the attribute table. One column holds the SUBID;
	// which one is designated by index at render time.
	Attrs *table.Table

	// Geographic marks an unprojected (longitude/latitude)
	// coordinate reference. Projected, metric coordinates are the
	// default.
	Geographic bool

	index *rtreego.Rtree
}

// A Subbasin is one region polygon keyed by its SUBID.
type Subbasin struct {
	SUBID int
	Geom  orb.MultiPolygon
}

// LoadGeoJSON reads a feature collection of subbasin polygons. The
// property named by subidProp supplies the SUBID for each feature; the
// remaining properties become attribute-table columns. Geographic
// coordinates are assumed, as GeoJSON mandates WGS84.
func LoadGeoJSON(r io.Reader, subidProp string) (*SubbasinSet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("no features in collection")
	}

	subs := make([]Subbasin, 0, len(fc.Features))
	subids := make([]int, 0, len(fc.Features))
	props := map[string][]string{}
	for i, f := range fc.Features {
		var geom orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			geom = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			geom = g
		default:
			return nil, fmt.Errorf("feature %d: geometry is %T, not a polygon", i, f.Geometry)
		}
		id, ok := propInt(f.Properties[subidProp])
		if !ok {
			return nil, fmt.Errorf("feature %d: missing or non-integer property %q", i, subidProp)
		}
		subs = append(subs, Subbasin{SUBID: id, Geom: geom})
		subids = append(subids, id)
		for k, v := range f.Properties {
			if k == subidProp {
				continue
			}
			col, ok := props[k]
			if !ok {
				col = make([]string, len(fc.Features))
				props[k] = col
			}
			col[i] = fmt.Sprint(v)
		}
	}

	b := new(table.Builder).Add("SUBID", subids)
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.Add(k, props[k])
	}

	return &SubbasinSet{Subbasins: subs, Attrs: b.Done(), Geographic: true}, nil
}

func propInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
	case int:
		return x, true
	}
	return 0, false
}

// Bounds returns the bounding box of all subbasin geometry.
func (s *SubbasinSet) Bounds() orb.Bound {
	b := s.Subbasins[0].Geom.Bound()
	for _, sb := range s.Subbasins[1:] {
		b = b.Union(sb.Geom.Bound())
	}
	return b
}

// SubbasinAt returns the subbasin containing the point, if any. The
// first call builds a spatial index over the polygon bounding boxes;
// candidates are then confirmed with a planar point-in-polygon test.
func (s *SubbasinSet) SubbasinAt(p orb.Point) (*Subbasin, bool) {
	if s.index == nil {
		s.buildIndex()
	}
	pt := rtreego.Point{p[0], p[1]}
	rect, _ := rtreego.NewRect(pt, []float64{1e-9, 1e-9})
	for _, hit := range s.index.SearchIntersect(rect) {
		sb := hit.(*subbasinItem).sub
		if planar.MultiPolygonContains(sb.Geom, p) {
			return sb, true
		}
	}
	return nil, false
}

type subbasinItem struct {
	sub  *Subbasin
	rect rtreego.Rect
}

func (it *subbasinItem) Bounds() rtreego.Rect { return it.rect }

func (s *SubbasinSet) buildIndex() {
	s.index = rtreego.NewTree(2, 8, 16)
	for i := range s.Subbasins {
		sb := &s.Subbasins[i]
		b := sb.Geom.Bound()
		rect, err := rtreego.NewRect(
			rtreego.Point{b.Min[0], b.Min[1]},
			[]float64{math.Max(b.Max[0]-b.Min[0], 1e-9), math.Max(b.Max[1]-b.Min[1], 1e-9)})
		if err != nil {
			continue
		}
		s.index.Insert(&subbasinItem{sub: sb, rect: rect})
	}
}

// augment returns a copy of s whose attribute table carries matched
// value, class label, and color columns. ids holds the SUBID of each
// attribute row, read from the designated column. Subbasins without a
// matching SUBID get NaN and empty strings and render unfilled.
func (s *SubbasinSet) augment(ids []int, byID map[int]float64, cls *Classification) *SubbasinSet {
	n := len(s.Subbasins)
	vals := make([]float64, n)
	labels := make([]string, n)
	hexes := make([]string, n)
	for i := range s.Subbasins {
		v, ok := byID[ids[i]]
		if !ok {
			vals[i] = math.NaN()
			continue
		}
		vals[i] = v
		if ci := cls.ClassOf(v); ci >= 0 {
			labels[i] = cls.Labels[ci]
			hexes[i] = hexColor(cls.Colors[ci])
		}
	}
	attrs := table.NewBuilder(s.Attrs).
		Add("value", vals).
		Add("class", labels).
		Add("color", hexes).
		Done()
	out := &SubbasinSet{
		Subbasins:  s.Subbasins,
		Attrs:      attrs,
		Geographic: s.Geographic,
	}
	return out
}
