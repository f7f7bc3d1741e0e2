// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hypeplot renders a HYPE map output file as a choropleth map.
//
// hypeplot reads a map output file (e.g. mapCOUT.txt) and a GeoJSON
// feature collection of subbasin polygons, joins them on SUBID, and
// writes an SVG or PNG figure. The output format follows the -o file
// extension; "-" or a missing -o writes SVG to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hydrographics/hypemap/hypeio"
	"github.com/hydrographics/hypemap/mapplot"
)

func main() {
	log.SetPrefix("hypeplot: ")
	log.SetFlags(0)

	var (
		flagMap    = flag.String("map", "", "read HYPE map output from `file` (required)")
		flagGeo    = flag.String("geo", "", "read subbasin polygons from GeoJSON `file` (required)")
		flagSubid  = flag.String("subid", "SUBID", "GeoJSON `property` holding the SUBID")
		flagCol    = flag.Int("col", 0, "plot period column `index` of the map output")
		flagVar    = flag.String("var", "", "HYPE variable `name` (default: from the file's metadata)")
		flagOut    = flag.String("o", "", "write output to `file` (default: SVG to stdout)")
		flagWidth  = flag.Int("width", 800, "figure width in `pixels`")
		flagHeight = flag.Int("height", 800, "figure height in `pixels`")
		flagPos    = flag.String("legend", "right", "legend `position`")
		flagNoLeg  = flag.Bool("no-legend", false, "omit the legend")
		flagAdj    = flag.Float64("adj", 0, "map alignment (0, 0.5, or 1)")
		flagScale  = flag.Bool("scale", false, "draw a scale bar")
		flagNorth  = flag.Bool("north", false, "draw a north arrow")
		flagCex    = flag.Float64("cex", 1, "text scaling `factor`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -map file -geo file [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *flagMap == "" || *flagGeo == "" || flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	mf, err := os.Open(*flagMap)
	if err != nil {
		log.Fatal(err)
	}
	out, err := hypeio.Parse(mf)
	mf.Close()
	if err != nil {
		log.Fatalf("%s: %v", *flagMap, err)
	}

	gf, err := os.Open(*flagGeo)
	if err != nil {
		log.Fatal(err)
	}
	subs, err := mapplot.LoadGeoJSON(gf, *flagSubid)
	gf.Close()
	if err != nil {
		log.Fatalf("%s: %v", *flagGeo, err)
	}

	values, err := out.Table(*flagCol)
	if err != nil {
		log.Fatal(err)
	}
	varName := *flagVar
	if varName == "" {
		varName, _ = out.Meta.Variable()
	}

	f := os.Stdout
	png := false
	if *flagOut != "" && *flagOut != "-" {
		png = strings.HasSuffix(strings.ToLower(*flagOut), ".png")
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	var surf mapplot.Surface
	if png {
		surf = mapplot.NewRasterSurface(f)
	} else {
		surf = mapplot.NewSVGSurface(f)
	}
	dev := mapplot.NewDevice(surf, *flagWidth, *flagHeight)

	opt := mapplot.DefaultOptions()
	opt.Device = dev
	opt.MapAdj = *flagAdj
	opt.Legend = !*flagNoLeg
	opt.LegendPos = *flagPos
	opt.ScaleBar = *flagScale
	opt.NorthArrow = *flagNorth
	opt.Cex = *flagCex
	if unit, ok := out.Meta.Unit(); ok && varName == "" {
		opt.LegendTitle = unit
	}

	_, warns, err := mapplot.Render(values, subs, 0, varName, opt)
	for _, w := range warns {
		log.Print("warning: ", w)
	}
	if err != nil {
		log.Fatal(err)
	}
}
