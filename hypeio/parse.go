// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hypeio reads HYPE model result files.
//
// A map output file (mapCOUT.txt and friends) holds one value per
// subbasin and time period: an optional leading comment line prefixed
// with "!!" that may carry metadata hints, a header row naming the
// SUBID column followed by one column label per period, then one
// comma-separated row per subbasin.
package hypeio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
)

// MapOutput is the parsed content of a HYPE map output file.
type MapOutput struct {
	// SUBIDs lists the subbasin of each row.
	SUBIDs []int

	// Columns holds one value slice per period column, aligned
	// with SUBIDs. Missing values are NaN.
	Columns [][]float64

	// RawDates are the period column labels exactly as written.
	// Dates holds their parsed values where a date layout matched;
	// it is nil if any label failed to parse.
	RawDates []string
	Dates    []time.Time

	// Meta carries metadata gathered from the comment line and the
	// file structure.
	Meta Meta
}

// The missing-value marker HYPE writes.
const missing = -9999

var hintRe = regexp.MustCompile(`(\pL+):\s*([^,;]+)`)

// Parse reads a map output file. The variable name is not part of the
// format (it lives in the file name); callers can attach it with
// SetVariable.
func Parse(r io.Reader) (*MapOutput, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	m := new(MapOutput)
	header := false
	lineno := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineno++
		if line == "" {
			continue
		}

		// Comment line with optional "key: value" hints.
		if strings.HasPrefix(line, "!!") {
			for _, hit := range hintRe.FindAllStringSubmatch(line, -1) {
				val := strings.TrimSpace(hit[2])
				switch strings.ToLower(hit[1]) {
				case "unit":
					m.Meta.SetUnit(val)
				case "timestep":
					m.Meta.SetTimestep(val)
				case "variable":
					m.Meta.SetVariable(val)
				}
			}
			continue
		}

		f := strings.Split(line, ",")
		if !header {
			if len(f) < 2 || !strings.EqualFold(strings.TrimSpace(f[0]), "SUBID") {
				return nil, fmt.Errorf("line %d: header must start with SUBID", lineno)
			}
			m.RawDates = make([]string, len(f)-1)
			m.Columns = make([][]float64, len(f)-1)
			for i, lbl := range f[1:] {
				m.RawDates[i] = strings.TrimSpace(lbl)
			}
			header = true
			continue
		}

		if len(f) != len(m.Columns)+1 {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", lineno, len(f), len(m.Columns)+1)
		}
		id, err := strconv.Atoi(strings.TrimSpace(f[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad SUBID %q", lineno, f[0])
		}
		m.SUBIDs = append(m.SUBIDs, id)
		for i, field := range f[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value %q", lineno, field)
			}
			if v == missing {
				v = math.NaN()
			}
			m.Columns[i] = append(m.Columns[i], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !header {
		return nil, fmt.Errorf("no header row")
	}

	m.Dates = parseDates(m.RawDates)
	m.Meta.SetSUBIDs(m.SUBIDs)
	if m.Dates != nil {
		m.Meta.SetDates(m.Dates)
	}
	return m, nil
}

// dateLayouts are tried in order against every column label. The first
// layout that parses all of them wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// parseDates converts column labels to times, best effort. All labels
// must agree on a layout; otherwise the labels stay raw and the result
// is nil.
func parseDates(raw []string) []time.Time {
layouts:
	for _, layout := range dateLayouts {
		out := make([]time.Time, len(raw))
		for i, s := range raw {
			t, err := time.Parse(layout, s)
			if err != nil {
				continue layouts
			}
			out[i] = t
		}
		return out
	}
	return nil
}

// Table returns period column col as the two-column (SUBID, value)
// table the map renderer takes.
func (m *MapOutput) Table(col int) (*table.Table, error) {
	if col < 0 || col >= len(m.Columns) {
		return nil, fmt.Errorf("column %d out of range (0-%d)", col, len(m.Columns)-1)
	}
	return new(table.Builder).
		Add("SUBID", m.SUBIDs).
		Add(m.RawDates[col], m.Columns[col]).
		Done(), nil
}
