// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hypeio

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		name     string
		input    string
		subids   []int
		rawDates []string
		columns  [][]float64
	}{
		{
			"basic",
			`SUBID,1996,1997
1,1.5,2.5
2,3,4`,
			[]int{1, 2},
			[]string{"1996", "1997"},
			[][]float64{{1.5, 3}, {2.5, 4}},
		},
		{
			"comment and spacing",
			`!! mean flow 1996-1997, unit: m3/s, timestep: year
SUBID, 1996, 1997
1, 1.5, 2.5`,
			[]int{1},
			[]string{"1996", "1997"},
			[][]float64{{1.5}, {2.5}},
		},
		{
			"single column",
			`SUBID,mean
3587,0.25
3588,0.75`,
			[]int{3587, 3588},
			[]string{"mean"},
			[][]float64{{0.25, 0.75}},
		},
	} {
		m, err := Parse(strings.NewReader(test.input))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if !reflect.DeepEqual(m.SUBIDs, test.subids) {
			t.Errorf("%s: SUBIDs = %v, want %v", test.name, m.SUBIDs, test.subids)
		}
		if !reflect.DeepEqual(m.RawDates, test.rawDates) {
			t.Errorf("%s: RawDates = %v, want %v", test.name, m.RawDates, test.rawDates)
		}
		if !reflect.DeepEqual(m.Columns, test.columns) {
			t.Errorf("%s: Columns = %v, want %v", test.name, m.Columns, test.columns)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no header", "!! only a comment"},
		{"bad header", "DATE,1996\n1,2"},
		{"short row", "SUBID,1996,1997\n1,2"},
		{"bad subid", "SUBID,1996\nx,2"},
		{"bad value", "SUBID,1996\n1,x"},
	} {
		if _, err := Parse(strings.NewReader(test.input)); err == nil {
			t.Errorf("%s: want error", test.name)
		}
	}
}

func TestParseMissingValues(t *testing.T) {
	m, err := Parse(strings.NewReader("SUBID,1996\n1,-9999\n2,5"))
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(m.Columns[0][0]) {
		t.Errorf("missing value = %g, want NaN", m.Columns[0][0])
	}
	if m.Columns[0][1] != 5 {
		t.Errorf("value = %g, want 5", m.Columns[0][1])
	}
}

func TestParseMetadata(t *testing.T) {
	m, err := Parse(strings.NewReader(
		"!! computed discharge, unit: m3/s, timestep: year, variable: COUT\nSUBID,1996\n1,2"))
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := m.Meta.Unit(); !ok || u != "m3/s" {
		t.Errorf("Unit = %q, %v", u, ok)
	}
	if ts, ok := m.Meta.Timestep(); !ok || ts != "year" {
		t.Errorf("Timestep = %q, %v", ts, ok)
	}
	if v, ok := m.Meta.Variable(); !ok || v != "COUT" {
		t.Errorf("Variable = %q, %v", v, ok)
	}
	if ids, ok := m.Meta.SUBIDs(); !ok || !reflect.DeepEqual(ids, []int{1}) {
		t.Errorf("SUBIDs = %v, %v", ids, ok)
	}
}

func TestParseDates(t *testing.T) {
	m, err := Parse(strings.NewReader("SUBID,1996-01-02,1996-01-03\n1,2,3"))
	if err != nil {
		t.Fatal(err)
	}
	want := []time.Time{
		time.Date(1996, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(1996, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	if !reflect.DeepEqual(m.Dates, want) {
		t.Errorf("Dates = %v, want %v", m.Dates, want)
	}
	if d, ok := m.Meta.Dates(); !ok || len(d) != 2 {
		t.Errorf("Meta.Dates = %v, %v", d, ok)
	}

	// Non-date labels stay raw.
	m, err = Parse(strings.NewReader("SUBID,mean\n1,2"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Dates != nil {
		t.Errorf("Dates = %v, want nil for non-date labels", m.Dates)
	}
}

func TestTable(t *testing.T) {
	m, err := Parse(strings.NewReader("SUBID,1996,1997\n1,1.5,2.5\n2,3,4"))
	if err != nil {
		t.Fatal(err)
	}
	tab, err := m.Table(1)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"SUBID", "1997"}; !reflect.DeepEqual(tab.Columns(), want) {
		t.Errorf("columns = %v, want %v", tab.Columns(), want)
	}
	if want := []float64{2.5, 4}; !reflect.DeepEqual(tab.Column("1997"), want) {
		t.Errorf("values = %v, want %v", tab.Column("1997"), want)
	}

	if _, err := m.Table(5); err == nil {
		t.Errorf("Table(5): want error")
	}
}

func TestMetaZeroValue(t *testing.T) {
	var m Meta
	if _, ok := m.Unit(); ok {
		t.Errorf("zero Meta reports a unit")
	}
	if _, ok := m.Dates(); ok {
		t.Errorf("zero Meta reports dates")
	}
	m.SetUnit("mg/l").SetVariable("CCTN")
	if u, ok := m.Unit(); !ok || u != "mg/l" {
		t.Errorf("Unit = %q, %v", u, ok)
	}
	if v, ok := m.Variable(); !ok || v != "CCTN" {
		t.Errorf("Variable = %q, %v", v, ok)
	}
}
