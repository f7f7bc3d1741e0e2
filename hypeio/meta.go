// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hypeio

import "time"

// Meta tags HYPE result data with descriptive fields: the time axis,
// the unit, the subbasin identifiers, the model time step, and the
// variable name. The zero value is empty. Getters report presence with
// a second return; setters return the carrier so they chain.
type Meta struct {
	m map[string]interface{}
}

func (m *Meta) set(key string, v interface{}) *Meta {
	if m.m == nil {
		m.m = make(map[string]interface{})
	}
	m.m[key] = v
	return m
}

// Dates returns the time axis of the data.
func (m *Meta) Dates() ([]time.Time, bool) {
	v, ok := m.m["dates"].([]time.Time)
	return v, ok
}

// SetDates attaches the time axis.
func (m *Meta) SetDates(d []time.Time) *Meta { return m.set("dates", d) }

// Unit returns the unit string of the values.
func (m *Meta) Unit() (string, bool) {
	v, ok := m.m["unit"].(string)
	return v, ok
}

// SetUnit attaches the unit string.
func (m *Meta) SetUnit(u string) *Meta { return m.set("unit", u) }

// SUBIDs returns the subbasin identifiers.
func (m *Meta) SUBIDs() ([]int, bool) {
	v, ok := m.m["subid"].([]int)
	return v, ok
}

// SetSUBIDs attaches the subbasin identifiers.
func (m *Meta) SetSUBIDs(ids []int) *Meta { return m.set("subid", ids) }

// Timestep returns the model time step ("day", "month", "year", ...).
func (m *Meta) Timestep() (string, bool) {
	v, ok := m.m["timestep"].(string)
	return v, ok
}

// SetTimestep attaches the model time step.
func (m *Meta) SetTimestep(ts string) *Meta { return m.set("timestep", ts) }

// Variable returns the HYPE variable name (COUT, CCTN, ...).
func (m *Meta) Variable() (string, bool) {
	v, ok := m.m["variable"].(string)
	return v, ok
}

// SetVariable attaches the HYPE variable name.
func (m *Meta) SetVariable(name string) *Meta { return m.set("variable", name) }
