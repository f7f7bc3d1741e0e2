// Copyright 2024 The Hypemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapplot

import "fmt"

// InvalidInputError reports a malformed result table or subbasin set.
// It is returned before any drawing takes place.
type InvalidInputError struct {
	// What names the offending input ("values" or "subbasins").
	What string

	// Detail describes what was wrong with it.
	Detail string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.What, e.Detail)
}

// InvalidArgumentError reports an option value outside the accepted
// set, such as an unknown legend position keyword or an alignment
// fraction other than 0, 0.5, or 1.
type InvalidArgumentError struct {
	Arg     string
	Value   interface{}
	Allowed string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %v (must be %s)", e.Arg, e.Value, e.Allowed)
}

// CountMismatchError reports an explicit palette whose length does not
// match the number of intervals defined by explicit breakpoints.
type CountMismatchError struct {
	Colors, Breaks int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%d colors cannot fill %d breakpoint intervals (need %d)",
		e.Colors, e.Breaks, e.Breaks-1)
}

// RangeWarning is a non-fatal advisory: breakpoints do not bracket the
// data range, a lone breakpoint was discarded, or a scale bar was
// requested on an unprojected map. Rendering proceeds with degraded
// output (unfilled subbasins, substituted breakpoints).
type RangeWarning struct {
	Msg string
}

func (w *RangeWarning) Error() string { return w.Msg }

// TruncationWarning is a non-fatal advisory: deduplicating breakpoints
// collapsed adjacent class boundaries, leaving some of a user-supplied
// palette unused.
type TruncationWarning struct {
	Dropped int
}

func (w *TruncationWarning) Error() string {
	return fmt.Sprintf("duplicate breakpoints removed; %d palette colors unused", w.Dropped)
}
