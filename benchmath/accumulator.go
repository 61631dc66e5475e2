// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath computes statistics over streams of benchmark
// measurements.
//
// Measurements are folded into an Accumulator one at a time; only
// running sums are kept, never the measurements themselves. An
// Accumulator is then finalized into a Summary.
//
// Summaries carry a list of warnings, captured as an []error value.
// These aren't errors that prevent analysis, but should be presented
// to the user along with the results.
package benchmath

import "math"

// An Accumulator holds the running statistics of a stream of
// measurements.
//
// The zero Accumulator is not ready for use; create one with
// NewAccumulator.
type Accumulator struct {
	// Sum and SumSquares are the running sum of the measurements
	// and of their squares.
	Sum, SumSquares float64

	// Count is the number of measurements added.
	Count int

	// Min and Max are the smallest and largest measurement.
	// Min starts at +Inf and Max at 0, so Max never drops below 0.
	Min, Max float64
}

// NewAccumulator returns an Accumulator with no measurements.
func NewAccumulator() *Accumulator {
	return &Accumulator{Min: math.Inf(1)}
}

// Add folds measurement x into a.
func (a *Accumulator) Add(x float64) {
	a.Sum += x
	a.SumSquares += x * x
	a.Count++
	a.Min = math.Min(a.Min, x)
	a.Max = math.Max(a.Max, x)
}
