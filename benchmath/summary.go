// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeVariance is wrapped by the Summary warning reported when
// rounding drives the computed variance below zero.
var ErrNegativeVariance = errors.New("negative variance from rounding")

// A Summary summarizes the measurements folded into an Accumulator.
type Summary struct {
	// Mean is the arithmetic mean of the measurements.
	Mean float64

	// StdDev is the population standard deviation of the
	// measurements.
	StdDev float64

	// Min and Max are the bounds reported by the Accumulator.
	Min, Max float64

	// N is the number of measurements.
	N int

	// Warnings is a list of warnings about this summary.
	Warnings []error
}

// Summary finalizes a into a Summary. It does not modify a.
//
// The variance is computed from the running sums as
// SumSquares/Count - Mean². Cancellation can make that slightly
// negative when the true variance is close to zero; it is then clamped
// to zero and a warning wrapping ErrNegativeVariance is attached.
//
// If a has no measurements, Mean and StdDev are NaN.
func (a *Accumulator) Summary() Summary {
	n := float64(a.Count)
	mean := a.Sum / n
	variance := a.SumSquares/n - mean*mean

	s := Summary{Mean: mean, Min: a.Min, Max: a.Max, N: a.Count}
	if variance < 0 {
		s.Warnings = append(s.Warnings, fmt.Errorf("%w: %.3g clamped to 0", ErrNegativeVariance, variance))
		variance = 0
	}
	s.StdDev = math.Sqrt(variance)
	return s
}

// String formats s as "mean ± stddev [min, max] n=N".
func (s Summary) String() string {
	return fmt.Sprintf("%.4g ± %.2g [%.4g, %.4g] n=%d", s.Mean, s.StdDev, s.Min, s.Max, s.N)
}

// PctDevString returns the standard deviation as a percentage of the
// mean.
func (s Summary) PctDevString() string {
	if math.IsNaN(s.StdDev) || math.IsInf(s.StdDev, 0) {
		return "?"
	}
	if s.StdDev == 0 {
		return "0%"
	}
	// If mean is 0, avoid dividing by zero.
	if s.Mean == 0 {
		return "∞"
	}
	return fmt.Sprintf("%.0f%%", 100*s.StdDev/math.Abs(s.Mean))
}
