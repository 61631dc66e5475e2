// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries folds benchmark log records into per-size
// statistics and charts them.
package benchseries

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/generic/slice"
	"gonum.org/v1/plot/plotter"

	"github.com/ssebench/benchplot/benchlog"
	"github.com/ssebench/benchplot/benchmath"
)

// A Builder collects benchmark log records into one Accumulator per
// "items" value, and finalizes them into a Series.
type Builder struct {
	accs map[int64]*benchmath.Accumulator
	warn func(format string, args ...interface{})
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// Warn reports problems that do not stop the analysis, such
	// as summary warnings. If nil, warnings are dropped.
	Warn func(format string, args ...interface{})
}

// NewBuilder returns an empty Builder. bo may be nil.
func NewBuilder(bo *BuilderOptions) *Builder {
	b := &Builder{
		accs: make(map[int64]*benchmath.Accumulator),
		warn: func(string, ...interface{}) {},
	}
	if bo != nil && bo.Warn != nil {
		b.warn = bo.Warn
	}
	return b
}

// AddReader adds every record of a benchmark log read from r. fileName
// is used in error messages.
//
// The first malformed line stops reading and is returned as a
// *benchlog.SyntaxError. After an error the Builder holds a partial
// aggregation and should be discarded.
func (b *Builder) AddReader(r io.Reader, fileName string) error {
	reader := benchlog.NewReader(r, fileName)
	for reader.Scan() {
		if err := b.Add(reader.Result()); err != nil {
			return err
		}
	}
	return reader.Err()
}

// Add adds a single record to the Builder. A *benchlog.SyntaxError
// record is returned as the error.
func (b *Builder) Add(rec benchlog.Record) error {
	switch rec := rec.(type) {
	case *benchlog.Result:
		b.AddResult(rec)
		return nil
	case *benchlog.SyntaxError:
		return rec
	default:
		return fmt.Errorf("unknown Record type %T", rec)
	}
}

// AddResult folds the per-item time of res into the accumulator for
// res.Items. res is not retained.
func (b *Builder) AddResult(res *benchlog.Result) {
	acc := b.accs[res.Items]
	if acc == nil {
		acc = benchmath.NewAccumulator()
		b.accs[res.Items] = acc
	}
	acc.Add(res.TimePerItem)
}

// Accumulators returns the running statistics collected so far,
// indexed by "items". The map is owned by the Builder.
func (b *Builder) Accumulators() map[int64]*benchmath.Accumulator {
	return b.accs
}

// A Series is the finalized statistics of a benchmark log.
type Series struct {
	// Keys lists the "items" values in increasing numeric order.
	Keys []int64

	// Summaries maps each key to the summary of its per-item times.
	Summaries map[int64]benchmath.Summary
}

// Series finalizes the accumulators into a Series. Summary warnings
// are reported through the Builder's Warn function.
func (b *Builder) Series() *Series {
	s := &Series{
		Keys:      make([]int64, 0, len(b.accs)),
		Summaries: make(map[int64]benchmath.Summary, len(b.accs)),
	}
	for k := range b.accs {
		s.Keys = append(s.Keys, k)
	}
	slice.Sort(s.Keys)
	for _, k := range s.Keys {
		sum := b.accs[k].Summary()
		for _, w := range sum.Warnings {
			b.warn("items=%d: %v\n", k, w)
		}
		s.Summaries[k] = sum
	}
	return s
}

// XYs returns the mean of each key, in key order.
func (s *Series) XYs() plotter.XYs {
	xys := make(plotter.XYs, len(s.Keys))
	for i, k := range s.Keys {
		xys[i].X = float64(k)
		xys[i].Y = s.Summaries[k].Mean
	}
	return xys
}
