// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchlog provides a reader and writer for benchmark logs
// whose lines end in a JSON measurement record.
//
// Each line of a benchmark log carries a free-form prefix (typically
// a timestamp written by the logger) followed by a JSON object, for
// example:
//
//	[2017-03-21 10:12:45.137] { "message" : "search", "items" : 10, "time" : 1.5, "time/item" : 0.15, "locality" : 1 }
//
// The object must carry "items", "time" and "time/item". Other keys
// are ignored. Numbers may be native JSON numbers or strings holding
// a number.
//
// This package is designed to be used with the higher-level packages
// benchmath and benchseries.
package benchlog

// A Result is a single measurement decoded from a log line.
//
// Results are designed to be mutated in place and reused to reduce
// allocation.
type Result struct {
	// Items is the number of items the measured operation
	// processed. It identifies the benchmark configuration the
	// measurement belongs to.
	Items int64

	// Time is the elapsed time of the whole operation.
	Time float64

	// TimePerItem is Time divided by Items, as computed by the
	// benchmark itself.
	TimePerItem float64

	// fileName and line record where this Record was read from.
	fileName string
	line     int
}

// Clone makes a copy of Result that can be retained after the next
// call to Reader.Scan.
func (r *Result) Clone() *Result {
	r2 := *r
	return &r2
}

// Pos returns the file name and line number of a Result that was read
// by a Reader. For Results that were not read from a file, it returns
// "", 0.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}
