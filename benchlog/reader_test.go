// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

// rec is a comparable summary of a Record.
type rec struct {
	Line        int
	Items       int64
	Time        float64
	TimePerItem float64
	Err         error
}

func parseAll(t *testing.T, data string) []rec {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []rec
	for r.Scan() {
		switch res := r.Result().(type) {
		case *Result:
			if name, _ := res.Pos(); name != "test" {
				t.Errorf("want file name test, got %q", name)
			}
			_, line := res.Pos()
			out = append(out, rec{Line: line, Items: res.Items, Time: res.Time, TimePerItem: res.TimePerItem})
		case *SyntaxError:
			out = append(out, rec{Line: res.Line, Err: res.Err})
		default:
			t.Fatalf("unexpected result type %T", res)
		}
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

// errKind compares errors by the sentinel they wrap.
var errKind = cmp.Comparer(func(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	for _, s := range []error{ErrNoMatch, ErrDecode, ErrMissingField, ErrBadField} {
		if errors.Is(a, s) {
			return errors.Is(b, s)
		}
	}
	return false
})

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		want        []rec
	}
	for _, test := range []testCase{
		{
			"basic",
			`INFO ... {"items": 10, "time": 1.0, "time/item": 0.1}
INFO ... {"items": 10, "time": 2.0, "time/item": 0.3}
INFO ... {"items": 20, "time": 5.0, "time/item": 0.5}`,
			[]rec{
				{Line: 1, Items: 10, Time: 1, TimePerItem: 0.1},
				{Line: 2, Items: 10, Time: 2, TimePerItem: 0.3},
				{Line: 3, Items: 20, Time: 5, TimePerItem: 0.5},
			},
		},
		{
			"spdlog",
			`[2017-03-21 10:12:45.137] { "message" : "search", "items" : 3, "time" : 1.5, "time/item" : 0.5, "locality" : 1 }`,
			[]rec{{Line: 1, Items: 3, Time: 1.5, TimePerItem: 0.5}},
		},
		{
			"stringified",
			`{"items": "7", "time": "14", "time/item": " 2.5 "}`,
			[]rec{{Line: 1, Items: 7, Time: 14, TimePerItem: 2.5}},
		},
		{
			"surrounding whitespace",
			"\t{\"items\": 1, \"time\": 1, \"time/item\": 1}\t\r",
			[]rec{{Line: 1, Items: 1, Time: 1, TimePerItem: 1}},
		},
		{
			"exponent items",
			`{"items": 1e3, "time": 1, "time/item": 0.001}`,
			[]rec{{Line: 1, Items: 1000, Time: 1, TimePerItem: 0.001}},
		},
		{
			"no object",
			"INFO starting benchmark",
			[]rec{{Line: 1, Err: ErrNoMatch}},
		},
		{
			"empty line",
			"\n",
			[]rec{{Line: 1, Err: ErrNoMatch}},
		},
		{
			"object not at end",
			`{"items": 1, "time": 1, "time/item": 1} trailing`,
			[]rec{{Line: 1, Err: ErrNoMatch}},
		},
		{
			"trailing space",
			`{"items": 1, "time": 1, "time/item": 1} `,
			[]rec{{Line: 1, Err: ErrNoMatch}},
		},
		{
			"malformed",
			`INFO {"items": 1, "time": 1, "time/item": }`,
			[]rec{{Line: 1, Err: ErrDecode}},
		},
		{
			// The object starts at the first brace on the line,
			// so a brace in the prefix breaks decoding.
			"brace in prefix",
			`[a{b] {"items": 1, "time": 1, "time/item": 1}`,
			[]rec{{Line: 1, Err: ErrDecode}},
		},
		{
			"missing items",
			`{"time": 1, "time/item": 1}`,
			[]rec{{Line: 1, Err: ErrMissingField}},
		},
		{
			"missing time/item",
			`{"items": 1, "time": 1}`,
			[]rec{{Line: 1, Err: ErrMissingField}},
		},
		{
			"fractional items",
			`{"items": 1.5, "time": 1, "time/item": 1}`,
			[]rec{{Line: 1, Err: ErrBadField}},
		},
		{
			"largest items",
			`{"items": 9223372036854775807, "time": 1, "time/item": 1}`,
			[]rec{{Line: 1, Items: math.MaxInt64, Time: 1, TimePerItem: 1}},
		},
		{
			"items overflow",
			`{"items": 9223372036854775808, "time": 1, "time/item": 1}`,
			[]rec{{Line: 1, Err: ErrBadField}},
		},
		{
			"items overflow exponent",
			`{"items": 1e19, "time": 1, "time/item": 1}`,
			[]rec{{Line: 1, Err: ErrBadField}},
		},
		{
			"non-numeric time",
			`{"items": 1, "time": "fast", "time/item": 1}`,
			[]rec{{Line: 1, Err: ErrBadField}},
		},
		{
			"null time/item",
			`{"items": 1, "time": 1, "time/item": null}`,
			[]rec{{Line: 1, Err: ErrBadField}},
		},
		{
			"error then result",
			"garbage\n{\"items\": 2, \"time\": 4, \"time/item\": 2}",
			[]rec{
				{Line: 1, Err: ErrNoMatch},
				{Line: 2, Items: 2, Time: 4, TimePerItem: 2},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.input)
			if diff := cmp.Diff(test.want, got, errKind); diff != "" {
				t.Errorf("records differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSyntaxError(t *testing.T) {
	r := NewReader(strings.NewReader("\n{\"items\": 1}"), "bench.log")
	var errs []string
	for r.Scan() {
		if err, ok := r.Result().(*SyntaxError); ok {
			errs = append(errs, err.Error())
		}
	}
	want := []string{
		`bench.log:1: no trailing JSON object`,
		`bench.log:2: missing field "time"`,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("errors differ (-want +got):\n%s", diff)
	}
}

func TestResultBeforeScan(t *testing.T) {
	r := NewReader(strings.NewReader(""), "")
	if _, ok := r.Result().(*SyntaxError); !ok {
		t.Errorf("want *SyntaxError before Scan, got %T", r.Result())
	}
	if r.Scan() {
		t.Fatal("Scan of empty input returned true")
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name, _ := r.Result().Pos(); name != "" {
		t.Errorf("want empty position after EOF, got %q", name)
	}
}

func TestReaderIOError(t *testing.T) {
	ioErr := fmt.Errorf("disk on fire")
	input := io.MultiReader(
		strings.NewReader("{\"items\": 1, \"time\": 1, \"time/item\": 1}\n"),
		iotest.ErrReader(ioErr),
	)
	r := NewReader(input, "test")
	n := 0
	for r.Scan() {
		n++
	}
	if n != 1 {
		t.Errorf("want 1 record before the error, got %d", n)
	}
	if err := r.Err(); !errors.Is(err, ioErr) {
		t.Fatalf("want %v, got %v", ioErr, err)
	}
	if r.Scan() {
		t.Error("Scan after I/O error returned true")
	}
}

func TestReset(t *testing.T) {
	r := NewReader(strings.NewReader("garbage\n"), "a")
	for r.Scan() {
	}
	r.Reset(strings.NewReader(`{"items": 4, "time": 8, "time/item": 2}`), "b")
	if !r.Scan() {
		t.Fatal("Scan after Reset returned false")
	}
	res, ok := r.Result().(*Result)
	if !ok {
		t.Fatalf("want *Result, got %v", r.Result())
	}
	if name, line := res.Pos(); name != "b" || line != 1 {
		t.Errorf("want b:1, got %s:%d", name, line)
	}
}

func TestClone(t *testing.T) {
	r := NewReader(strings.NewReader("{\"items\": 1, \"time\": 1, \"time/item\": 1}\n{\"items\": 2, \"time\": 2, \"time/item\": 1}"), "test")
	r.Scan()
	first := r.Result().(*Result).Clone()
	r.Scan()
	if first.Items != 1 {
		t.Errorf("clone was overwritten by Scan: items = %d", first.Items)
	}
}
