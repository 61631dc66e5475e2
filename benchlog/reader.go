// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Reasons a line can fail to parse. A *SyntaxError wraps exactly one
// of these, so callers can classify failures with errors.Is.
var (
	// ErrNoMatch indicates a line that does not end in a
	// brace-delimited object.
	ErrNoMatch = errors.New("no trailing JSON object")

	// ErrDecode indicates that the trailing object is not valid JSON.
	ErrDecode = errors.New("malformed JSON object")

	// ErrMissingField indicates that a required key is absent.
	ErrMissingField = errors.New("missing field")

	// ErrBadField indicates that a required key has a value of the
	// wrong type.
	ErrBadField = errors.New("bad field")
)

// Keys of the measurement object.
const (
	ItemsKey       = "items"
	TimeKey        = "time"
	TimePerItemKey = "time/item"
)

// maxLineLen bounds the length of a single log line.
const maxLineLen = 1 << 20

// A Reader reads benchmark log lines.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Result it returns; a caller should copy anything it needs to
// retain.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s   *bufio.Scanner
	err error // current I/O error

	rec    Record
	result Result
}

// A SyntaxError reports a line of a benchmark log that could not be
// turned into a Result. Err is one of ErrNoMatch, ErrDecode,
// ErrMissingField or ErrBadField, possibly wrapped with detail.
type SyntaxError struct {
	FileName string
	Line     int
	Err      error
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.FileName, e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

var noResult = &SyntaxError{"", 0, errors.New("Reader.Scan has not been called")}

// NewReader constructs a reader to parse benchmark log lines from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, maxLineLen)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.rec = nil
	r.result = Result{fileName: fileName}
}

func (r *Reader) newSyntaxError(err error) *SyntaxError {
	return &SyntaxError{r.result.fileName, r.result.line, err}
}

// Scan advances the reader to the next line and reports whether a
// record was read. The caller should use the Result method to get the
// record. Every line yields a record, so a malformed line is reported
// as a *SyntaxError rather than skipped.
//
// If Scan reaches EOF or an I/O error occurs, it returns false, in
// which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			r.err = fmt.Errorf("%s:%d: %w", r.result.fileName, r.result.line+1, err)
		}
		r.rec = nil
		return false
	}
	r.result.line++
	if err := r.parseLine(r.s.Bytes()); err != nil {
		r.rec = err
	} else {
		r.rec = &r.result
	}
	return true
}

// parseLine extracts the trailing object of line and decodes it into
// r.result.
func (r *Reader) parseLine(line []byte) *SyntaxError {
	span, ok := trailingObject(line)
	if !ok {
		return r.newSyntaxError(ErrNoMatch)
	}
	if !gjson.ValidBytes(span) {
		return r.newSyntaxError(ErrDecode)
	}
	fields := gjson.ParseBytes(span).Map()

	var err error
	if r.result.Items, err = intField(fields, ItemsKey); err != nil {
		return r.newSyntaxError(err)
	}
	if r.result.Time, err = floatField(fields, TimeKey); err != nil {
		return r.newSyntaxError(err)
	}
	if r.result.TimePerItem, err = floatField(fields, TimePerItemKey); err != nil {
		return r.newSyntaxError(err)
	}
	return nil
}

// trailingObject returns the span of line running from its first '{'
// to the '}' that ends the line, after stripping surrounding newlines,
// tabs and carriage returns.
func trailingObject(line []byte) ([]byte, bool) {
	line = bytes.Trim(line, "\n\t\r")
	if len(line) == 0 || line[len(line)-1] != '}' {
		return nil, false
	}
	i := bytes.IndexByte(line, '{')
	if i < 0 {
		return nil, false
	}
	return line[i:], true
}

func intField(fields map[string]gjson.Result, key string) (int64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrMissingField, key)
	}
	switch v.Type {
	case gjson.Number:
		// Plain integers are parsed from the raw text so they keep
		// full precision.
		if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return n, nil
		}
		// float64(math.MaxInt64) rounds up to 2^63, which does not
		// fit in an int64.
		if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < math.MaxInt64 {
			return int64(v.Num), nil
		}
	case gjson.String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w %q: want integer, got %s", ErrBadField, key, v.Raw)
}

func floatField(fields map[string]gjson.Result, key string) (float64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrMissingField, key)
	}
	switch v.Type {
	case gjson.Number:
		return v.Num, nil
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w %q: want number, got %s", ErrBadField, key, v.Raw)
}

// A Record is a single record read from a benchmark log. It may be a
// *Result or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file. If this record was not read
	// from a file, it returns "", 0.
	Pos() (fileName string, line int)
}

var _ Record = (*Result)(nil)
var _ Record = (*SyntaxError)(nil)

// Result returns the record that was just read by Scan. This is either
// a *Result or a *SyntaxError indicating a parse error.
//
// If this returns a *Result, the caller should not retain the Result,
// as it will be overwritten by the next call to Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		// This should only happen if Scan has never been called
		// or has returned false.
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
