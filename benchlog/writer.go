// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"
)

// A Writer writes benchmark log lines in the format the benchmark
// logger emits: a bracketed timestamp followed by the JSON record.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	// Message is written as the "message" key of every record.
	Message string

	// Now returns the timestamp of the next line. It defaults to
	// time.Now.
	Now func() time.Time
}

// NewWriter returns a writer that writes benchmark log lines to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, Now: time.Now}
}

// Write writes Record rec to w. Syntax errors are ignored.
func (w *Writer) Write(rec Record) error {
	switch rec := rec.(type) {
	case *Result:
		w.writeResult(rec)
	case *SyntaxError:
		// Ignore
		return nil
	default:
		return fmt.Errorf("unknown Record type %T", rec)
	}

	// Write to the buffer can't fail, so we only have to check if
	// this fails.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) writeResult(res *Result) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	fmt.Fprintf(&w.buf, "[%s] { \"message\" : %s, ", now().Format("2006-01-02 15:04:05.000"), strconv.Quote(w.Message))
	fmt.Fprintf(&w.buf, "%q : %d, ", ItemsKey, res.Items)
	fmt.Fprintf(&w.buf, "%q : %s, ", TimeKey, formatFloat(res.Time))
	fmt.Fprintf(&w.buf, "%q : %s }\n", TimePerItemKey, formatFloat(res.TimePerItem))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
