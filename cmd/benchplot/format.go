// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/safehtml/template"

	"github.com/ssebench/benchplot/benchseries"
	"github.com/ssebench/benchplot/internal/texttab"
)

var columns = []string{"items", "n", "mean", "stddev", "min", "max"}

// summaryRow is one formatted row of the statistics table.
type summaryRow struct {
	Items, N, Mean, StdDev, Min, Max string
}

func (r summaryRow) cells() []string {
	return []string{r.Items, r.N, r.Mean, r.StdDev, r.Min, r.Max}
}

func summaryRows(s *benchseries.Series, prec int) []summaryRow {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', prec, 64) }
	rows := make([]summaryRow, 0, len(s.Keys))
	for _, k := range s.Keys {
		sum := s.Summaries[k]
		rows = append(rows, summaryRow{
			Items:  strconv.FormatInt(k, 10),
			N:      strconv.Itoa(sum.N),
			Mean:   f(sum.Mean),
			StdDev: f(sum.StdDev),
			Min:    f(sum.Min),
			Max:    f(sum.Max),
		})
	}
	return rows
}

// formatText prints the table with aligned columns. Next to the
// standard deviation it shows the deviation as a percentage of the mean.
func formatText(w io.Writer, s *benchseries.Series) error {
	var tab texttab.Table
	cells := func(cells ...string) {
		tab.Row().Cell(cells[0])
		for _, c := range cells[1:] {
			tab.Cell(c, texttab.Right)
		}
	}
	cells("items", "n", "mean", "stddev", "±", "min", "max")
	for i, row := range summaryRows(s, 4) {
		cells(row.Items, row.N, row.Mean, row.StdDev, s.Summaries[s.Keys[i]].PctDevString(), row.Min, row.Max)
	}
	return tab.Format(w)
}

func formatCSV(w io.Writer, s *benchseries.Series) error {
	cw := csv.NewWriter(w)
	cw.Write(columns)
	for _, row := range summaryRows(s, 6) {
		cw.Write(row.cells())
	}
	cw.Flush()
	return cw.Error()
}

const htmlSummary = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Benchmark summary</title>
<style>
.benchplot { border-collapse: collapse; }
.benchplot th { border-bottom: 1px solid #666; }
.benchplot td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
</style>
</head>
<body>
<table class="benchplot">
<tr><th>items<th>n<th>mean<th>stddev<th>min<th>max
{{range .}}<tr><td>{{.Items}}</td><td>{{.N}}</td><td>{{.Mean}}</td><td>{{.StdDev}}</td><td>{{.Min}}</td><td>{{.Max}}</td></tr>
{{end -}}
</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("summary").Parse(htmlSummary))

func formatHTML(w io.Writer, s *benchseries.Series) error {
	if err := htmlTemplate.Execute(w, summaryRows(s, 6)); err != nil {
		return fmt.Errorf("formatting HTML: %w", err)
	}
	return nil
}
