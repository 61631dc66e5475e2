// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ChartOptions controls the labels of a chart.
type ChartOptions struct {
	Title  string
	XLabel string
	YLabel string

	// Warn reports keys left off the chart. If nil, warnings are
	// dropped.
	Warn func(format string, args ...interface{})
}

// DefaultChartOptions returns the labels used when none are given.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{XLabel: "items", YLabel: "time/item"}
}

// margin is the fraction of the data range added above and below the
// line.
const margin = 0.05

const pointRad = 3

// Chart plots the mean per-item time of each key of s against the key,
// with the keys on a logarithmic axis.
//
// Keys that are not positive have no place on a log axis; they are
// left off the chart and reported through opts.Warn. A Series with
// nothing left to plot yields an empty chart.
func Chart(s *Series, opts ChartOptions) (*plot.Plot, error) {
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	var xys plotter.XYs
	for _, xy := range s.XYs() {
		if xy.X <= 0 {
			warn("items=%d: not positive, left off the log axis\n", int64(xy.X))
			continue
		}
		xys = append(xys, xy)
	}

	pl := plot.New()
	pl.Title.Text = opts.Title
	pl.X.Label.Text = opts.XLabel
	pl.Y.Label.Text = opts.YLabel

	pl.X.Scale = plot.LogScale{}
	pl.X.Tick.Marker = plot.LogTicks{Prec: -1}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	if len(xys) == 0 {
		warn("no measurements to plot\n")
		pl.X.Min, pl.X.Max = 1, 10
		pl.Y.Min, pl.Y.Max = 0, 1
		return pl, nil
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = blue(0xff)
	line.Width = vg.Points(1.5)
	points.Color = blue(0xff)
	points.Radius = pointRad
	pl.Add(line, points)

	keys := make([]float64, len(xys))
	means := make([]float64, len(xys))
	for i := range xys {
		keys[i], means[i] = xys[i].X, xys[i].Y
	}
	// gonum widens a flat range by ±1, which can reach zero on a log
	// axis. Widen a single key by a factor of two instead.
	lo, hi := stats.Bounds(keys)
	if lo == hi {
		lo, hi = lo/2, hi*2
	}
	pl.X.Min, pl.X.Max = lo, hi

	lo, hi = stats.Bounds(means)
	pad := (hi - lo) * margin
	pl.Y.Min, pl.Y.Max = lo-pad, hi+pad

	return pl, nil
}

// Render rasterizes pl onto a w×h image with a white background.
func Render(pl *plot.Plot, w, h vg.Length) image.Image {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseBackgroundColor(color.White))
	pl.Draw(draw.New(c))
	return c.Image()
}

// dpi is the resolution of saved PNG files.
const dpi = 150

// Save writes pl to the named file as a w×h chart. The format follows
// the file extension; PNG files get a white background.
func Save(pl *plot.Plot, w, h vg.Length, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	if strings.ToLower(filepath.Ext(path)) != ".png" {
		return pl.Save(w, h, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(can))
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func blue(alpha uint8) color.Color {
	return color.NRGBA{0x1f, 0x77, 0xb4, alpha}
}
