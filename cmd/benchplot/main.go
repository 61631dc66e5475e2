// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot summarizes a benchmark log and plots the mean per-item
// time against the number of items.
//
// Usage:
//
//	benchplot -i bench.log [flags]
//
// Every line of the log must end in a JSON object carrying "items",
// "time" and "time/item"; anything before the object is ignored.
// Benchplot groups the lines by "items", computes the mean, standard
// deviation, minimum and maximum of "time/item" for each group, and
// shows the means on a logarithmic items axis in a window. The
// process exits when the window is closed.
//
// A malformed line stops the run with an error; no partial results
// are shown.
// Groups whose items value is not positive appear in the tables but
// are left off the chart with a warning.
//
// With -o, the chart is written to a file (png, svg, pdf, ...) instead
// of being shown. With --format, the per-group statistics are also
// printed as a text, CSV or HTML table.
//
// Flags may also be set through BENCHPLOT_* environment variables
// (for example BENCHPLOT_INPUT) or a config file given with --config.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/ssebench/benchplot/benchseries"
)

var exit = os.Exit // replaced during testing

var show = benchseries.Show // replaced during testing

func main() {
	log.SetPrefix("benchplot: ")
	log.SetFlags(0)
	if err := benchplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Print(err)
		code := 1
		var uerr usageError
		if errors.As(err, &uerr) {
			code = 2
		}
		exit(code)
	}
}

// A usageError is a problem with the command line rather than the
// input.
type usageError struct {
	error
}

func (e usageError) Unwrap() error { return e.error }

// config is the resolved configuration of one run.
type config struct {
	Input  string
	Output string
	Format string
	Title  string
	Width  float64 // centimetres
	Height float64 // centimetres
}

var formats = map[string]func(w io.Writer, s *benchseries.Series) error{
	"":     nil,
	"text": formatText,
	"csv":  formatCSV,
	"html": formatHTML,
}

// benchplot runs the command with the given arguments, writing status
// and tables to stdout and diagnostics to stderr.
func benchplot(stdout, stderr io.Writer, args []string) error {
	cmd, err := newCommand(stdout, stderr)
	if err != nil {
		return err
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newCommand(stdout, stderr io.Writer) (*cobra.Command, error) {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "benchplot -i bench.log",
		Short: "Plot per-item benchmark times from a benchmark log",
		Long: `Benchplot reads a benchmark log whose lines end in a JSON object with
"items", "time" and "time/item", computes per-items statistics of
"time/item", and plots the means on a logarithmic items axis.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			logger := log.New(stderr, "benchplot: ", 0)
			return run(cfg, stdout, logger)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{fmt.Errorf("%w (see benchplot --help)", err)}
	})

	f := cmd.Flags()
	f.StringP("input", "i", "", "benchmark log `file` to read (required)")
	f.StringP("output", "o", "", "write the chart to `file` instead of showing it; the extension selects the format")
	f.String("format", "", "also print per-items statistics as `text`, csv or html")
	f.String("title", "", "chart `title`")
	f.Float64("width", 16, "chart width in `cm`")
	f.Float64("height", 10, "chart height in `cm`")
	f.StringVar(&cfgFile, "config", "", "read flag defaults from config `file` (yaml, json or toml)")

	if err := v.BindPFlags(f); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("benchplot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd, nil
}

// loadConfig resolves flags, environment and config file into a
// config. Flags win over the environment, which wins over the file.
func loadConfig(v *viper.Viper, cfgFile string) (*config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	cfg := &config{
		Input:  v.GetString("input"),
		Output: v.GetString("output"),
		Format: strings.ToLower(v.GetString("format")),
		Title:  v.GetString("title"),
		Width:  v.GetFloat64("width"),
		Height: v.GetFloat64("height"),
	}
	if cfg.Input == "" {
		return nil, usageError{errors.New(`required flag "input" not set`)}
	}
	if _, ok := formats[cfg.Format]; !ok {
		return nil, usageError{fmt.Errorf("unknown format %q: want text, csv or html", cfg.Format)}
	}
	if !(cfg.Width > 0 && cfg.Height > 0) {
		return nil, usageError{fmt.Errorf("chart size %gx%g cm must be positive", cfg.Width, cfg.Height)}
	}
	return cfg, nil
}

func run(cfg *config, stdout io.Writer, logger *log.Logger) error {
	f, err := os.Open(cfg.Input)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Parsing %s\n", cfg.Input)

	b := benchseries.NewBuilder(&benchseries.BuilderOptions{Warn: logger.Printf})
	err = b.AddReader(f, cfg.Input)
	// The file is read-only, so closing it cannot lose data.
	f.Close()
	if err != nil {
		return err
	}
	s := b.Series()

	if format := formats[cfg.Format]; format != nil {
		if err := format(stdout, s); err != nil {
			return err
		}
	}

	opts := benchseries.DefaultChartOptions()
	opts.Title = cfg.Title
	opts.Warn = logger.Printf
	pl, err := benchseries.Chart(s, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}
	w, h := vg.Length(cfg.Width)*vg.Centimeter, vg.Length(cfg.Height)*vg.Centimeter
	if cfg.Output != "" {
		if err := benchseries.Save(pl, w, h, cfg.Output); err != nil {
			return err
		}
	} else {
		title := cfg.Title
		if title == "" {
			title = filepath.Base(cfg.Input)
		}
		show(title, benchseries.Render(pl, w, h))
	}

	fmt.Fprintln(stdout, "Done")
	return nil
}
