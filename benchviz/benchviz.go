// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchviz turns selected measurements into figures.
//
// The flat measurement table is grouped by measurement type; each
// type has a registered Renderer that describes the group as one or
// more backend-neutral charts. A Backend then materializes the charts
// as figures and displays them. Two backends exist: native, which
// draws PNG files with gonum/plot, and html, which writes go-echarts
// pages.
package benchviz

import (
	"fmt"
	"strings"
)

// A Chart is a backend-neutral description of one figure.
type Chart interface {
	// Title returns the figure title.
	Title() string
}

// A Bar is one labeled value of a BarChart.
type Bar struct {
	Label string
	Value float64
}

// A BarChart compares scalar measurements across runs and
// descriptions.
type BarChart struct {
	Name string
	Unit string
	Bars []Bar
}

// Title returns the figure title.
func (c *BarChart) Title() string { return c.Name }

// A Line is one labeled series of a LineChart.
type Line struct {
	Label string
	Xs    []float64
	Ys    []float64
}

// A LineChart shows sampled series, one line per measurement.
type LineChart struct {
	Name   string
	XLabel string
	Unit   string
	Lines  []Line
}

// Title returns the figure title.
func (c *LineChart) Title() string { return c.Name }

// A HeatMap shows one labeled matrix, typically a confusion matrix.
type HeatMap struct {
	Name   string
	Labels []string
	Cells  [][]float64
}

// Title returns the figure title.
func (c *HeatMap) Title() string { return c.Name }

// A Figure is a chart materialized by a Backend, ready for display.
type Figure interface {
	// Name returns the title of the chart the figure was built
	// from.
	Name() string
}

// A Backend materializes charts as figures and displays them.
type Backend interface {
	// Name returns the backend's selection name.
	Name() string
	// Figure materializes one chart.
	Figure(c Chart) (Figure, error)
	// Show displays figures previously returned by Figure.
	Show(figs []Figure) error
}

// fileNames assigns a distinct file name (without extension) to each
// figure, derived from its title.
func fileNames(figs []Figure) []string {
	names := make([]string, len(figs))
	used := make(map[string]int)
	for i, f := range figs {
		name := sanitize(f.Name())
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s-%d", name, n+1)
		} else {
			used[name] = 1
		}
		names[i] = name
	}
	return names
}

func sanitize(name string) string {
	name = strings.ReplaceAll(name, "/", "-per-")
	name = strings.ReplaceAll(name, " ", "-")
	return name
}
