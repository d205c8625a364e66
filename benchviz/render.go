// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchviz

import (
	"fmt"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchtab"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchval"
)

// flatRows gives columnar access to one measurement type group of the
// flat table.
type flatRows struct {
	typ    string
	ids    []int64
	runIDs []string
	descs  []string
	times  []time.Time
	values []benchval.Value
	units  []string
}

func newFlatRows(t *table.Table) flatRows {
	return flatRows{
		typ:    t.MustColumn(benchtab.ColType).([]string)[0],
		ids:    t.MustColumn(benchtab.ColID).([]int64),
		runIDs: t.MustColumn(benchtab.ColRunID).([]string),
		descs:  t.MustColumn(benchtab.ColDesc).([]string),
		times:  t.MustColumn(benchtab.ColTime).([]time.Time),
		values: t.MustColumn(benchtab.ColValue).([]benchval.Value),
		units:  t.MustColumn(benchtab.ColUnit).([]string),
	}
}

// runLabel derives a short display label from a run id and a
// measurement description. Run ids are usually UUIDs, so only their
// first block is shown.
func runLabel(runID, desc string) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	if desc == "" {
		return short
	}
	return short + " (" + desc + ")"
}

// ScalarRenderer draws one bar chart for a scalar measurement type.
// Measurements sharing a run and description are aggregated into one
// bar at their mean.
type ScalarRenderer struct{}

// Render implements Renderer.
func (ScalarRenderer) Render(t *table.Table) ([]Chart, error) {
	r := newFlatRows(t)
	type key struct{ run, desc string }
	var order []key
	samples := make(map[key][]float64)
	for i := range r.ids {
		s, ok := r.values[i].(benchval.Scalar)
		if !ok {
			return nil, fmt.Errorf("measurement %d: want scalar value, got %s", r.ids[i], r.values[i].Kind())
		}
		k := key{r.runIDs[i], r.descs[i]}
		if _, seen := samples[k]; !seen {
			order = append(order, k)
		}
		samples[k] = append(samples[k], s.Value)
	}
	chart := &BarChart{Name: r.typ, Unit: r.units[0]}
	for _, k := range order {
		mean := stats.Sample{Xs: samples[k]}.Mean()
		chart.Bars = append(chart.Bars, Bar{Label: runLabel(k.run, k.desc), Value: mean})
	}
	return []Chart{chart}, nil
}

// SeriesRenderer draws one line chart for a series measurement type,
// with one line per measurement.
type SeriesRenderer struct{}

// Render implements Renderer.
func (SeriesRenderer) Render(t *table.Table) ([]Chart, error) {
	r := newFlatRows(t)
	chart := &LineChart{Name: r.typ, Unit: r.units[0]}
	counts := make(map[string]int)
	for i := range r.ids {
		s, ok := r.values[i].(benchval.Series)
		if !ok {
			return nil, fmt.Errorf("measurement %d: want series value, got %s", r.ids[i], r.values[i].Kind())
		}
		if chart.XLabel == "" {
			chart.XLabel = s.XLabel
		}
		label := runLabel(r.runIDs[i], r.descs[i])
		counts[label]++
		if counts[label] > 1 {
			label = fmt.Sprintf("%s #%d", label, r.ids[i])
		}
		chart.Lines = append(chart.Lines, Line{Label: label, Xs: s.Xs, Ys: s.Values})
	}
	return []Chart{chart}, nil
}

// MatrixRenderer draws one heat map per matrix measurement.
type MatrixRenderer struct{}

// Render implements Renderer.
func (MatrixRenderer) Render(t *table.Table) ([]Chart, error) {
	r := newFlatRows(t)
	var charts []Chart
	for i := range r.ids {
		m, ok := r.values[i].(benchval.Matrix)
		if !ok {
			return nil, fmt.Errorf("measurement %d: want matrix value, got %s", r.ids[i], r.values[i].Kind())
		}
		charts = append(charts, &HeatMap{
			Name:   fmt.Sprintf("%s %s", r.typ, runLabel(r.runIDs[i], r.descs[i])),
			Labels: m.Labels,
			Cells:  m.Cells,
		})
	}
	return charts, nil
}
