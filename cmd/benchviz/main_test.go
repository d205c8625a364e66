// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchsel"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchval"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchviz"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db/dbtest"
)

type capturedFigure string

func (f capturedFigure) Name() string { return string(f) }

// captureBackend records chart titles instead of drawing anything.
type captureBackend struct {
	built []string
	shown int
}

func (b *captureBackend) Name() string { return "capture" }

func (b *captureBackend) Figure(c benchviz.Chart) (benchviz.Figure, error) {
	b.built = append(b.built, c.Title())
	return capturedFigure(c.Title()), nil
}

func (b *captureBackend) Show(figs []benchviz.Figure) error {
	b.shown = len(figs)
	return nil
}

// seedStore writes a file-backed store with two runs: run A with two
// latency scalars and a memory series, run B with one latency scalar.
func seedStore(t *testing.T) (path, runA, runB string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "store.db")
	d, err := db.OpenSQL("sqlite3", path)
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close()) }()

	start := time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC)
	runA = dbtest.MustCreateRun(t, d, "baseline", start)
	runB = dbtest.MustCreateRun(t, d, "tuned", start.Add(time.Hour))
	dbtest.MustInsert(t, d, runA, "latency", "", start, benchval.Scalar{Value: 2}, "sec")
	dbtest.MustInsert(t, d, runA, "latency", "", start, benchval.Scalar{Value: 4}, "sec")
	dbtest.MustInsert(t, d, runA, "memory", "heap", start,
		benchval.Series{XLabel: "sec", Xs: []float64{0, 1}, Values: []float64{5, 6}}, "byte")
	dbtest.MustInsert(t, d, runB, "latency", "", start.Add(time.Hour), benchval.Scalar{Value: 3}, "sec")
	return path, runA, runB
}

func TestVisualizeAllInteractive(t *testing.T) {
	store, _, _ := seedStore(t)
	// One prompt for the runs, one per run for its types, one per
	// run and type pair for the descriptions. Nil steps tick every
	// checkbox.
	script := benchsel.NewScript(nil, nil, nil, nil, nil, nil)
	b := &captureBackend{}

	err := visualize(context.Background(), store, benchsel.Criteria{}, script, benchviz.DefaultRegistry(), b)
	require.NoError(t, err)
	assert.Equal(t, []string{"latency", "memory"}, b.built)
	assert.Equal(t, 2, b.shown)
}

func TestVisualizeWithCriteria(t *testing.T) {
	store, runA, _ := seedStore(t)
	c := benchsel.Criteria{
		RunIDs:       []string{runA},
		Types:        []string{"latency"},
		Descriptions: []string{""},
	}
	b := &captureBackend{}

	// A zero-step script fails on any prompt, so this also proves
	// that fully given criteria ask nothing.
	err := visualize(context.Background(), store, c, benchsel.NewScript(), benchviz.DefaultRegistry(), b)
	require.NoError(t, err)
	assert.Equal(t, []string{"latency"}, b.built)
	assert.Equal(t, 1, b.shown)
}

func TestVisualizeNoMatch(t *testing.T) {
	store, _, _ := seedStore(t)
	c := benchsel.Criteria{RunIDs: []string{"no-such-run"}}
	b := &captureBackend{}

	err := visualize(context.Background(), store, c, benchsel.NewScript(), benchviz.DefaultRegistry(), b)
	assert.ErrorIs(t, err, benchsel.ErrNoMatch)
	assert.Empty(t, b.built)
}

func TestVisualizeEmptySelection(t *testing.T) {
	store, _, _ := seedStore(t)
	// Tick nothing at the run prompt. The later stages have nothing
	// left to offer, so no further prompts run and the command
	// succeeds without output.
	script := benchsel.NewScript([]string{})
	b := &captureBackend{}

	err := visualize(context.Background(), store, benchsel.Criteria{}, script, benchviz.DefaultRegistry(), b)
	require.NoError(t, err)
	assert.Empty(t, b.built)
	assert.Zero(t, b.shown)
}

func TestVisualizeUnregisteredType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	d, err := db.OpenSQL("sqlite3", path)
	require.NoError(t, err)
	start := time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC)
	run := dbtest.MustCreateRun(t, d, "", start)
	dbtest.MustInsert(t, d, run, "rocket", "", start, benchval.Scalar{Value: 1}, "m/s")
	require.NoError(t, d.Close())

	c := benchsel.Criteria{RunIDs: []string{run}, Types: []string{"rocket"}, Descriptions: []string{""}}
	b := &captureBackend{}

	err = visualize(context.Background(), path, c, benchsel.NewScript(), benchviz.DefaultRegistry(), b)
	assert.ErrorIs(t, err, benchviz.ErrNoRenderer)
	assert.Empty(t, b.built, "no figure may exist for a partially renderable selection")
}

func TestVisualizeCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	d, err := db.OpenSQL("sqlite3", path)
	require.NoError(t, err)
	start := time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC)
	run := dbtest.MustCreateRun(t, d, "", start)
	_, err = d.InsertMeasurement(context.Background(), run, "latency", "", start, []byte("not msgpack"), "sec")
	require.NoError(t, err)
	require.NoError(t, d.Close())

	c := benchsel.Criteria{RunIDs: []string{run}, Types: []string{"latency"}, Descriptions: []string{""}}
	b := &captureBackend{}

	err = visualize(context.Background(), path, c, benchsel.NewScript(), benchviz.DefaultRegistry(), b)
	assert.ErrorIs(t, err, benchval.ErrCorrupt)
	assert.Empty(t, b.built)
}
