// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsel_test

import (
	"testing"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchsel"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchtab"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db"
)

var testStart = time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC)

func fixture() (*table.Table, *table.Table) {
	idx := benchtab.IndexTable([]db.IndexRow{
		{ID: 1, RunID: "a", Type: "latency", Description: "inference"},
		{ID: 2, RunID: "a", Type: "memory", Description: "training"},
		{ID: 3, RunID: "b", Type: "latency", Description: "inference"},
		{ID: 4, RunID: "b", Type: "latency", Description: ""},
	})
	runs := benchtab.RunTable([]db.RunRow{
		{RunID: "a", Description: "baseline", Start: testStart},
		{RunID: "b", Description: "", Start: testStart.Add(time.Hour)},
	})
	return idx, runs
}

func TestApplyCriteriaByType(t *testing.T) {
	idx, runs := fixture()
	gotIdx, gotRuns, err := benchsel.ApplyCriteria(idx, runs, benchsel.Criteria{Types: []string{"latency"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, benchtab.IDs(gotIdx))
	for _, typ := range gotIdx.MustColumn(benchtab.ColType).([]string) {
		assert.Equal(t, "latency", typ)
	}
	assert.Equal(t, 2, gotRuns.Len())
}

func TestApplyCriteriaConjunction(t *testing.T) {
	idx, runs := fixture()
	gotIdx, gotRuns, err := benchsel.ApplyCriteria(idx, runs, benchsel.Criteria{
		RunIDs: []string{"b"},
		Types:  []string{"latency"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, benchtab.IDs(gotIdx))
	// The run table only keeps runs that still have measurements.
	assert.Equal(t, []string{"b"}, benchtab.Distinct(gotRuns, benchtab.ColRunID))
}

func TestApplyCriteriaNoMatch(t *testing.T) {
	idx, runs := fixture()
	_, _, err := benchsel.ApplyCriteria(idx, runs, benchsel.Criteria{RunIDs: []string{"nonexistent"}})
	assert.ErrorIs(t, err, benchsel.ErrNoMatch)

	// Disjoint conjunction: both criteria exist but no row has both.
	_, _, err = benchsel.ApplyCriteria(idx, runs, benchsel.Criteria{
		RunIDs:       []string{"a"},
		Types:        []string{"latency"},
		Descriptions: []string{"training"},
	})
	assert.ErrorIs(t, err, benchsel.ErrNoMatch)
}

func TestSelectAllCriteriaGiven(t *testing.T) {
	idx, runs := fixture()
	// With every criterion supplied, no prompt may run; the script
	// fails on any prompt.
	gotIdx, _, err := benchsel.Select(idx, runs, benchsel.Criteria{
		RunIDs:       []string{"a", "b"},
		Types:        []string{"latency", "memory"},
		Descriptions: []string{"inference", "training", ""},
	}, benchsel.NewScript())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, benchtab.IDs(gotIdx))
}

func TestSelectRunStage(t *testing.T) {
	idx, runs := fixture()
	// Pick only run a by its full label; select everything at the
	// type and description stages.
	script := benchsel.NewScript(
		[]string{"a, 2021-04-12T09:30:00Z, description: baseline"},
		nil, // types for run a
		nil, // descriptions for a, latency
		nil, // descriptions for a, memory
	)
	gotIdx, gotRuns, err := benchsel.Select(idx, runs, benchsel.Criteria{}, script)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, benchtab.IDs(gotIdx))
	assert.Equal(t, []string{"a"}, benchtab.Distinct(gotRuns, benchtab.ColRunID))
}

func TestSelectNothingIsNotAnError(t *testing.T) {
	idx, runs := fixture()
	// Selecting no run empties the working set; the later stages
	// have nothing to present and are skipped.
	script := benchsel.NewScript([]string{})
	gotIdx, _, err := benchsel.Select(idx, runs, benchsel.Criteria{}, script)
	require.NoError(t, err)
	assert.Equal(t, 0, gotIdx.Len())
}

func TestSelectTypeStageScopedPerRun(t *testing.T) {
	idx, runs := fixture()
	// Runs are fixed by criteria, so the first prompt is the type
	// stage: one prompt per run, in run order (a then b). Pick
	// memory for a and nothing for b, then take all descriptions.
	script := benchsel.NewScript(
		[]string{"memory"},
		[]string{},
		nil,
	)
	gotIdx, _, err := benchsel.Select(idx, runs, benchsel.Criteria{RunIDs: []string{"a", "b"}}, script)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, benchtab.IDs(gotIdx))
}

func TestSelectEmptyDescriptionEntry(t *testing.T) {
	idx, runs := fixture()
	// Measurement 4 has no description; its checkbox reads "(none)".
	script := benchsel.NewScript(
		[]string{"(none)"}, // descriptions for run b, type latency
	)
	gotIdx, _, err := benchsel.Select(idx, runs, benchsel.Criteria{
		RunIDs: []string{"b"},
		Types:  []string{"latency"},
	}, script)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, benchtab.IDs(gotIdx))
}

// Full selections at every stage must equal applying the criteria
// directly: the stages only change what is presented, not the
// reachable row set.
func TestStagesComposeLikeFilters(t *testing.T) {
	idx, runs := fixture()
	script := benchsel.NewScript(nil, nil, nil, nil, nil, nil, nil)
	viaStages, _, err := benchsel.Select(idx, runs, benchsel.Criteria{}, script)
	require.NoError(t, err)

	viaCriteria, _, err := benchsel.ApplyCriteria(idx, runs, benchsel.Criteria{
		RunIDs:       benchtab.Distinct(idx, benchtab.ColRunID),
		Types:        benchtab.Distinct(idx, benchtab.ColType),
		Descriptions: benchtab.Distinct(idx, benchtab.ColDesc),
	})
	require.NoError(t, err)
	assert.Equal(t, benchtab.IDs(viaCriteria), benchtab.IDs(viaStages))
}
