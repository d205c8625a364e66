// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab shapes measurement records into tables for
// filtering, selection and rendering.
//
// The working representation is a go-gg table: the measurement index
// and run metadata each become one table, selection narrows the index
// table, and the surviving rows are joined with their decoded
// payloads and run metadata into a single flat table that renderers
// consume.
package benchtab

import (
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db"
)

// Column names used across the index, run and flat tables.
const (
	ColID      = "id"
	ColRunID   = "run_id"
	ColType    = "measurement_type"
	ColDesc    = "description"
	ColTime    = "time"
	ColValue   = "value"
	ColUnit    = "unit"
	ColRunDesc = "run_description"
	ColRunTime = "run_start"
)

// IndexTable builds the measurement index table with columns id,
// run_id, measurement_type and description. Row order is preserved.
func IndexTable(rows []db.IndexRow) *table.Table {
	ids := make([]int64, len(rows))
	runIDs := make([]string, len(rows))
	types := make([]string, len(rows))
	descs := make([]string, len(rows))
	for i, r := range rows {
		ids[i], runIDs[i], types[i], descs[i] = r.ID, r.RunID, r.Type, r.Description
	}
	var b table.Builder
	b.Add(ColID, ids).Add(ColRunID, runIDs).Add(ColType, types).Add(ColDesc, descs)
	return b.Done()
}

// RunTable builds the run metadata table with columns run_id,
// run_description and run_start. Row order is preserved.
func RunTable(rows []db.RunRow) *table.Table {
	runIDs := make([]string, len(rows))
	descs := make([]string, len(rows))
	starts := make([]time.Time, len(rows))
	for i, r := range rows {
		runIDs[i], descs[i], starts[i] = r.RunID, r.Description, r.Start
	}
	var b table.Builder
	b.Add(ColRunID, runIDs).Add(ColRunDesc, descs).Add(ColRunTime, starts)
	return b.Done()
}

// root extracts the root table of a grouping produced by operating on
// an ungrouped table. If the grouping came out empty, root returns an
// empty table.
func root(g table.Grouping) *table.Table {
	if t := g.Table(table.RootGroupID); t != nil {
		return t
	}
	return new(table.Table)
}
