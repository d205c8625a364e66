// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides a helper for opening and seeding a
// measurement store for tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchval"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db"
	_ "github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db/sqlite3"
)

// NewDB makes a connection to an in-memory testing database. cleanup
// must be called when done with the testing database, instead of
// calling db.Close().
func NewDB(t *testing.T) (*db.DB, func()) {
	t.Helper()
	d, err := db.OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return d, func() {
		if err := d.Close(); err != nil {
			t.Error(err)
		}
	}
}

// MustCreateRun records a run with a fresh ID and returns the ID.
func MustCreateRun(t *testing.T, d *db.DB, description string, start time.Time) string {
	t.Helper()
	id := uuid.NewString()
	if err := d.CreateRun(context.Background(), db.RunRow{RunID: id, Description: description, Start: start}); err != nil {
		t.Fatalf("create run: %v", err)
	}
	return id
}

// MustInsert records a measurement with the given decoded value and
// returns its ID.
func MustInsert(t *testing.T, d *db.DB, runID, typ, description string, tm time.Time, v benchval.Value, unit string) int64 {
	t.Helper()
	data, err := benchval.MsgpackCodec{}.Encode(v)
	if err != nil {
		t.Fatalf("encode value: %v", err)
	}
	id, err := d.InsertMeasurement(context.Background(), runID, typ, description, tm, data, unit)
	if err != nil {
		t.Fatalf("insert measurement: %v", err)
	}
	return id
}
