// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchval"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db"
)

// Flatten decodes the payload rows and joins them onto the narrowed
// index table by id, then joins the run metadata by run_id. The
// result has one row per row of idx, carrying every column a renderer
// needs: id, run_id, measurement_type, description, time, value,
// unit, run_description and run_start.
//
// Payloads must cover every id in idx; a gap means the store is
// inconsistent. A decode failure is reported as is, wrapping
// benchval.ErrCorrupt.
func Flatten(idx, runs *table.Table, payloads []db.PayloadRow, codec benchval.Codec) (*table.Table, error) {
	ids := make([]int64, len(payloads))
	times := make([]time.Time, len(payloads))
	values := make([]benchval.Value, len(payloads))
	units := make([]string, len(payloads))
	for i, p := range payloads {
		v, err := codec.Decode(p.Value)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: %w", p.ID, err)
		}
		ids[i], times[i], values[i], units[i] = p.ID, p.Time, v, p.Unit
	}
	var b table.Builder
	b.Add(ColID, ids).Add(ColTime, times).Add(ColValue, values).Add(ColUnit, units)

	flat := root(table.Join(idx, ColID, b.Done(), ColID))
	flat = root(table.Join(flat, ColRunID, runs, ColRunID))
	if flat.Len() != idx.Len() {
		return nil, fmt.Errorf("store is missing payload or run rows: joined %d of %d measurements", flat.Len(), idx.Len())
	}
	return flat, nil
}
