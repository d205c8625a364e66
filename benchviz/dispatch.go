// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchviz

import (
	"fmt"

	"github.com/aclements/go-gg/table"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchtab"
)

// Dispatch groups the flat measurement table by measurement type,
// renders each group with its registered renderer, materializes the
// charts on b and displays them. It returns the displayed figures.
//
// Every group's type is resolved against the registry before any
// rendering happens, so a missing renderer can never leave partial
// output behind. An empty table dispatches nothing and succeeds.
func Dispatch(flat *table.Table, reg *Registry, b Backend) ([]Figure, error) {
	if flat.Len() == 0 {
		return nil, nil
	}
	groups := table.GroupBy(flat, benchtab.ColType)

	type job struct {
		typ string
		t   *table.Table
		r   Renderer
	}
	var jobs []job
	for _, gid := range groups.Tables() {
		gt := groups.Table(gid)
		v, _ := gt.Const(benchtab.ColType)
		typ, _ := v.(string)
		r, err := reg.Lookup(typ)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{typ, gt, r})
	}

	var figs []Figure
	for _, j := range jobs {
		// A renderer may yield one chart or several; the figure
		// list is flat either way.
		charts, err := j.r.Render(j.t)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", j.typ, err)
		}
		for _, c := range charts {
			fig, err := b.Figure(c)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", j.typ, err)
			}
			figs = append(figs, fig)
		}
	}
	if err := b.Show(figs); err != nil {
		return figs, err
	}
	return figs, nil
}
