// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchviz renders measurements recorded in a benchmark store.
//
// Usage:
//
//	benchviz [flags] store.db
//
// The store is a SQLite database written by the benchmark harness.
// Measurements are chosen by run id, measurement type and description.
// Each of the three can be fixed with a flag; for each one left open,
// benchviz asks interactively with a checkbox list, narrowing step by
// step: runs first, then the types available in the chosen runs, then
// the descriptions available per run and type.
//
// Only the chosen measurements have their payloads fetched and
// decoded. They are then drawn grouped by measurement type, either as
// PNG files (the native backend) or as an HTML report (the html
// backend).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchsel"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchtab"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchval"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchviz"
	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db"
	_ "github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db/sqlite3"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		runIDs      []string
		types       []string
		descs       []string
		backendName string
		out         string
	)
	cmd := &cobra.Command{
		Use:          "benchviz [flags] store.db",
		Short:        "render measurements from a benchmark store",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var backend benchviz.Backend
			switch backendName {
			case "native":
				backend = benchviz.NewNativeBackend(out)
			case "html":
				backend = benchviz.NewHTMLBackend(out)
			default:
				return fmt.Errorf("unknown backend %q (have native, html)", backendName)
			}
			c := benchsel.Criteria{RunIDs: runIDs, Types: types, Descriptions: descs}
			return visualize(cmd.Context(), args[0], c, benchsel.SurveyPrompter{}, benchviz.DefaultRegistry(), backend)
		},
	}
	cmd.Flags().StringSliceVarP(&runIDs, "runs", "u", nil, "run ids to include; asked interactively when omitted")
	cmd.Flags().StringSliceVarP(&types, "types", "t", nil, "measurement types to include; asked interactively when omitted")
	cmd.Flags().StringSliceVarP(&descs, "descriptions", "d", nil, "measurement descriptions to include; asked interactively when omitted")
	cmd.Flags().StringVarP(&backendName, "backend", "p", "native", "rendering backend, native or html")
	cmd.Flags().StringVarP(&out, "out", "o", "figures", "directory for rendered figures")
	return cmd
}

// visualize runs the whole pipeline: load the index, narrow it, fetch
// and decode the chosen payloads, render. Payloads of measurements the
// user never selected are never read.
func visualize(ctx context.Context, store string, c benchsel.Criteria, p benchsel.Prompter, reg *benchviz.Registry, backend benchviz.Backend) error {
	log := logrus.WithField("store", store)

	d, err := db.OpenSQL("sqlite3", store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer d.Close()

	idxRows, err := d.MeasurementIndex(ctx)
	if err != nil {
		return fmt.Errorf("load measurement index: %w", err)
	}
	runRows, err := d.Runs(ctx)
	if err != nil {
		return fmt.Errorf("load runs: %w", err)
	}
	log.WithFields(logrus.Fields{
		"measurements": len(idxRows),
		"runs":         len(runRows),
	}).Info("loaded measurement index")

	sel, runs, err := benchsel.Select(benchtab.IndexTable(idxRows), benchtab.RunTable(runRows), c, p)
	if err != nil {
		return err
	}
	ids := benchtab.IDs(sel)
	if len(ids) == 0 {
		log.Info("nothing selected")
		return nil
	}

	payloads, err := d.Payloads(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch payloads: %w", err)
	}
	flat, err := benchtab.Flatten(sel, runs, payloads, benchval.MsgpackCodec{})
	if err != nil {
		return err
	}

	figs, err := benchviz.Dispatch(flat, reg, backend)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"figures": len(figs),
		"backend": backend.Name(),
	}).Info("done")
	return nil
}
