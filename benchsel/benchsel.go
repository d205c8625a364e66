// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchsel narrows the measurement index to the records the
// user wants rendered.
//
// Narrowing happens in two layers: explicit criteria supplied on the
// command line are applied first, then one interactive stage runs for
// each criterion that was not supplied. The stages compose: each
// enumerates its choices from the table as narrowed by everything
// before it.
package benchsel

import (
	"errors"
	"fmt"
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/benchtab"
)

// ErrNoMatch reports that explicit criteria matched no measurement.
var ErrNoMatch = errors.New("no measurements match the given run ids, types and descriptions")

// Criteria are the explicit selection criteria. A nil slice means the
// criterion was not supplied and its interactive stage should run.
type Criteria struct {
	RunIDs       []string
	Types        []string
	Descriptions []string
}

// A Prompter presents a checkbox list and reports which options the
// user ticked, in option order. Selecting nothing is a valid outcome.
// Implementations are the terminal prompt and the scripted prompter.
type Prompter interface {
	MultiSelect(message string, options []string) ([]string, error)
}

// ApplyCriteria narrows idx by each supplied criterion, combined
// conjunctively, and narrows runs to the run ids still present. If no
// measurement survives, ApplyCriteria fails with ErrNoMatch.
func ApplyCriteria(idx, runs *table.Table, c Criteria) (*table.Table, *table.Table, error) {
	if len(c.RunIDs) > 0 {
		idx = benchtab.FilterIn(idx, benchtab.ColRunID, c.RunIDs)
	}
	if len(c.Types) > 0 {
		idx = benchtab.FilterIn(idx, benchtab.ColType, c.Types)
	}
	if len(c.Descriptions) > 0 {
		idx = benchtab.FilterIn(idx, benchtab.ColDesc, c.Descriptions)
	}
	if idx.Len() == 0 {
		return nil, nil, ErrNoMatch
	}
	runs = benchtab.FilterIn(runs, benchtab.ColRunID, benchtab.Distinct(idx, benchtab.ColRunID))
	return idx, runs, nil
}

// Select applies the explicit criteria and then runs the interactive
// stage for each criterion that was not supplied: run selection, then
// measurement type selection scoped per run, then description
// selection scoped per run and type. The returned tables may be empty
// if the user selected nothing; that is not an error.
func Select(idx, runs *table.Table, c Criteria, p Prompter) (*table.Table, *table.Table, error) {
	idx, runs, err := ApplyCriteria(idx, runs, c)
	if err != nil {
		return nil, nil, err
	}
	sel := &Selector{Prompter: p}
	if c.RunIDs == nil {
		if idx, runs, err = sel.SelectRuns(idx, runs); err != nil {
			return nil, nil, err
		}
	}
	if c.Types == nil {
		if idx, err = sel.SelectTypes(idx); err != nil {
			return nil, nil, err
		}
	}
	if c.Descriptions == nil {
		if idx, err = sel.SelectDescriptions(idx); err != nil {
			return nil, nil, err
		}
	}
	return idx, runs, nil
}

// A Selector runs the interactive selection stages over a Prompter.
type Selector struct {
	Prompter Prompter
}

// SelectRuns presents one entry per run, labeled with its id, start
// time and description, and narrows both tables to the chosen runs.
func (s *Selector) SelectRuns(idx, runs *table.Table) (*table.Table, *table.Table, error) {
	if runs.Len() == 0 {
		return idx, runs, nil
	}
	runIDs := runs.MustColumn(benchtab.ColRunID).([]string)
	descs := runs.MustColumn(benchtab.ColRunDesc).([]string)
	starts := runs.MustColumn(benchtab.ColRunTime).([]time.Time)

	options := make([]string, len(runIDs))
	byLabel := make(map[string]string, len(runIDs))
	for i, id := range runIDs {
		label := fmt.Sprintf("%s, %s", id, starts[i].Format(time.RFC3339))
		if descs[i] != "" {
			label += ", description: " + descs[i]
		}
		options[i] = label
		byLabel[label] = id
	}

	picked, err := s.Prompter.MultiSelect("Select one or more runs.", options)
	if err != nil {
		return nil, nil, err
	}
	chosen := make([]string, 0, len(picked))
	for _, label := range picked {
		chosen = append(chosen, byLabel[label])
	}
	return benchtab.FilterIn(idx, benchtab.ColRunID, chosen),
		benchtab.FilterIn(runs, benchtab.ColRunID, chosen), nil
}

// SelectTypes presents the measurement types available within each
// remaining run, one checkbox list per run, and narrows idx to the
// rows behind the chosen entries.
func (s *Selector) SelectTypes(idx *table.Table) (*table.Table, error) {
	return s.selectEntries(idx, benchtab.ColType, func(keys []string) string {
		return fmt.Sprintf("Available types for run %s", keys[0])
	}, benchtab.ColRunID)
}

// SelectDescriptions presents the descriptions available within each
// remaining run and type pair and narrows idx to the rows behind the
// chosen entries.
func (s *Selector) SelectDescriptions(idx *table.Table) (*table.Table, error) {
	return s.selectEntries(idx, benchtab.ColDesc, func(keys []string) string {
		return fmt.Sprintf("Available descriptions for run %s, type %s", keys[0], keys[1])
	}, benchtab.ColRunID, benchtab.ColType)
}

// noneLabel stands in for an empty value in a checkbox list.
const noneLabel = "(none)"

func (s *Selector) selectEntries(idx *table.Table, entryCol string, message func(keys []string) string, groupCols ...string) (*table.Table, error) {
	var chosen []int64
	for _, group := range benchtab.Entries(idx, entryCol, groupCols...) {
		options := make([]string, len(group.Entries))
		byLabel := make(map[string][]int64, len(group.Entries))
		for i, e := range group.Entries {
			label := e.Value
			if label == "" {
				label = noneLabel
			}
			options[i] = label
			byLabel[label] = e.IDs
		}
		picked, err := s.Prompter.MultiSelect(message(group.Keys), options)
		if err != nil {
			return nil, err
		}
		for _, label := range picked {
			chosen = append(chosen, byLabel[label]...)
		}
	}
	if idx.Len() == 0 {
		return idx, nil
	}
	return benchtab.FilterIDs(idx, chosen), nil
}
