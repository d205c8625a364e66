// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"github.com/aclements/go-gg/table"
)

// FilterIn narrows t to the rows whose value in col is a member of
// vals.
func FilterIn(t *table.Table, col string, vals []string) *table.Table {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return root(table.Filter(t, func(v string) bool { return set[v] }, col))
}

// FilterIDs narrows t to the rows whose id column is a member of ids.
func FilterIDs(t *table.Table, ids []int64) *table.Table {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return root(table.Filter(t, func(id int64) bool { return set[id] }, ColID))
}

// Distinct returns the distinct values of the string column col in
// first-appearance order.
func Distinct(t *table.Table, col string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range t.MustColumn(col).([]string) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// IDs returns a copy of the id column of t.
func IDs(t *table.Table) []int64 {
	return append([]int64(nil), t.MustColumn(ColID).([]int64)...)
}

// An Entry is one selectable item: the distinct value it stands for
// and the ids of the rows carrying that value.
type Entry struct {
	Value string
	IDs   []int64
}

// An EntryGroup is the set of entries sharing one combination of
// grouping column values.
type EntryGroup struct {
	// Keys holds the shared value of each grouping column, in the
	// order the columns were given.
	Keys    []string
	Entries []Entry
}

// Entries enumerates the distinct values of entryCol within each
// group of rows sharing the groupCols values, in row order. This is
// the shape the interactive selection stages present: one group per
// header, one entry per checkbox.
func Entries(t *table.Table, entryCol string, groupCols ...string) []EntryGroup {
	if t.Len() == 0 {
		return nil
	}
	var out []EntryGroup
	groups := table.GroupBy(t, groupCols...)
	for _, gid := range groups.Tables() {
		gt := groups.Table(gid)
		eg := EntryGroup{Keys: make([]string, len(groupCols))}
		for i, col := range groupCols {
			v, _ := gt.Const(col)
			eg.Keys[i], _ = v.(string)
		}
		sub := table.GroupBy(gt, entryCol)
		for _, sgid := range sub.Tables() {
			st := sub.Table(sgid)
			v, _ := st.Const(entryCol)
			val, _ := v.(string)
			eg.Entries = append(eg.Entries, Entry{Value: val, IDs: IDs(st)})
		}
		out = append(out, eg)
	}
	return out
}
