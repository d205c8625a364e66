// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsel

import "fmt"

// A Script is a Prompter that replays canned selections in order, one
// per prompt. It drives the selection stages without a terminal, for
// tests and headless runs.
type Script struct {
	steps [][]string
	pos   int
}

// NewScript returns a Script that answers the nth prompt with the nth
// step. A nil step selects every presented option; a non-nil step
// selects the options it names, ignoring names not presented.
func NewScript(steps ...[]string) *Script {
	return &Script{steps: steps}
}

// MultiSelect implements Prompter.
func (s *Script) MultiSelect(message string, options []string) ([]string, error) {
	if s.pos >= len(s.steps) {
		return nil, fmt.Errorf("unexpected prompt %q", message)
	}
	step := s.steps[s.pos]
	s.pos++
	if step == nil {
		return append([]string(nil), options...), nil
	}
	want := make(map[string]bool, len(step))
	for _, v := range step {
		want[v] = true
	}
	var picked []string
	for _, opt := range options {
		if want[opt] {
			picked = append(picked, opt)
		}
	}
	return picked, nil
}
