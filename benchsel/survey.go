// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsel

import (
	"github.com/AlecAivazis/survey/v2"
)

// SurveyPrompter is the terminal Prompter. It presents each checkbox
// list with survey; space toggles an entry, enter confirms.
type SurveyPrompter struct{}

// MultiSelect implements Prompter.
func (SurveyPrompter) MultiSelect(message string, options []string) ([]string, error) {
	var picked []string
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return nil, err
	}
	return picked, nil
}
