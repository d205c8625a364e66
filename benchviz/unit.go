// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchviz

import (
	"math"
	"strconv"
)

// A Scaler represents a scaling factor for axis values and the SI
// prefix naming it. Tick labels divide by Factor and append Prefix,
// so large raw values stay readable next to their unit.
type Scaler struct {
	Factor float64 // unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // SI prefix ("k", "M", ...)
}

var siFactors = []Scaler{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
	{1e-9, "n"},
}

// NewScaler picks the scale at which values up to max print with at
// most four digits before the decimal point.
func NewScaler(max float64) Scaler {
	max = math.Abs(max)
	if max == 0 || math.IsNaN(max) || math.IsInf(max, 0) {
		return Scaler{Factor: 1}
	}
	for _, s := range siFactors {
		if max >= s.Factor {
			return s
		}
	}
	return siFactors[len(siFactors)-1]
}

// Format formats v at the scale.
func (s Scaler) Format(v float64) string {
	return strconv.FormatFloat(v/s.Factor, 'g', 4, 64) + s.Prefix
}
