// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScaler(t *testing.T) {
	for _, test := range []struct {
		max    float64
		prefix string
	}{
		{0, ""},
		{0.5, "m"},
		{2, ""},
		{2500, "k"},
		{3.2e7, "M"},
		{4e9, "G"},
		{1e13, "T"},
		{5e-5, "µ"},
	} {
		assert.Equal(t, test.prefix, NewScaler(test.max).Prefix, "max %v", test.max)
	}
}

func TestScalerFormat(t *testing.T) {
	s := NewScaler(2500)
	assert.Equal(t, "2k", s.Format(2000))
	assert.Equal(t, "1.5k", s.Format(1500))
	assert.Equal(t, "0k", s.Format(0))

	assert.Equal(t, "42", Scaler{Factor: 1}.Format(42))
}

type namedFigure string

func (f namedFigure) Name() string { return string(f) }

func TestFileNames(t *testing.T) {
	names := fileNames([]Figure{
		namedFigure("latency"),
		namedFigure("images/sec"),
		namedFigure("latency"),
		namedFigure("latency"),
		namedFigure("confusion-matrix a (warm start)"),
	})
	assert.Equal(t, []string{
		"latency",
		"images-per-sec",
		"latency-2",
		"latency-3",
		"confusion-matrix-a-(warm-start)",
	}, names)
}
