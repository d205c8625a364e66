// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchval defines the decoded forms of measurement value
// payloads and the codec that produces them.
//
// A measurement row stores its value as an opaque binary blob whose
// format is owned by the benchmark harness that recorded it. This
// package is the only place that knows the wire format; everything
// else handles Values.
package benchval

import (
	"errors"
	"fmt"
)

// A Kind identifies the shape of a measurement value.
type Kind string

const (
	KindScalar Kind = "scalar"
	KindSeries Kind = "series"
	KindMatrix Kind = "matrix"
)

// A Value is the decoded payload of a single measurement.
type Value interface {
	Kind() Kind
}

// A Scalar is a single numeric measurement, such as a wall-clock time
// or a throughput figure.
type Scalar struct {
	Value float64
}

// Kind returns KindScalar.
func (Scalar) Kind() Kind { return KindScalar }

// A Series is a sampled sequence of values, such as memory usage over
// the lifetime of a run or loss over training epochs. Xs and Values
// have equal length.
type Series struct {
	// XLabel describes the x dimension ("seconds", "epoch", ...).
	XLabel string
	Xs     []float64
	Values []float64
}

// Kind returns KindSeries.
func (Series) Kind() Kind { return KindSeries }

// A Matrix is a square table of values with one label per row and
// column, typically a confusion matrix.
type Matrix struct {
	Labels []string
	Cells  [][]float64
}

// Kind returns KindMatrix.
func (Matrix) Kind() Kind { return KindMatrix }

// ErrCorrupt reports a payload that could not be decoded. Payloads
// are written by the benchmark harness and are trusted; failure to
// decode one means the store is damaged, so callers treat this as
// fatal.
var ErrCorrupt = errors.New("corrupt measurement payload")

// A Codec decodes stored payload bytes into Values. Implementations
// also encode, which is used by the recording side and by tests.
type Codec interface {
	Decode(data []byte) (Value, error)
	Encode(v Value) ([]byte, error)
}

// check validates the internal consistency of a decoded value.
func check(v Value) error {
	switch v := v.(type) {
	case Series:
		if len(v.Xs) != len(v.Values) {
			return fmt.Errorf("series has %d x values but %d y values", len(v.Xs), len(v.Values))
		}
	case Matrix:
		if len(v.Cells) != len(v.Labels) {
			return fmt.Errorf("matrix has %d labels but %d rows", len(v.Labels), len(v.Cells))
		}
		for i, row := range v.Cells {
			if len(row) != len(v.Labels) {
				return fmt.Errorf("matrix row %d has %d cells, want %d", i, len(row), len(v.Labels))
			}
		}
	}
	return nil
}
