// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchval

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// envelope is the wire form of a payload: a msgpack map with a kind
// discriminator and the union of all kind-specific fields.
type envelope struct {
	Kind   string      `msgpack:"kind"`
	Value  float64     `msgpack:"value,omitempty"`
	XLabel string      `msgpack:"xlabel,omitempty"`
	Xs     []float64   `msgpack:"xs,omitempty"`
	Values []float64   `msgpack:"values,omitempty"`
	Labels []string    `msgpack:"labels,omitempty"`
	Cells  [][]float64 `msgpack:"cells,omitempty"`
}

// MsgpackCodec is the production Codec. The benchmark harness writes
// msgpack envelopes; see envelope for the field layout.
type MsgpackCodec struct{}

// Decode decodes data into a Value. Any failure, including an
// unknown kind, wraps ErrCorrupt.
func (MsgpackCodec) Decode(data []byte) (Value, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var v Value
	switch Kind(env.Kind) {
	case KindScalar:
		v = Scalar{Value: env.Value}
	case KindSeries:
		v = Series{XLabel: env.XLabel, Xs: env.Xs, Values: env.Values}
	case KindMatrix:
		v = Matrix{Labels: env.Labels, Cells: env.Cells}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrCorrupt, env.Kind)
	}
	if err := check(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return v, nil
}

// Encode encodes v into its wire form.
func (MsgpackCodec) Encode(v Value) ([]byte, error) {
	if err := check(v); err != nil {
		return nil, err
	}
	env := envelope{Kind: string(v.Kind())}
	switch v := v.(type) {
	case Scalar:
		env.Value = v.Value
	case Series:
		env.XLabel, env.Xs, env.Values = v.XLabel, v.Xs, v.Values
	case Matrix:
		env.Labels, env.Cells = v.Labels, v.Cells
	default:
		return nil, fmt.Errorf("unknown value type %T", v)
	}
	return msgpack.Marshal(env)
}
