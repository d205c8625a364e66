// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchviz

import (
	"errors"
	"fmt"

	"github.com/aclements/go-gg/table"
)

// ErrNoRenderer reports a measurement type with no registered
// renderer. Rendering anything for such a type would silently drop
// data, so this is fatal.
var ErrNoRenderer = errors.New("no renderer registered for measurement type")

// A Renderer describes the flat rows of one measurement type as one
// or more charts.
type Renderer interface {
	Render(t *table.Table) ([]Chart, error)
}

// A Registry maps measurement types to their renderers.
type Registry struct {
	m map[string]Renderer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Renderer)}
}

// Register associates typ with r, replacing any previous renderer for
// typ.
func (reg *Registry) Register(typ string, r Renderer) {
	reg.m[typ] = r
}

// Lookup returns the renderer for typ, or an error wrapping
// ErrNoRenderer.
func (reg *Registry) Lookup(typ string) (Renderer, error) {
	r, ok := reg.m[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoRenderer, typ)
	}
	return r, nil
}

// DefaultRegistry returns a Registry with the renderers for every
// measurement type the benchmark harness records.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("time", ScalarRenderer{})
	reg.Register("latency", ScalarRenderer{})
	reg.Register("throughput", ScalarRenderer{})
	reg.Register("memory", SeriesRenderer{})
	reg.Register("cpu", SeriesRenderer{})
	reg.Register("loss", SeriesRenderer{})
	reg.Register("confusion-matrix", MatrixRenderer{})
	return reg
}
