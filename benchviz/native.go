// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchviz

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// NativeBackend draws charts with gonum/plot. Show writes one PNG per
// figure under Dir and reports the files written.
type NativeBackend struct {
	Dir string
	log logrus.FieldLogger
}

// NewNativeBackend returns a NativeBackend writing into dir.
func NewNativeBackend(dir string) *NativeBackend {
	return &NativeBackend{Dir: dir, log: logrus.WithField("backend", "native")}
}

// Name implements Backend.
func (b *NativeBackend) Name() string { return "native" }

type nativeFigure struct {
	name string
	plot *plot.Plot
}

func (f *nativeFigure) Name() string { return f.name }

// Figure implements Backend.
func (b *NativeBackend) Figure(c Chart) (Figure, error) {
	pl := plot.New()
	pl.Title.Text = c.Title()
	var err error
	switch c := c.(type) {
	case *BarChart:
		err = drawBars(pl, c)
	case *LineChart:
		err = drawLines(pl, c)
	case *HeatMap:
		err = drawHeatMap(pl, c)
	default:
		err = fmt.Errorf("unknown chart type %T", c)
	}
	if err != nil {
		return nil, err
	}
	return &nativeFigure{name: c.Title(), plot: pl}, nil
}

// Show implements Backend.
func (b *NativeBackend) Show(figs []Figure) error {
	if len(figs) == 0 {
		b.log.Info("no figures to display")
		return nil
	}
	if err := os.MkdirAll(b.Dir, 0777); err != nil {
		return err
	}
	names := fileNames(figs)
	for i, f := range figs {
		nf := f.(*nativeFigure)
		file := filepath.Join(b.Dir, names[i]+".png")
		w, err := os.Create(file)
		if err != nil {
			return err
		}
		can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(24*vg.Centimeter, 16*vg.Centimeter),
			vgimg.UseDPI(150),
			vgimg.UseBackgroundColor(color.White),
		)}
		nf.plot.Draw(draw.New(can))
		if _, err := can.WriteTo(w); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		b.log.WithField("figure", file).Info("wrote figure")
	}
	return nil
}

func drawBars(pl *plot.Plot, c *BarChart) error {
	values := make(plotter.Values, len(c.Bars))
	labels := make([]string, len(c.Bars))
	var max float64
	for i, bar := range c.Bars {
		values[i] = bar.Value
		labels[i] = bar.Label
		if v := bar.Value; v > max {
			max = v
		}
	}
	bars, err := plotter.NewBarChart(values, vg.Points(25))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)
	pl.Add(bars)
	pl.NominalX(labels...)
	pl.Y.Label.Text = c.Unit
	pl.Y.Tick.Marker = scaledTicks{NewScaler(max)}
	return nil
}

func drawLines(pl *plot.Plot, c *LineChart) error {
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	var max float64
	for i, ln := range c.Lines {
		xys := make(plotter.XYs, len(ln.Xs))
		for j := range ln.Xs {
			xys[j].X, xys[j].Y = ln.Xs[j], ln.Ys[j]
			if v := ln.Ys[j]; v > max {
				max = v
			}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(i)
		pl.Add(l)
		pl.Legend.Add(ln.Label, l)
	}
	pl.Legend.Top = true
	pl.X.Label.Text = c.XLabel
	pl.Y.Label.Text = c.Unit
	pl.Y.Tick.Marker = scaledTicks{NewScaler(max)}
	return nil
}

func drawHeatMap(pl *plot.Plot, c *HeatMap) error {
	pal := moreland.SmoothBlueRed().Palette(255)
	pl.Add(plotter.NewHeatMap(matrixGrid{c.Cells}, pal))

	n := len(c.Labels)
	xticks := make([]plot.Tick, n)
	yticks := make([]plot.Tick, n)
	for i, l := range c.Labels {
		xticks[i] = plot.Tick{Value: float64(i), Label: l}
		// Row 0 draws at the top.
		yticks[i] = plot.Tick{Value: float64(n - 1 - i), Label: l}
	}
	pl.X.Tick.Marker = plot.ConstantTicks(xticks)
	pl.Y.Tick.Marker = plot.ConstantTicks(yticks)
	pl.X.Label.Text = "predicted"
	pl.Y.Label.Text = "actual"
	return nil
}

// matrixGrid adapts matrix cells to the heat map's grid interface,
// flipping rows so the matrix reads top to bottom.
type matrixGrid struct {
	cells [][]float64
}

func (g matrixGrid) Dims() (int, int)   { return len(g.cells), len(g.cells) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }
func (g matrixGrid) Z(c, r int) float64 { return g.cells[len(g.cells)-1-r][c] }

// scaledTicks relabels the default ticks at a fixed SI scale.
type scaledTicks struct {
	s Scaler
}

func (t scaledTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		ticks[i].Label = t.s.Format(ticks[i].Value)
	}
	return ticks
}
