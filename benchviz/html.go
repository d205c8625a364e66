// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchviz

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/safehtml/template"
	"github.com/sirupsen/logrus"
)

// HTMLBackend renders charts with go-echarts. Show writes one HTML
// page per figure under Dir plus an index.html linking them.
type HTMLBackend struct {
	Dir string
	log logrus.FieldLogger
}

// NewHTMLBackend returns an HTMLBackend writing into dir.
func NewHTMLBackend(dir string) *HTMLBackend {
	return &HTMLBackend{Dir: dir, log: logrus.WithField("backend", "html")}
}

// Name implements Backend.
func (b *HTMLBackend) Name() string { return "html" }

type htmlFigure struct {
	name  string
	chart interface {
		Render(w io.Writer) error
	}
}

func (f *htmlFigure) Name() string { return f.name }

// Figure implements Backend.
func (b *HTMLBackend) Figure(c Chart) (Figure, error) {
	fig := &htmlFigure{name: c.Title()}
	switch c := c.(type) {
	case *BarChart:
		fig.chart = htmlBars(c)
	case *LineChart:
		fig.chart = htmlLines(c)
	case *HeatMap:
		fig.chart = htmlHeatMap(c)
	default:
		return nil, fmt.Errorf("unknown chart type %T", c)
	}
	return fig, nil
}

var indexTmpl = template.Must(template.New("index").ParseFromTrustedTemplate(template.MakeTrustedTemplate(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Benchmark figures</title>
</head>
<body>
<h1>Benchmark figures</h1>
<ul>
{{range .}}<li><a href="{{.File}}">{{.Name}}</a></li>
{{end}}</ul>
</body>
</html>
`)))

// Show implements Backend.
func (b *HTMLBackend) Show(figs []Figure) error {
	if len(figs) == 0 {
		b.log.Info("no figures to display")
		return nil
	}
	if err := os.MkdirAll(b.Dir, 0777); err != nil {
		return err
	}
	names := fileNames(figs)
	type entry struct{ Name, File string }
	entries := make([]entry, len(figs))
	for i, f := range figs {
		hf := f.(*htmlFigure)
		file := names[i] + ".html"
		if err := b.writeFigure(filepath.Join(b.Dir, file), hf); err != nil {
			return err
		}
		entries[i] = entry{Name: f.Name(), File: file}
	}
	index := filepath.Join(b.Dir, "index.html")
	w, err := os.Create(index)
	if err != nil {
		return err
	}
	if err := indexTmpl.Execute(w, entries); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	b.log.WithField("index", index).Info("wrote figure index")
	return nil
}

func (b *HTMLBackend) writeFigure(file string, f *htmlFigure) error {
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := f.chart.Render(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	b.log.WithField("figure", file).Info("wrote figure")
	return nil
}

func htmlBars(c *BarChart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Name}),
		charts.WithTitleOpts(opts.Title{Title: c.Name}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.Unit}),
	)
	labels := make([]string, len(c.Bars))
	data := make([]opts.BarData, len(c.Bars))
	for i, b := range c.Bars {
		labels[i] = b.Label
		data[i] = opts.BarData{Value: b.Value}
	}
	bar.SetXAxis(labels).AddSeries(c.Name, data)
	return bar
}

func htmlLines(c *LineChart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Name}),
		charts.WithTitleOpts(opts.Title{Title: c.Name}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.Unit}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)
	// All lines of one chart share the x axis; the first line's
	// sample points label it.
	var labels []string
	if len(c.Lines) > 0 {
		labels = make([]string, len(c.Lines[0].Xs))
		for i, x := range c.Lines[0].Xs {
			labels[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
	}
	line.SetXAxis(labels)
	for _, ln := range c.Lines {
		data := make([]opts.LineData, len(ln.Ys))
		for i, y := range ln.Ys {
			data[i] = opts.LineData{Value: y}
		}
		line.AddSeries(ln.Label, data)
	}
	return line
}

func htmlHeatMap(c *HeatMap) *charts.HeatMap {
	var min, max float64
	data := make([]opts.HeatMapData, 0, len(c.Cells)*len(c.Cells))
	for row, cells := range c.Cells {
		for col, v := range cells {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			// Row 0 draws at the top.
			y := len(c.Cells) - 1 - row
			data = append(data, opts.HeatMapData{Value: [3]interface{}{col, y, v}})
		}
	}
	yLabels := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		yLabels[len(c.Labels)-1-i] = l
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Name}),
		charts.WithTitleOpts(opts.Title{Title: c.Name}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "predicted"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "actual", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(min),
			Max:        float32(max),
		}),
	)
	hm.SetXAxis(c.Labels).AddSeries(c.Name, data)
	return hm
}
