// Copyright 2025 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package plot renders the diagnostic artifacts of a sample sequence:
// a scatter of the leading samples, a QQ plot against the fitted normal
// and a scaled histogram.
package plot

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/scylladb/gaussbench/pkg/distributions"
	"github.com/scylladb/gaussbench/pkg/stats"
)

const (
	DefaultScatterPoints = 60000
	DefaultHistogramBins = 100

	// 1920x1080 at the 96 DPI used for PNG output.
	DefaultWidth  = 20 * vg.Inch
	DefaultHeight = 11.25 * vg.Inch
)

var (
	sampleColor    = color.RGBA{B: 255, A: 255}
	referenceColor = color.RGBA{R: 255, A: 255}
)

type Config struct {
	OutDir        string
	ScatterPoints int
	HistogramBins int
	Width         vg.Length
	Height        vg.Length
}

func DefaultConfig() Config {
	return Config{
		OutDir:        "plots",
		ScatterPoints: DefaultScatterPoints,
		HistogramBins: DefaultHistogramBins,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
	}
}

func (c Config) Validate() error {
	if c.OutDir == "" {
		return errors.New("plot output directory is required")
	}
	if c.ScatterPoints < 1 {
		return errors.Errorf("scatter points must be positive, got %d", c.ScatterPoints)
	}
	if c.HistogramBins < 1 {
		return errors.Errorf("histogram bins must be positive, got %d", c.HistogramBins)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid canvas size %vx%v", c.Width, c.Height)
	}
	return nil
}

// Plotter writes scatter_<slug>.png, qqplot_<slug>.png and
// histogram_<slug>.png into the configured directory.
type Plotter struct {
	logger *zap.Logger
	cfg    Config
}

func New(cfg Config, logger *zap.Logger) (*Plotter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create plot directory %s", cfg.OutDir)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Plotter{cfg: cfg, logger: logger}, nil
}

// Artifacts lists the files Plot writes for a method name.
func (p *Plotter) Artifacts(name string) []string {
	slug := distributions.Slug(name)
	return []string{
		filepath.Join(p.cfg.OutDir, "scatter_"+slug+".png"),
		filepath.Join(p.cfg.OutDir, "qqplot_"+slug+".png"),
		filepath.Join(p.cfg.OutDir, "histogram_"+slug+".png"),
	}
}

// Plot renders the three artifacts concurrently. samples is only read.
func (p *Plotter) Plot(ctx context.Context, samples []float64, scale float64, name string) error {
	if len(samples) == 0 {
		return stats.ErrEmptySequence
	}

	paths := p.Artifacts(name)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.render(gCtx, paths[0], func() (*gplot.Plot, error) {
			return p.scatter(samples, name)
		})
	})
	g.Go(func() error {
		return p.render(gCtx, paths[1], func() (*gplot.Plot, error) {
			return qq(samples, name)
		})
	})
	g.Go(func() error {
		return p.render(gCtx, paths[2], func() (*gplot.Plot, error) {
			return p.histogram(samples, scale, name)
		})
	})

	return g.Wait()
}

func (p *Plotter) render(ctx context.Context, path string, build func() (*gplot.Plot, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	pl, err := build()
	if err != nil {
		return errors.Wrapf(err, "failed to build %s", filepath.Base(path))
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	if err = pl.Save(p.cfg.Width, p.cfg.Height, path); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}

	p.logger.Debug("artifact written",
		zap.String("path", path),
		zap.Duration("took", time.Since(start)),
	)

	return nil
}

func (p *Plotter) scatter(samples []float64, name string) (*gplot.Plot, error) {
	n := min(len(samples), p.cfg.ScatterPoints)

	xys := make(plotter.XYs, n)
	for i := range n {
		xys[i].X = float64(i) / float64(p.cfg.ScatterPoints)
		xys[i].Y = samples[i]
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = sampleColor
	s.GlyphStyle.Radius = vg.Points(1)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	pl := gplot.New()
	pl.Title.Text = fmt.Sprintf("Scatter %s, %d points", name, n)
	pl.X.Min, pl.X.Max = 0, 1
	pl.Add(s)

	return pl, nil
}

func qq(samples []float64, name string) (*gplot.Plot, error) {
	points, err := stats.QQTransform(samples)
	if err != nil {
		return nil, err
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.Rank
		xys[i].Y = pt.Value
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = sampleColor
	s.GlyphStyle.Radius = vg.Points(1)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	diagonal := plotter.NewFunction(func(x float64) float64 { return x })
	diagonal.Color = referenceColor

	pl := gplot.New()
	pl.Title.Text = "QQ Plot " + name
	pl.X.Label.Text = "rank"
	pl.Y.Label.Text = "fitted CDF"
	pl.X.Min, pl.X.Max = 0, 1
	pl.Y.Min, pl.Y.Max = 0, 1
	pl.Add(s, diagonal)

	return pl, nil
}

// histogram scales each bar to count * bins / n * scale.
func (p *Plotter) histogram(samples []float64, scale float64, name string) (*gplot.Plot, error) {
	h, err := plotter.NewHist(plotter.Values(samples), p.cfg.HistogramBins)
	if err != nil {
		return nil, err
	}

	factor := float64(p.cfg.HistogramBins) / float64(len(samples)) * scale
	for i := range h.Bins {
		h.Bins[i].Weight *= factor
	}
	h.FillColor = sampleColor
	h.LineStyle.Width = vg.Length(0)

	pl := gplot.New()
	pl.Title.Text = "Histogram " + name
	pl.Y.Min = 0
	pl.Add(h)

	return pl, nil
}
