// Package pipeline chains canvas preparation, analysis and recommendation
// lookup into one call.
package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/haneulpalette/haneul/internal/analysis"
	imgutil "github.com/haneulpalette/haneul/internal/image"
	"github.com/haneulpalette/haneul/internal/recommend"
)

// Config controls a Pipeline.
type Config struct {
	// CanvasSize is the side length of the letterboxed canvas.
	CanvasSize int
	// Analysis holds the classifier configuration.
	Analysis analysis.Config
}

// DefaultConfig returns the reference pipeline configuration.
func DefaultConfig() Config {
	return Config{
		CanvasSize: imgutil.DefaultCanvasSize,
		Analysis:   analysis.DefaultConfig(),
	}
}

// Pipeline turns decoded or on-disk portraits into reports. It is safe for
// concurrent use.
type Pipeline struct {
	size     int
	analyzer *analysis.Analyzer
	loader   imgutil.Loader
}

// New builds a Pipeline. loader is used by Load and may be nil when only
// Process is called.
func New(cfg Config, loader imgutil.Loader) (*Pipeline, error) {
	if cfg.CanvasSize <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %d", cfg.CanvasSize)
	}
	a, err := analysis.NewAnalyzer(cfg.Analysis)
	if err != nil {
		return nil, err
	}
	return &Pipeline{size: cfg.CanvasSize, analyzer: a, loader: loader}, nil
}

// CanvasSize returns the letterbox canvas side.
func (p *Pipeline) CanvasSize() int { return p.size }

// Process letterboxes img and analyses the canvas.
func (p *Pipeline) Process(img image.Image) (recommend.Report, error) {
	if img == nil {
		return recommend.Report{}, fmt.Errorf("%w: nil image", analysis.ErrInvalidRaster)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return recommend.Report{}, fmt.Errorf("%w: zero area (%dx%d)", analysis.ErrInvalidRaster, b.Dx(), b.Dy())
	}

	raster, err := analysis.NewRaster(imgutil.Letterbox(img, p.size))
	if err != nil {
		return recommend.Report{}, err
	}
	res, err := p.analyzer.Analyze(raster)
	if err != nil {
		return recommend.Report{}, err
	}
	return recommend.Build(res), nil
}

// Load reads path with the configured loader and processes it.
func (p *Pipeline) Load(ctx context.Context, path string) (recommend.Report, error) {
	if p.loader == nil {
		return recommend.Report{}, fmt.Errorf("pipeline has no loader")
	}
	img, err := p.loader.Load(ctx, path)
	if err != nil {
		return recommend.Report{}, err
	}
	return p.Process(img)
}
