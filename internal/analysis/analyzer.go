package analysis

import "fmt"

// Result is the outcome of one analysis run.
type Result struct {
	Classification
	FaceShape FaceShape `json:"face_shape"`
}

// Analyzer runs the classifiers for a fixed configuration.
type Analyzer struct {
	config Config
}

// NewAnalyzer returns an Analyzer for config.
func NewAnalyzer(config Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis configuration: %w", err)
	}
	return &Analyzer{config: config}, nil
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.config
}

// Analyze classifies r. The only error is ErrInvalidRaster.
func (a *Analyzer) Analyze(r Raster) (Result, error) {
	if err := validRaster(r); err != nil {
		return Result{}, err
	}
	return Result{
		Classification: a.config.Classify(r),
		FaceShape:      a.config.EstimateFaceShape(r),
	}, nil
}

// Analyze runs the default analyzer over r.
func Analyze(r Raster) (Result, error) {
	a := &Analyzer{config: DefaultConfig()}
	return a.Analyze(r)
}
