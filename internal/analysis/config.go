package analysis

import "fmt"

// Config holds the sampling positions and classification thresholds.
// The defaults are empirical constants; they are not derived from any
// colour-science model.
type Config struct {
	// Cheek and Neck are the patches compared for undertone.
	Cheek Patch
	Neck  Patch

	// Face is the patch whose mean is the reference skin colour for the
	// face-shape mask.
	Face Patch

	// UndertoneDelta is the |cheekRB - neckRB| needed to call Warm or Cool.
	UndertoneDelta float64

	// LightLuminance and DeepLuminance bound the Medium depth band.
	LightLuminance float64
	DeepLuminance  float64

	// BrightContrast is the cheek luminance deviation above which the
	// colouring is Bright.
	BrightContrast float64

	// SkinDistance is the RGB distance under which a grid point is skin.
	SkinDistance float64

	// GridStride is the pixel step of the face-shape scan in both axes.
	GridStride int

	// RoundRatio, OvalRatio and HeartRatio are the descending width/height
	// bands of the face-shape classifier.
	RoundRatio float64
	OvalRatio  float64
	HeartRatio float64
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Cheek:          Patch{CX: 0.5, CY: 0.40, Size: 0.14},
		Neck:           Patch{CX: 0.5, CY: 0.78, Size: 0.16},
		Face:           Patch{CX: 0.5, CY: 0.40, Size: 0.28},
		UndertoneDelta: 12,
		LightLuminance: 160,
		DeepLuminance:  95,
		BrightContrast: 28,
		SkinDistance:   45,
		GridStride:     4,
		RoundRatio:     0.95,
		OvalRatio:      0.78,
		HeartRatio:     0.65,
	}
}

// Validate checks that the configuration can drive an analysis.
func (c Config) Validate() error {
	if c.GridStride < 1 {
		return fmt.Errorf("grid stride must be at least 1, got %d", c.GridStride)
	}
	for name, p := range map[string]Patch{"cheek": c.Cheek, "neck": c.Neck, "face": c.Face} {
		if p.CX < 0 || p.CX > 1 || p.CY < 0 || p.CY > 1 {
			return fmt.Errorf("%s patch centre out of range: (%g, %g)", name, p.CX, p.CY)
		}
		if p.Size <= 0 || p.Size > 1 {
			return fmt.Errorf("%s patch size must be in (0, 1], got %g", name, p.Size)
		}
	}
	if c.DeepLuminance > c.LightLuminance {
		return fmt.Errorf("deep luminance %g exceeds light luminance %g", c.DeepLuminance, c.LightLuminance)
	}
	if !(c.RoundRatio >= c.OvalRatio && c.OvalRatio >= c.HeartRatio) {
		return fmt.Errorf("face ratio bands must descend: round %g, oval %g, heart %g",
			c.RoundRatio, c.OvalRatio, c.HeartRatio)
	}
	return nil
}
