package analysis

// Classification holds the three tone labels and the measurements behind them.
type Classification struct {
	Undertone  Undertone  `json:"undertone"`
	Depth      Depth      `json:"depth"`
	Brightness Brightness `json:"brightness"`

	Cheek          ColorSample `json:"cheek_rgb"`
	Neck           ColorSample `json:"neck_rgb"`
	Delta          float64     `json:"delta"`
	CheekLuminance float64     `json:"cheek_luminance"`
	CheekContrast  float64     `json:"cheek_contrast"`
}

// UndertoneFor classifies the cheek-minus-neck red/blue difference.
// Both thresholds are strict, so ±threshold is Neutral.
func (c Config) UndertoneFor(delta float64) Undertone {
	switch {
	case delta > c.UndertoneDelta:
		return Warm
	case delta < -c.UndertoneDelta:
		return Cool
	default:
		return Neutral
	}
}

// DepthFor classifies cheek luminance.
func (c Config) DepthFor(lum float64) Depth {
	switch {
	case lum > c.LightLuminance:
		return Light
	case lum < c.DeepLuminance:
		return Deep
	default:
		return Medium
	}
}

// BrightnessFor classifies the population deviation of cheek luminance.
func (c Config) BrightnessFor(contrast float64) Brightness {
	if contrast > c.BrightContrast {
		return Bright
	}
	return Soft
}

// Classify samples the cheek and neck of r and assigns undertone, depth and
// brightness. The cheek is read once; its mean and per-pixel luminance
// deviation come from the same pixels.
//
// r must be non-nil with non-zero area; Analyze checks this before calling.
func (c Config) Classify(r Raster) Classification {
	cheek := SamplePatch(r, c.Cheek)
	neck := SamplePatch(r, c.Neck)

	delta := cheek.Mean.RedBlue() - neck.Mean.RedBlue()
	lum := cheek.Mean.Luminance()
	contrast := PopulationStdev(cheek.Luminances())

	return Classification{
		Undertone:      c.UndertoneFor(delta),
		Depth:          c.DepthFor(lum),
		Brightness:     c.BrightnessFor(contrast),
		Cheek:          cheek.Mean,
		Neck:           neck.Mean,
		Delta:          delta,
		CheekLuminance: lum,
		CheekContrast:  contrast,
	}
}

// Classify runs the default classifier over r.
func Classify(r Raster) Classification {
	return DefaultConfig().Classify(r)
}
