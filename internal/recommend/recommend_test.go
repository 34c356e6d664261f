package recommend

import (
	"encoding/json"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/haneulpalette/haneul/internal/analysis"
	"github.com/haneulpalette/haneul/internal/colour"
)

func TestPaletteForEveryCell(t *testing.T) {
	seen := make(map[string]analysis.Undertone)
	for _, u := range analysis.Undertones {
		for _, d := range analysis.Depths {
			t.Run(u.String()+"/"+d.String(), func(t *testing.T) {
				p := PaletteFor(u, d)
				if len(p) != PaletteSize {
					t.Fatalf("PaletteFor() returned %d colours, want %d", len(p), PaletteSize)
				}
				for _, hex := range p {
					if !colour.IsHex(hex) {
						t.Errorf("palette entry %q is not a hex colour", hex)
					}
				}
				if prev, ok := seen[p[0]]; ok && prev != u {
					t.Errorf("palette %v shares its first colour with undertone %v", p, prev)
				}
				seen[p[0]] = u
			})
		}
	}
}

func TestMakeupForEveryCell(t *testing.T) {
	for _, u := range analysis.Undertones {
		for _, d := range analysis.Depths {
			m := MakeupFor(u, d)
			if m.LipName == "" || m.EyelinerName == "" {
				t.Errorf("MakeupFor(%v, %v) has empty names: %+v", u, d, m)
			}
			if !colour.IsHex(m.LipHex) || !colour.IsHex(m.BlushHex) {
				t.Errorf("MakeupFor(%v, %v) has invalid hex: %+v", u, d, m)
			}
		}
	}
}

func TestOutfitFor(t *testing.T) {
	for _, u := range analysis.Undertones {
		o := OutfitFor(u)
		if len(o) != OutfitSize {
			t.Errorf("OutfitFor(%v) returned %d colours, want %d", u, len(o), OutfitSize)
		}
		for _, hex := range o {
			if !colour.IsHex(hex) {
				t.Errorf("OutfitFor(%v) entry %q is not a hex colour", u, hex)
			}
		}
	}
}

func TestFallbackCell(t *testing.T) {
	neutral := PaletteFor(analysis.Neutral, analysis.Medium)

	if got := PaletteFor(analysis.Undertone(9), analysis.Light); !slices.Equal(got, neutral) {
		t.Errorf("PaletteFor(invalid undertone) = %v, want Neutral×Medium %v", got, neutral)
	}
	if got := PaletteFor(analysis.Warm, analysis.Depth(-1)); !slices.Equal(got, neutral) {
		t.Errorf("PaletteFor(invalid depth) = %v, want Neutral×Medium %v", got, neutral)
	}
	if got := MakeupFor(analysis.Undertone(-3), analysis.Deep); got != MakeupFor(analysis.Neutral, analysis.Medium) {
		t.Errorf("MakeupFor(invalid) = %+v, want Neutral×Medium", got)
	}
	if got := OutfitFor(analysis.Undertone(5)); !slices.Equal(got, OutfitFor(analysis.Neutral)) {
		t.Errorf("OutfitFor(invalid) = %v, want Neutral", got)
	}
	if got := Explain(analysis.Undertone(5)); got != Explain(analysis.Neutral) {
		t.Errorf("Explain(invalid) = %q, want the neutral explanation", got)
	}
}

func TestPaletteIsCopy(t *testing.T) {
	p := PaletteFor(analysis.Warm, analysis.Light)
	p[0] = "#000000"
	if PaletteFor(analysis.Warm, analysis.Light)[0] == "#000000" {
		t.Error("modifying a returned palette changed the table")
	}
}

func TestOutfitIgnoresDepth(t *testing.T) {
	for _, u := range analysis.Undertones {
		want := OutfitFor(u)
		for _, d := range analysis.Depths {
			got := Build(analysis.Result{Classification: analysis.Classification{Undertone: u, Depth: d}}).Outfit
			if !slices.Equal(got, want) {
				t.Errorf("outfit for %v/%v = %v, want %v", u, d, got, want)
			}
		}
	}
}

func TestBuildWarmMedium(t *testing.T) {
	// Cheek (200,140,100) over neck (180,150,120) on a 640×640 canvas.
	img := image.NewRGBA(image.Rect(0, 0, 640, 640))
	for y := 0; y < 640; y++ {
		c := color.RGBA{R: 200, G: 140, B: 100, A: 255}
		if y >= 400 {
			c = color.RGBA{R: 180, G: 150, B: 120, A: 255}
		}
		for x := 0; x < 640; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	r, err := analysis.NewRaster(img)
	if err != nil {
		t.Fatalf("NewRaster() returned error: %v", err)
	}
	res, err := analysis.Analyze(r)
	if err != nil {
		t.Fatalf("Analyze() returned error: %v", err)
	}

	rep := Build(res)
	want := Palette{"#FFDAB3", "#FFB27A", "#E87A3B", "#D9693A", "#C7623A", "#A84C2E"}
	if !slices.Equal(rep.Palette, want) {
		t.Errorf("Palette = %v, want Warm×Medium %v", rep.Palette, want)
	}
	if rep.Makeup.LipName != "warm rose" {
		t.Errorf("Makeup.LipName = %q, want %q", rep.Makeup.LipName, "warm rose")
	}
	if rep.Explanation != Explain(analysis.Warm) {
		t.Errorf("Explanation = %q", rep.Explanation)
	}
}

func TestReportJSON(t *testing.T) {
	rep := Build(analysis.Result{
		Classification: analysis.Classification{Undertone: analysis.Cool, Depth: analysis.Light, Brightness: analysis.Bright},
		FaceShape:      analysis.FaceShape{Shape: analysis.ShapeLongSquare, Tip: analysis.ShapeLongSquare.Tip()},
	})

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("json.Marshal() returned error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() returned error: %v", err)
	}

	checks := map[string]string{
		"undertone":  "Cool",
		"depth":      "Light",
		"brightness": "Bright",
	}
	for key, want := range checks {
		if got[key] != want {
			t.Errorf("%s = %v, want %q", key, got[key], want)
		}
	}
	shape, ok := got["face_shape"].(map[string]any)
	if !ok {
		t.Fatalf("face_shape missing or wrong type: %v", got["face_shape"])
	}
	if shape["name"] != "Long/Square" {
		t.Errorf("face_shape.name = %v, want Long/Square", shape["name"])
	}
	if palette, ok := got["palette"].([]any); !ok || len(palette) != PaletteSize {
		t.Errorf("palette = %v, want %d entries", got["palette"], PaletteSize)
	}
}
