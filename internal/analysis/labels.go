package analysis

import (
	"fmt"
	"strings"
)

// Undertone is the warm/cool bias of the skin.
type Undertone int

const (
	Neutral Undertone = iota
	Warm
	Cool
)

// Undertones lists every undertone in display order.
var Undertones = []Undertone{Warm, Cool, Neutral}

func (u Undertone) String() string {
	switch u {
	case Warm:
		return "Warm"
	case Cool:
		return "Cool"
	case Neutral:
		return "Neutral"
	default:
		return fmt.Sprintf("Undertone(%d)", int(u))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u Undertone) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Undertone) UnmarshalText(b []byte) error {
	v, err := ParseUndertone(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// ParseUndertone parses a case-insensitive undertone name.
func ParseUndertone(s string) (Undertone, error) {
	for _, u := range Undertones {
		if strings.EqualFold(s, u.String()) {
			return u, nil
		}
	}
	return Neutral, fmt.Errorf("invalid undertone: %q (valid: warm, cool, neutral)", s)
}

// Depth is the lightness bucket of the skin.
type Depth int

const (
	Medium Depth = iota
	Light
	Deep
)

// Depths lists every depth from lightest to deepest.
var Depths = []Depth{Light, Medium, Deep}

func (d Depth) String() string {
	switch d {
	case Light:
		return "Light"
	case Medium:
		return "Medium"
	case Deep:
		return "Deep"
	default:
		return fmt.Sprintf("Depth(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Depth) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Depth) UnmarshalText(b []byte) error {
	v, err := ParseDepth(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDepth parses a case-insensitive depth name.
func ParseDepth(s string) (Depth, error) {
	for _, d := range Depths {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("invalid depth: %q (valid: light, medium, deep)", s)
}

// Brightness is the tonal contrast within the cheek.
type Brightness int

const (
	Soft Brightness = iota
	Bright
)

func (b Brightness) String() string {
	switch b {
	case Bright:
		return "Bright"
	case Soft:
		return "Soft"
	default:
		return fmt.Sprintf("Brightness(%d)", int(b))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Brightness) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Brightness) UnmarshalText(text []byte) error {
	for _, v := range []Brightness{Soft, Bright} {
		if strings.EqualFold(string(text), v.String()) {
			*b = v
			return nil
		}
	}
	return fmt.Errorf("invalid brightness: %q (valid: soft, bright)", text)
}

// Shape is a coarse face-shape bin.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeRound
	ShapeOval
	ShapeHeart
	ShapeLongSquare
)

func (s Shape) String() string {
	switch s {
	case ShapeRound:
		return "Round"
	case ShapeOval:
		return "Oval"
	case ShapeHeart:
		return "Heart"
	case ShapeLongSquare:
		return "Long/Square"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognised names
// decode to ShapeUnknown.
func (s *Shape) UnmarshalText(text []byte) error {
	*s = ShapeUnknown
	for _, v := range []Shape{ShapeRound, ShapeOval, ShapeHeart, ShapeLongSquare} {
		if strings.EqualFold(string(text), v.String()) {
			*s = v
		}
	}
	return nil
}

// Tip returns the styling advice for s.
func (s Shape) Tip() string {
	switch s {
	case ShapeRound:
		return "Soft layers and side-swept bangs add length to the face."
	case ShapeOval:
		return "Most styles suit oval faces; try long waves or blunt bob."
	case ShapeHeart:
		return "Side-parted styles and chin-length layers balance a heart shape."
	case ShapeLongSquare:
		return "Soft waves or choppy layers reduce the angular look."
	default:
		return "Try a clearer front-facing photo showing neck and hairline."
	}
}
