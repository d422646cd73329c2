package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// backgroundHex is the neutral cell color for days without data
const backgroundHex = "#ebedf0"

// namedRamps maps ramp names to their base colors
var namedRamps = map[string]string{
	"green":  "#16a34a",
	"indigo": "#4f46e5",
	"orange": "#ea580c",
	"teal":   "#0d9488",
	"slate":  "#64748b",
}

// Scale maps daily values to cell colors. The mapping is monotonic: a higher
// value never produces a less intense color. Days without data render the
// plain background, which no present value can produce because present
// values are floored at MinIntensity.
type Scale struct {
	Base         color.RGBA
	Background   color.RGBA
	MinIntensity float64
}

// NewScale builds a scale from a ramp name or a #rrggbb literal
func NewScale(spec string, minIntensity float64) (Scale, error) {
	if minIntensity < 0 || minIntensity >= 1 {
		return Scale{}, fmt.Errorf("min intensity %v out of range [0,1)", minIntensity)
	}

	hex := spec
	if named, ok := namedRamps[strings.ToLower(strings.TrimSpace(spec))]; ok {
		hex = named
	}

	base, err := ParseHex(hex)
	if err != nil {
		return Scale{}, fmt.Errorf("invalid color scale %q: %w", spec, err)
	}

	background, err := ParseHex(backgroundHex)
	if err != nil {
		return Scale{}, err
	}

	return Scale{Base: base, Background: background, MinIntensity: minIntensity}, nil
}

// Intensity maps a daily value to [MinIntensity, 1] using a log curve, so a
// handful of busy days does not wash out the typical ones
func (s Scale) Intensity(value, max float64) float64 {
	if value < 0 {
		value = 0
	}

	intensity := 1.0
	if max > 0 {
		intensity = math.Log1p(value) / math.Log1p(max)
	}
	if intensity > 1 {
		intensity = 1
	}
	if intensity < s.MinIntensity {
		intensity = s.MinIntensity
	}
	return intensity
}

// Color returns the cell color for a present daily value
func (s Scale) Color(value, max float64) color.RGBA {
	return blend(s.Background, s.Base, s.Intensity(value, max))
}

// NoData returns the cell color for days without any rating event
func (s Scale) NoData() color.RGBA {
	return s.Background
}

// blend linearly interpolates from one color toward another
func blend(from, to color.RGBA, t float64) color.RGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-t) + float64(b)*t))
	}
	return color.RGBA{
		R: lerp(from.R, to.R),
		G: lerp(from.G, to.G),
		B: lerp(from.B, to.B),
		A: 0xff,
	}
}

// ParseHex parses a #rrggbb color literal
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("expected rrggbb, got %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("expected rrggbb, got %q", s)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
