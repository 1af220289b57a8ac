package swarm

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownPalette is returned by ParsePalette for names outside the palette set.
var ErrUnknownPalette = errors.New("unknown palette")

// Palette identifies a cyclic set of anchor colors.
type Palette uint8

const (
	PaletteRainbow Palette = iota
	PaletteSunset
	PaletteOcean
	PaletteForest
	PaletteFire
	PaletteNeon
	paletteCount
)

var paletteNames = [paletteCount]string{"rainbow", "sunset", "ocean", "forest", "fire", "neon"}

var paletteAnchors = [paletteCount][]Color{
	PaletteRainbow: hexColors(0xff0000, 0xff7f00, 0xffff00, 0x00ff00, 0x0000ff, 0x8b00ff),
	PaletteSunset:  hexColors(0xff6b6b, 0xfeca57, 0xff9ff3, 0xf368e0),
	PaletteOcean:   hexColors(0x00d2d3, 0x54a0ff, 0x5f27cd, 0x341f97),
	PaletteForest:  hexColors(0x00b894, 0x55efc4, 0x81ecec, 0x00cec9),
	PaletteFire:    hexColors(0xff4757, 0xff6348, 0xffa502, 0xfffa65),
	PaletteNeon:    hexColors(0x00ff87, 0x60efff, 0xff00c3, 0xfff200),
}

func hexColors(hex ...uint32) []Color {
	out := make([]Color, len(hex))
	for i, h := range hex {
		out[i] = hexColor(h)
	}
	return out
}

// paletteDrift is how far the band moves across the population per second.
const paletteDrift = 0.1

// String returns the lowercase palette name.
func (p Palette) String() string {
	if p < paletteCount {
		return paletteNames[p]
	}
	return fmt.Sprintf("palette(%d)", uint8(p))
}

// Valid reports whether p names a known palette.
func (p Palette) Valid() bool {
	return p < paletteCount
}

// Next returns the palette after p in cycle order, wrapping at the end.
func (p Palette) Next() Palette {
	return (p + 1) % paletteCount
}

// Anchors returns a copy of the palette's anchor colors.
func (p Palette) Anchors() []Color {
	if !p.Valid() {
		return nil
	}
	return append([]Color(nil), paletteAnchors[p]...)
}

// Palettes returns every palette in cycle order.
func Palettes() []Palette {
	out := make([]Palette, paletteCount)
	for i := range out {
		out[i] = Palette(i)
	}
	return out
}

// ParsePalette maps a palette name to its Palette.
func ParsePalette(name string) (Palette, error) {
	for i, n := range paletteNames {
		if n == name {
			return Palette(i), nil
		}
	}
	return 0, fmt.Errorf("parse palette %q: %w", name, ErrUnknownPalette)
}

// MarshalText implements encoding.TextMarshaler.
func (p Palette) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("marshal %v: %w", p, ErrUnknownPalette)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Palette) UnmarshalText(text []byte) error {
	v, err := ParsePalette(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ColorAt returns the color of particle index out of count at time t. The
// palette band drifts across the population as t advances. Unknown palettes
// fall back to rainbow.
func ColorAt(p Palette, index, count int, t float64) Color {
	if !p.Valid() {
		p = PaletteRainbow
	}
	anchors := paletteAnchors[p]
	n := float64(len(anchors))

	var u float64
	if count > 0 {
		u = float64(index) / float64(count)
	}
	u = math.Mod(u+t*paletteDrift, 1)
	if u < 0 {
		u++
	}

	scaled := u * n
	seg := int(math.Floor(scaled))
	if seg >= len(anchors) {
		seg = len(anchors) - 1
	}
	frac := scaled - float64(seg)
	return anchors[seg].Lerp(anchors[(seg+1)%len(anchors)], frac)
}
