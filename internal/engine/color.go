package engine

import "fmt"

const (
	hueDegrees      = 360
	colorSaturation = 70
	colorLightness  = 60
	hashMultiplier  = 31
)

// ColorCache assigns each author email a stable, visually distinct color.
// The hue is derived from a polynomial rolling hash of the email, so the
// same email maps to the same color in every pass; saturation and lightness
// are fixed.
type ColorCache struct {
	colors map[string]string
}

// NewColorCache returns an empty color cache.
func NewColorCache() *ColorCache {
	return &ColorCache{colors: make(map[string]string)}
}

// Color returns the HSL color string for the given email, caching the
// result for the remainder of the pass.
func (c *ColorCache) Color(email string) string {
	if color, ok := c.colors[email]; ok {
		return color
	}

	color := fmt.Sprintf("hsl(%d, %d%%, %d%%)", Hue(email), colorSaturation, colorLightness)
	c.colors[email] = color

	return color
}

// Hue hashes an email into a hue in [0, 360). Overflow wraps, matching the
// uint32 polynomial hash the color scheme was designed around.
func Hue(email string) uint32 {
	var hash uint32
	for _, b := range []byte(email) {
		hash = hash*hashMultiplier + uint32(b)
	}

	return hash % hueDegrees
}
