package main

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// cubeLevels are the six channel intensities of the xterm 6x6x6 color cube
// (palette indices 16-231).
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

const (
	cubeBase = 16
	rampBase = 232
)

// nearestCubeLevel returns the cube level index closest to v.
func nearestCubeLevel(v uint8) int {
	best := 0
	bestDist := 256
	for i, l := range cubeLevels {
		d := int(v) - int(l)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// nearestRampIndex returns the grayscale ramp step (0-23) closest to v.
// Ramp intensities are 8+10i (palette indices 232-255).
func nearestRampIndex(v int) int {
	i := (v - 3) / 10
	if i < 0 {
		i = 0
	}
	if i > 23 {
		i = 23
	}
	return i
}

func rampLevel(i int) uint8 { return uint8(8 + 10*i) }

func rgbColor(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// rgbToXterm maps a 24-bit color to the nearest xterm-256 palette index.
// Exactly gray inputs go straight to the grayscale ramp; everything else is
// quantized both onto the cube and onto the ramp and the closer candidate
// wins, with the cube taking ties. The 16 base colors are never produced:
// their meaning depends on the user's terminal theme.
func rgbToXterm(r, g, b uint8) uint8 {
	if r == g && g == b {
		return uint8(rampBase + nearestRampIndex(int(r)))
	}
	ri := nearestCubeLevel(r)
	gi := nearestCubeLevel(g)
	bi := nearestCubeLevel(b)
	cube := rgbColor(cubeLevels[ri], cubeLevels[gi], cubeLevels[bi])

	ramp := nearestRampIndex((int(r) + int(g) + int(b)) / 3)
	gray := rampLevel(ramp)

	in := rgbColor(r, g, b)
	if in.DistanceRgb(cube) <= in.DistanceRgb(rgbColor(gray, gray, gray)) {
		return uint8(cubeBase + 36*ri + 6*gi + bi)
	}
	return uint8(rampBase + ramp)
}

// parseHexColor parses a six-hex-digit color argument like "ff8800".
func parseHexColor(s string) (r, g, b uint8, err error) {
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("bad color argument %q", s)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return 0, 0, 0, err
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}
