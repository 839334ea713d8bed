package solar

import (
	"math"
	"strings"

	"skydeck/models"
)

// orreryBody is one plotted body in the schematic top-down map.
type orreryBody struct {
	name     string
	radiusAU float64
	size     int
}

// Plotted bodies, inner to outer. Radii are orbital semi-major axes in AU;
// sizes are marker weights for the frontend scatter plot.
var orreryBodies = []orreryBody{
	{"Sun", 0.0, 30},
	{"Mercury", 0.39, 8},
	{"Venus", 0.72, 10},
	{"Earth", 1.00, 12},
	{"Mars", 1.52, 11},
	{"Jupiter", 5.20, 25},
	{"Saturn", 9.58, 22},
	{"Uranus", 19.23, 18},
	{"Neptune", 30.10, 18},
}

// Map builds the schematic solar map. Bodies sit on their orbital radius at
// evenly spaced angles, so positions are illustrative rather than ephemeris
// data. The body matching focus (case-insensitive) is flagged; a focus that
// matches no plotted body, like the Moon, flags nothing.
func Map(focus string) models.SolarMap {
	focus = strings.TrimSpace(focus)
	for _, b := range orreryBodies {
		if strings.EqualFold(b.name, focus) {
			focus = b.name
			break
		}
	}

	n := len(orreryBodies)
	bodies := make([]models.SolarMapBody, n)
	for i, b := range orreryBodies {
		theta := 2 * math.Pi * float64(i) / float64(n)
		bodies[i] = models.SolarMapBody{
			Name:     b.name,
			RadiusAU: b.radiusAU,
			Size:     b.size,
			X:        b.radiusAU * math.Cos(theta),
			Y:        b.radiusAU * math.Sin(theta),
			Focus:    b.name == focus,
		}
	}

	return models.SolarMap{Focus: focus, Bodies: bodies}
}
