package models

// SolarVerdict is the classifier's answer for one APOD entry. PrimaryBody is
// populated only when IsSolar is true and defaults to "Sun" when no specific
// body matched.
type SolarVerdict struct {
	IsSolar     bool   `json:"isSolar"`
	PrimaryBody string `json:"primaryBody,omitempty"`
}

// SolarMapBody is one plotted body in the 2D orrery projection.
type SolarMapBody struct {
	Name     string  `json:"name"`
	RadiusAU float64 `json:"radiusAu"`
	Size     int     `json:"size"` // relative marker size, not to scale
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Focus    bool    `json:"focus"`
}

// SolarMap is the plot-ready dataset for the solar-system context panel.
// Positions are a schematic projection, not ephemeris data.
type SolarMap struct {
	Focus  string         `json:"focus"`
	Bodies []SolarMapBody `json:"bodies"`
}
