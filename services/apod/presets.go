package apod

import "skydeck/models"

// presetEvents is the curated shortcut table for the dashboard's event
// picker. Labels double as lookup keys, so they must stay stable once
// published.
var presetEvents = []models.PresetEvent{
	{Label: "Saturn's Rings Appear to Disappear (2025-04-29)", Date: "2025-04-29"},
	{Label: "Comet Pons-Brooks in Northern Spring (2024-03-09)", Date: "2024-03-09"},
	{Label: "Luvovna Full moon (2022-07-15)", Date: "2022-07-15"},
	{Label: "Earth and the Moon (2021-09-05)", Date: "2021-09-05"},
	{Label: "GW Orionis: A Star System with Tilted Rings (2020-09-29)", Date: "2020-09-29"},
	{Label: "NGC 3717: A Nearly Sideways Spiral Galaxy (2019-11-12)", Date: "2019-11-12"},
	{Label: "NGC 7293: The Helix Nebula (2024-10-24)", Date: "2024-10-24"},
	{Label: "Reflections of the Ghost Nebula (2023-10-30)", Date: "2023-10-30"},
	{Label: "Hydrogen Clouds of M33 (2023-10-13)", Date: "2023-10-13"},
	{Label: "The Changing Ion Tail of Comet Pons-Brooks (2024-04-08)", Date: "2024-04-08"},
	{Label: "The Large Magellanic Cloud Galaxy (2024-10-02)", Date: "2024-10-02"},
	{Label: "Athena to the Moon (2025-02-28)", Date: "2025-02-28"},
	{Label: "Deimos Before Sunrise (2025-05-24)", Date: "2025-05-24"},
}

// Events returns the preset table in display order. Callers get a copy.
func Events() []models.PresetEvent {
	out := make([]models.PresetEvent, len(presetEvents))
	copy(out, presetEvents)
	return out
}

// lookupEvent resolves a preset label to its archive date.
func lookupEvent(label string) (string, bool) {
	for _, e := range presetEvents {
		if e.Label == label {
			return e.Date, true
		}
	}
	return "", false
}
