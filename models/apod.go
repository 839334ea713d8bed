package models

// Media types reported by the APOD API. Anything the API reports outside
// image/video is normalised to MediaTypeOther.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeOther = "other"
)

// APODEntry is one day's Astronomy Picture of the Day record. Entries are
// constructed only from complete upstream responses and never mutated after
// construction.
type APODEntry struct {
	Date        string `json:"date"`  // YYYY-MM-DD
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	MediaType   string `json:"mediaType"`       // "image" | "video" | "other"
	MediaURL    string `json:"mediaUrl"`
	HDURL       string `json:"hdUrl,omitempty"` // high-resolution variant, images only
}

// PresetEvent is a curated shortcut from a human-readable label to a known
// solar-system APOD date.
type PresetEvent struct {
	Label string `json:"label"`
	Date  string `json:"date"` // YYYY-MM-DD
}

// APODView is the composite payload the dashboard renders for one selection.
// The orrery dataset is attached only when the verdict is solar.
type APODView struct {
	Requested string       `json:"requested"` // "latest" or the concrete YYYY-MM-DD
	Cached    bool         `json:"cached"`
	Entry     APODEntry    `json:"entry"`
	Solar     SolarVerdict `json:"solar"`
	SolarMap  *SolarMap    `json:"solarMap,omitempty"`
}
