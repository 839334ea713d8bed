package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"skydeck/services/solar"
)

type SolarMapHandler struct{}

func NewSolarMapHandler() *SolarMapHandler {
	return &SolarMapHandler{}
}

// GetSolarMap serves the schematic orrery dataset. An absent focus defaults
// to the Sun; unknown focus values pass through and flag no body.
func (h *SolarMapHandler) GetSolarMap(w http.ResponseWriter, r *http.Request) {
	focus := strings.TrimSpace(r.URL.Query().Get("focus"))
	if focus == "" {
		focus = solar.DefaultBody
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(solar.Map(focus))
}
