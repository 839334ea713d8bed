package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"skydeck/config"
	apodpkg "skydeck/services/apod"
	"skydeck/services/solar"
)

type SettingsHandler struct {
	Manager     *config.Manager
	APODService *apodpkg.Service
	Classifier  *solar.Classifier
}

func NewSettingsHandler(m *config.Manager) *SettingsHandler {
	return &SettingsHandler{Manager: m}
}

// SetAPODService sets the pipeline service for hot reloading client configuration
func (h *SettingsHandler) SetAPODService(s *apodpkg.Service) {
	h.APODService = s
}

// SetClassifier sets the classifier for hot reloading exclusion dates
func (h *SettingsHandler) SetClassifier(c *solar.Classifier) {
	h.Classifier = c
}

// SettingsResponse wraps config.Settings with runtime information. The API
// key never leaves the server; APIKeySet tells the frontend whether one is
// configured.
type SettingsResponse struct {
	config.Settings
	APIKeySet bool `json:"apiKeySet"`
}

func redactedResponse(s config.Settings) SettingsResponse {
	resp := SettingsResponse{Settings: s, APIKeySet: strings.TrimSpace(s.NASA.APIKey) != ""}
	resp.NASA.APIKey = ""
	return resp
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Manager.Load()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(redactedResponse(s))
}

func (h *SettingsHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	current, _ := h.Manager.Load()

	var s config.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	// GET responses redact the key, so an empty key on PUT means "keep the
	// stored one".
	if strings.TrimSpace(s.NASA.APIKey) == "" {
		s.NASA.APIKey = current.NASA.APIKey
	}

	if err := validateExclusionDates(s.Solar.ExtraExcludeDates); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error(), "code": "invalid_date"})
		return
	}

	if err := h.Manager.Save(s); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	h.reloadServices(s)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(redactedResponse(s))
}

// reloadServices reloads services that cache configuration at startup
func (h *SettingsHandler) reloadServices(s config.Settings) {
	if h.APODService != nil {
		h.APODService.UpdateConfig(s.NASA.EffectiveAPIKey(), s.NASA.BaseURL, s.NASA.CacheTTL(), s.NASA.FetchTimeout())
		log.Printf("[settings] reloaded apod client configuration")
	}
	if h.Classifier != nil {
		h.Classifier.SetExtraExclusions(s.Solar.ExtraExcludeDates)
		log.Printf("[settings] reloaded classifier exclusions (%d extra date(s))", len(s.Solar.ExtraExcludeDates))
	}
}

// ExclusionsResponse lists the active exclusion dates. Dates is the full
// list the classifier applies; Extra is the operator-curated portion.
type ExclusionsResponse struct {
	Dates []string `json:"dates"`
	Extra []string `json:"extra"`
}

// exclusionsRequest is the PUT body: the full replacement list of extra
// exclusion dates.
type exclusionsRequest struct {
	Dates []string `json:"dates"`
}

func (h *SettingsHandler) GetExclusions(w http.ResponseWriter, r *http.Request) {
	s, err := h.Manager.Load()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ExclusionsResponse{
		Dates: h.activeExclusions(s),
		Extra: s.Solar.ExtraExcludeDates,
	})
}

func (h *SettingsHandler) PutExclusions(w http.ResponseWriter, r *http.Request) {
	var req exclusionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	cleaned := make([]string, 0, len(req.Dates))
	for _, d := range req.Dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		cleaned = append(cleaned, d)
	}
	if err := validateExclusionDates(cleaned); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error(), "code": "invalid_date"})
		return
	}

	s, err := h.Manager.Load()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	s.Solar.ExtraExcludeDates = cleaned
	if err := h.Manager.Save(s); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if h.Classifier != nil {
		h.Classifier.SetExtraExclusions(cleaned)
	}
	log.Printf("[settings] exclusion list updated (%d extra date(s))", len(cleaned))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ExclusionsResponse{
		Dates: h.activeExclusions(s),
		Extra: cleaned,
	})
}

// activeExclusions reads the live classifier when wired, falling back to a
// throwaway one built from settings.
func (h *SettingsHandler) activeExclusions(s config.Settings) []string {
	if h.Classifier != nil {
		return h.Classifier.ExcludedDates()
	}
	return solar.NewClassifier(s.Solar.ExtraExcludeDates).ExcludedDates()
}

// validateExclusionDates rejects anything that is not a YYYY-MM-DD date.
func validateExclusionDates(dates []string) error {
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid exclusion date %q: must be YYYY-MM-DD", d)
		}
	}
	return nil
}
