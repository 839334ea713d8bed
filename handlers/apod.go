package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"skydeck/models"
	apodpkg "skydeck/services/apod"
)

// apodService is the slice of the pipeline service the handler needs.
type apodService interface {
	View(ctx context.Context, manualDate, presetKey string) (*models.APODView, error)
	Events() []models.PresetEvent
}

var _ apodService = (*apodpkg.Service)(nil)

type APODHandler struct {
	Service apodService
}

func NewAPODHandler(s apodService) *APODHandler {
	return &APODHandler{Service: s}
}

// GetAPOD serves the composite view for one archive selection. The date
// and event query parameters mirror the pipeline inputs: a known event
// label wins, an empty date means today.
func (h *APODHandler) GetAPOD(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	event := strings.TrimSpace(r.URL.Query().Get("event"))

	view, err := h.Service.View(r.Context(), date, event)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// GetEvents serves the curated preset table in display order.
func (h *APODHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Service.Events())
}

// writePipelineError maps the pipeline error taxonomy onto HTTP statuses
// and stable machine-readable codes. Anything outside the taxonomy is a
// plain 500.
func writePipelineError(w http.ResponseWriter, err error) {
	var (
		invalidDate *apodpkg.InvalidDateError
		rateLimited *apodpkg.RateLimitedError
		upstream    *apodpkg.UpstreamError
		malformed   *apodpkg.MalformedResponseError
		network     *apodpkg.NetworkError
	)

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.As(err, &invalidDate):
		status = http.StatusBadRequest
		code = "invalid_date"
	case errors.As(err, &rateLimited):
		status = http.StatusTooManyRequests
		code = "rate_limited"
		retryAfter := 60
		if rateLimited.RetryAfter > 0 {
			retryAfter = int(rateLimited.RetryAfter.Seconds())
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
		code = "upstream_error"
	case errors.As(err, &malformed):
		status = http.StatusBadGateway
		code = "bad_upstream_payload"
	case errors.As(err, &network):
		status = http.StatusBadGateway
		code = "network_error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error(), "code": code})
}
