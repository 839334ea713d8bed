package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skydeck/models"
	apodpkg "skydeck/services/apod"
)

// stubAPODService returns canned values for handler tests.
type stubAPODService struct {
	view   *models.APODView
	err    error
	events []models.PresetEvent

	gotDate  string
	gotEvent string
}

func (s *stubAPODService) View(ctx context.Context, manualDate, presetKey string) (*models.APODView, error) {
	s.gotDate = manualDate
	s.gotEvent = presetKey
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func (s *stubAPODService) Events() []models.PresetEvent { return s.events }

func TestGetAPOD_Success(t *testing.T) {
	view := &models.APODView{
		Requested: "2024-04-08",
		Entry: models.APODEntry{
			Date:        "2024-04-08",
			Title:       "The Changing Ion Tail of Comet Pons-Brooks",
			Explanation: "The ion tail changed dramatically.",
			MediaType:   models.MediaTypeImage,
			MediaURL:    "https://apod.nasa.gov/apod/image/2404/tail_low.jpg",
		},
		Solar: models.SolarVerdict{IsSolar: true, PrimaryBody: "Sun"},
	}
	stub := &stubAPODService{view: view}
	handler := NewAPODHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/apod?date=2024-04-08", nil)
	rec := httptest.NewRecorder()
	handler.GetAPOD(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content-type %q", got)
	}
	if stub.gotDate != "2024-04-08" || stub.gotEvent != "" {
		t.Fatalf("unexpected pipeline inputs: date=%q event=%q", stub.gotDate, stub.gotEvent)
	}

	var got models.APODView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Requested != "2024-04-08" || !got.Solar.IsSolar {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestGetAPOD_PassesEventParam(t *testing.T) {
	stub := &stubAPODService{view: &models.APODView{}}
	handler := NewAPODHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/apod?event=Earth+and+the+Moon+%282021-09-05%29", nil)
	rec := httptest.NewRecorder()
	handler.GetAPOD(rec, req)

	if stub.gotEvent != "Earth and the Moon (2021-09-05)" {
		t.Fatalf("unexpected event param %q", stub.gotEvent)
	}
}

func TestGetAPOD_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid date", &apodpkg.InvalidDateError{Value: "x", Reason: "must be YYYY-MM-DD"}, http.StatusBadRequest, "invalid_date"},
		{"rate limited", &apodpkg.RateLimitedError{}, http.StatusTooManyRequests, "rate_limited"},
		{"upstream failure", &apodpkg.UpstreamError{StatusCode: 500, Body: "boom"}, http.StatusBadGateway, "upstream_error"},
		{"malformed payload", &apodpkg.MalformedResponseError{Missing: []string{"title"}}, http.StatusBadGateway, "bad_upstream_payload"},
		{"network failure", &apodpkg.NetworkError{Err: errors.New("connection refused")}, http.StatusBadGateway, "network_error"},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAPODHandler(&stubAPODService{err: tc.err})

			req := httptest.NewRequest(http.MethodGet, "/api/apod", nil)
			rec := httptest.NewRecorder()
			handler.GetAPOD(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["code"] != tc.code {
				t.Errorf("expected code %q, got %q", tc.code, body["code"])
			}
			if body["error"] == "" {
				t.Error("expected a human-readable error message")
			}
		})
	}
}

func TestGetAPOD_RateLimitRetryAfter(t *testing.T) {
	handler := NewAPODHandler(&stubAPODService{err: &apodpkg.RateLimitedError{RetryAfter: 30 * time.Second}})
	req := httptest.NewRequest(http.MethodGet, "/api/apod", nil)
	rec := httptest.NewRecorder()
	handler.GetAPOD(rec, req)

	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After: 30, got %q", got)
	}

	// Without an upstream hint the header falls back to 60.
	handler = NewAPODHandler(&stubAPODService{err: &apodpkg.RateLimitedError{}})
	rec = httptest.NewRecorder()
	handler.GetAPOD(rec, req)

	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After: 60, got %q", got)
	}
}

func TestGetEvents(t *testing.T) {
	events := []models.PresetEvent{
		{Label: "Earth and the Moon (2021-09-05)", Date: "2021-09-05"},
		{Label: "Deimos Before Sunrise (2025-05-24)", Date: "2025-05-24"},
	}
	handler := NewAPODHandler(&stubAPODService{events: events})

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	handler.GetEvents(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []models.PresetEvent
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 || got[0].Label != events[0].Label || got[1].Date != events[1].Date {
		t.Fatalf("unexpected events payload: %+v", got)
	}
}
