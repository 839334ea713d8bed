package apod

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skydeck/models"
)

// roundTripFunc lets tests stand in for an HTTP transport.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

const cometBody = `{
	"date": "2024-04-08",
	"title": "The Changing Ion Tail of Comet Pons-Brooks",
	"explanation": "The ion tail changed dramatically over ten days.",
	"url": "https://apod.nasa.gov/apod/image/2404/tail_low.jpg",
	"hdurl": "https://apod.nasa.gov/apod/image/2404/tail_high.jpg",
	"media_type": "image"
}`

func TestFetch_DecodesEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("expected api_key=test-key, got %q", got)
		}
		if got := r.URL.Query().Get("date"); got != "2024-04-08" {
			t.Errorf("expected date=2024-04-08, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, cometBody)
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, nil)
	entry, err := c.Fetch(context.Background(), DateSelection{Date: "2024-04-08"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if entry.Date != "2024-04-08" {
		t.Errorf("unexpected date %q", entry.Date)
	}
	if entry.Title != "The Changing Ion Tail of Comet Pons-Brooks" {
		t.Errorf("unexpected title %q", entry.Title)
	}
	if entry.MediaType != models.MediaTypeImage {
		t.Errorf("unexpected media type %q", entry.MediaType)
	}
	if entry.MediaURL != "https://apod.nasa.gov/apod/image/2404/tail_low.jpg" {
		t.Errorf("unexpected media url %q", entry.MediaURL)
	}
	if entry.HDURL != "https://apod.nasa.gov/apod/image/2404/tail_high.jpg" {
		t.Errorf("unexpected hd url %q", entry.HDURL)
	}
}

func TestFetch_LatestOmitsDateParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("date") {
			t.Errorf("latest fetch must not send a date parameter, got %q", r.URL.Query().Get("date"))
		}
		fmt.Fprint(w, cometBody)
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, nil)
	if _, err := c.Fetch(context.Background(), Latest); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
}

func TestFetch_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"code": "OVER_RATE_LIMIT"}}`)
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, nil)
	_, err := c.Fetch(context.Background(), Latest)

	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rl.RetryAfter != 30*time.Second {
		t.Errorf("expected retry after 30s, got %s", rl.RetryAfter)
	}
}

func TestFetch_RateLimitedWithoutHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, nil)
	_, err := c.Fetch(context.Background(), Latest)

	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rl.RetryAfter != 0 {
		t.Errorf("expected no retry hint, got %s", rl.RetryAfter)
	}
}

func TestFetch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "internal failure")
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, nil)
	_, err := c.Fetch(context.Background(), DateSelection{Date: "2024-04-08"})

	var up *UpstreamError
	if !errors.As(err, &up) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if up.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", up.StatusCode)
	}
	if up.Body != "internal failure" {
		t.Errorf("expected body preserved, got %q", up.Body)
	}
}

func TestFetch_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>maintenance</html>")
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, nil)
	_, err := c.Fetch(context.Background(), Latest)

	var mal *MalformedResponseError
	if !errors.As(err, &mal) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if mal.Err == nil {
		t.Error("expected the decode error to be preserved")
	}
}

func TestFetch_MissingRequiredFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"date": "2024-04-08", "url": "https://apod.nasa.gov/x.jpg"}`)
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, nil)
	_, err := c.Fetch(context.Background(), DateSelection{Date: "2024-04-08"})

	var mal *MalformedResponseError
	if !errors.As(err, &mal) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	want := []string{"title", "explanation"}
	if len(mal.Missing) != len(want) {
		t.Fatalf("expected missing %v, got %v", want, mal.Missing)
	}
	for i, field := range want {
		if mal.Missing[i] != field {
			t.Errorf("missing[%d]: expected %q, got %q", i, field, mal.Missing[i])
		}
	}
}

func TestFetch_UnknownMediaTypeNormalised(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"date": "2024-06-02",
			"title": "An Interactive Sky Chart",
			"explanation": "Pan and zoom the chart.",
			"url": "https://apod.nasa.gov/chart/",
			"media_type": "interactive"
		}`)
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, nil)
	entry, err := c.Fetch(context.Background(), DateSelection{Date: "2024-06-02"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if entry.MediaType != models.MediaTypeOther {
		t.Errorf("expected media type %q, got %q", models.MediaTypeOther, entry.MediaType)
	}
}

func TestFetch_TransportError(t *testing.T) {
	httpc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})}

	c := NewClient("test-key", "http://apod.invalid", httpc)
	_, err := c.Fetch(context.Background(), Latest)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
