package apod

import (
	"context"
	"log"
	"net/http"
	"time"

	"skydeck/models"
	"skydeck/services/solar"
)

// Classifier produces the solar-relevance verdict for a fetched entry. The
// concrete implementation lives in services/solar.
type Classifier interface {
	Classify(entry models.APODEntry) models.SolarVerdict
}

var _ Classifier = (*solar.Classifier)(nil)

// Service runs the full pipeline for one request: resolve the date, serve
// from cache or fetch upstream, classify, and assemble the dashboard
// payload.
type Service struct {
	resolver   *Resolver
	client     *Client
	cache      *Cache
	classifier Classifier
}

// NewService wires the pipeline. cacheTTL and fetchTimeout fall back to
// their defaults when zero or negative.
func NewService(apiKey, baseURL string, cacheTTL, fetchTimeout time.Duration, classifier Classifier) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Service{
		resolver:   NewResolver(),
		client:     NewClient(apiKey, baseURL, &http.Client{Timeout: fetchTimeout}),
		cache:      NewCache(cacheTTL),
		classifier: classifier,
	}
}

// UpdateConfig swaps the upstream client and resets the cache. The settings
// handler calls this after a save so changes apply without a restart.
func (s *Service) UpdateConfig(apiKey, baseURL string, cacheTTL, fetchTimeout time.Duration) {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	s.client = NewClient(apiKey, baseURL, &http.Client{Timeout: fetchTimeout})
	s.cache = NewCache(cacheTTL)
	log.Printf("[apod] client configuration reloaded")
}

// Events returns the curated preset table in display order.
func (s *Service) Events() []models.PresetEvent {
	return Events()
}

// View runs the pipeline for one request. The solar map is attached only
// for solar entries, focused on the verdict's primary body.
func (s *Service) View(ctx context.Context, manualDate, presetKey string) (*models.APODView, error) {
	sel, err := s.resolver.Resolve(manualDate, presetKey)
	if err != nil {
		return nil, err
	}

	entry, cached, err := s.cache.GetOrFetch(sel, func() (models.APODEntry, error) {
		return s.client.Fetch(ctx, sel)
	})
	if err != nil {
		log.Printf("[apod] fetch failed selection=%s: %v", sel, err)
		return nil, err
	}

	verdict := s.classifier.Classify(entry)
	log.Printf("[apod] served selection=%s date=%s cached=%v solar=%v", sel, entry.Date, cached, verdict.IsSolar)

	view := &models.APODView{
		Requested: sel.String(),
		Cached:    cached,
		Entry:     entry,
		Solar:     verdict,
	}
	if verdict.IsSolar {
		m := solar.Map(verdict.PrimaryBody)
		view.SolarMap = &m
	}
	return view, nil
}
