package apod

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skydeck/models"
)

const (
	defaultBaseURL = "https://api.nasa.gov"
	apodPath       = "/planetary/apod"

	// DefaultFetchTimeout bounds one upstream request when the caller
	// supplies no HTTP client.
	DefaultFetchTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response body is kept for
	// diagnostics.
	maxErrorBody = 2048
)

// apodWire is the upstream response shape. Only the fields the dashboard
// needs are decoded.
type apodWire struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
}

// Client fetches entries from the NASA APOD API. It performs no retries
// and caches nothing; the service layers those concerns on top.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient creates an APOD API client. A nil httpc gets a default client
// with DefaultFetchTimeout; an empty baseURL targets the real API.
func NewClient(apiKey, baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// Fetch retrieves one archive entry and maps every failure onto the
// pipeline error taxonomy. Latest selections omit the date parameter so
// the API serves its newest entry.
func (c *Client) Fetch(ctx context.Context, sel DateSelection) (models.APODEntry, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if !sel.IsLatest() {
		params.Set("date", sel.Date)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apodPath+"?"+params.Encode(), nil)
	if err != nil {
		return models.APODEntry{}, &NetworkError{Err: err}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.APODEntry{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return models.APODEntry{}, &RateLimitedError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return models.APODEntry{}, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var wire apodWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return models.APODEntry{}, &MalformedResponseError{Err: err}
	}

	var missing []string
	if strings.TrimSpace(wire.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(wire.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(wire.Explanation) == "" {
		missing = append(missing, "explanation")
	}
	if strings.TrimSpace(wire.URL) == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return models.APODEntry{}, &MalformedResponseError{Missing: missing}
	}

	return models.APODEntry{
		Date:        wire.Date,
		Title:       wire.Title,
		Explanation: wire.Explanation,
		MediaType:   normalizeMediaType(wire.MediaType),
		MediaURL:    wire.URL,
		HDURL:       wire.HDURL,
	}, nil
}

// parseRetryAfter reads a Retry-After header given in seconds. HTTP-date
// values and garbage yield zero (no hint).
func parseRetryAfter(value string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func normalizeMediaType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case models.MediaTypeImage:
		return models.MediaTypeImage
	case models.MediaTypeVideo:
		return models.MediaTypeVideo
	default:
		return models.MediaTypeOther
	}
}
