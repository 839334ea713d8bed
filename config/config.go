package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ServerSettings controls the HTTP listener.
type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Addr returns the listen address in host:port form.
func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// NASASettings configures the upstream APOD API.
type NASASettings struct {
	APIKey              string `json:"apiKey"`
	BaseURL             string `json:"baseUrl"`
	CacheTTLSeconds     int    `json:"cacheTtlSeconds"`
	FetchTimeoutSeconds int    `json:"fetchTimeoutSeconds"`
}

// EffectiveAPIKey returns the key sent upstream. The NASA_API_KEY
// environment variable overrides the configured key; DEMO_KEY is used when
// neither is set.
func (n NASASettings) EffectiveAPIKey() string {
	if key := strings.TrimSpace(os.Getenv("NASA_API_KEY")); key != "" {
		return key
	}
	if key := strings.TrimSpace(n.APIKey); key != "" {
		return key
	}
	return "DEMO_KEY"
}

// CacheTTL returns the archive-entry cache lifetime.
func (n NASASettings) CacheTTL() time.Duration {
	return time.Duration(n.CacheTTLSeconds) * time.Second
}

// FetchTimeout returns the per-request upstream timeout.
func (n NASASettings) FetchTimeout() time.Duration {
	return time.Duration(n.FetchTimeoutSeconds) * time.Second
}

// RateLimitSettings throttles per-client access to routes that spend NASA
// API quota.
type RateLimitSettings struct {
	PerMinute int `json:"perMinute"`
	Burst     int `json:"burst"`
}

// SolarSettings configures the solar-relevance classifier.
type SolarSettings struct {
	// ExtraExcludeDates lists additional archive dates (YYYY-MM-DD) whose
	// entries must never be classified as solar, on top of the built-in
	// exclusions.
	ExtraExcludeDates []string `json:"extraExcludeDates"`
}

// LogSettings controls the optional rotating log file. Logging goes to
// stderr only when File is empty.
type LogSettings struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
}

// Settings is the full persisted configuration.
type Settings struct {
	Server    ServerSettings    `json:"server"`
	NASA      NASASettings      `json:"nasa"`
	RateLimit RateLimitSettings `json:"rateLimit"`
	Solar     SolarSettings     `json:"solar"`
	Log       LogSettings       `json:"log"`
}

// DefaultSettings returns the configuration used on a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host: "0.0.0.0",
			Port: 8808,
		},
		NASA: NASASettings{
			BaseURL:             "https://api.nasa.gov",
			CacheTTLSeconds:     3600,
			FetchTimeoutSeconds: 10,
		},
		RateLimit: RateLimitSettings{
			PerMinute: 30,
			Burst:     10,
		},
		Log: LogSettings{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// applyDefaults fills zero-valued fields so settings files written by older
// versions keep working after new fields are added.
func applyDefaults(s *Settings) {
	d := DefaultSettings()
	if strings.TrimSpace(s.Server.Host) == "" {
		s.Server.Host = d.Server.Host
	}
	if s.Server.Port <= 0 {
		s.Server.Port = d.Server.Port
	}
	if strings.TrimSpace(s.NASA.BaseURL) == "" {
		s.NASA.BaseURL = d.NASA.BaseURL
	}
	if s.NASA.CacheTTLSeconds <= 0 {
		s.NASA.CacheTTLSeconds = d.NASA.CacheTTLSeconds
	}
	if s.NASA.FetchTimeoutSeconds <= 0 {
		s.NASA.FetchTimeoutSeconds = d.NASA.FetchTimeoutSeconds
	}
	if s.RateLimit.PerMinute <= 0 {
		s.RateLimit.PerMinute = d.RateLimit.PerMinute
	}
	if s.RateLimit.Burst <= 0 {
		s.RateLimit.Burst = d.RateLimit.Burst
	}
	if s.Log.MaxSizeMB <= 0 {
		s.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if s.Log.MaxBackups <= 0 {
		s.Log.MaxBackups = d.Log.MaxBackups
	}
}

// Manager loads and saves the settings file.
type Manager struct {
	mu   sync.RWMutex
	path string
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the settings file. A missing file yields defaults rather than
// an error so the server starts without any setup step.
func (m *Manager) Load() (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	applyDefaults(&s)
	return s, nil
}

// Save writes the settings file atomically (temp file + rename).
func (m *Manager) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dir := filepath.Dir(m.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
