package solar

import (
	"sort"
	"strings"
	"sync"

	"skydeck/models"
)

// Keywords that mark an entry as concerning the local solar system. Matched
// as lowercase substrings against the combined title and explanation.
var solarKeywords = []string{
	"mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus",
	"neptune", "moon", "sun", "comet", "asteroid", "aurora", "apollo",
	"iss", "viking", "curiosity", "cassini", "voyager", "juno", "osiris",
}

// bodyPriority is the order bodies are checked when picking the primary
// subject. The first one found in the text wins; entries matching only
// mission or phenomenon keywords fall through to DefaultBody.
var bodyPriority = []string{
	"Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune",
	"Earth", "Moon",
}

// DefaultBody is reported when an entry is solar but names no specific body.
const DefaultBody = "Sun"

// builtinExcludeDates are curated dates whose keyword hits are misleading
// (joke entries and ambiguous titles). They always apply and cannot be
// removed through settings.
var builtinExcludeDates = []string{"1998-04-01", "2005-07-04"}

// Classifier decides whether an archive entry concerns the local solar
// system and which body it is primarily about. Safe for concurrent use;
// the extra exclusion list can be swapped at runtime.
type Classifier struct {
	mu    sync.RWMutex
	extra map[string]struct{}
}

func NewClassifier(extraExcludeDates []string) *Classifier {
	c := &Classifier{}
	c.SetExtraExclusions(extraExcludeDates)
	return c
}

// SetExtraExclusions replaces the operator-curated exclusion dates. The
// built-in exclusions always apply on top.
func (c *Classifier) SetExtraExclusions(dates []string) {
	extra := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		extra[d] = struct{}{}
	}
	c.mu.Lock()
	c.extra = extra
	c.mu.Unlock()
}

// ExcludedDates returns the active exclusion list, built-in plus extra,
// sorted and deduplicated.
func (c *Classifier) ExcludedDates() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(builtinExcludeDates)+len(c.extra))
	for _, d := range builtinExcludeDates {
		seen[d] = struct{}{}
	}
	for d := range c.extra {
		seen[d] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func (c *Classifier) isExcluded(date string) bool {
	for _, d := range builtinExcludeDates {
		if d == date {
			return true
		}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.extra[date]
	return ok
}

// Classify scans the entry's title and explanation for solar-system
// keywords and picks the primary body. Entries on excluded dates are never
// solar regardless of their text.
func (c *Classifier) Classify(entry models.APODEntry) models.SolarVerdict {
	if c.isExcluded(entry.Date) {
		return models.SolarVerdict{}
	}

	text := strings.ToLower(entry.Title + " " + entry.Explanation)

	matched := false
	for _, kw := range solarKeywords {
		if strings.Contains(text, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return models.SolarVerdict{}
	}

	body := DefaultBody
	for _, b := range bodyPriority {
		if strings.Contains(text, strings.ToLower(b)) {
			body = b
			break
		}
	}

	return models.SolarVerdict{IsSolar: true, PrimaryBody: body}
}
