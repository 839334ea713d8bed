package apod

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// firstAPODDate is the day the archive began publishing.
	firstAPODDate = "1995-06-16"
)

// DateSelection identifies which archive entry to fetch. The zero value
// selects the latest entry, meaning no date parameter is sent upstream.
type DateSelection struct {
	Date string // YYYY-MM-DD, empty for latest
}

// Latest selects the newest archive entry.
var Latest = DateSelection{}

// IsLatest reports whether the selection targets the newest entry.
func (s DateSelection) IsLatest() bool { return s.Date == "" }

func (s DateSelection) String() string {
	if s.Date == "" {
		return "latest"
	}
	return s.Date
}

// Resolver turns raw date and preset inputs into a validated DateSelection.
type Resolver struct {
	now func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// Resolve picks the archive date for a request. A known preset label wins
// over any manual date, so the manual value is not even parsed in that
// case; an unknown label falls back to the manual date. Empty inputs and
// today's date both resolve to Latest, which omits the date parameter
// upstream.
func (r *Resolver) Resolve(manualDate, presetKey string) (DateSelection, error) {
	if presetKey != "" {
		if date, ok := lookupEvent(presetKey); ok {
			return r.validate(date)
		}
	}
	if manualDate == "" {
		return Latest, nil
	}
	return r.validate(manualDate)
}

// validate parses a date and checks it against the archive bounds. The
// comparison uses formatted strings so it is calendar-exact within the
// server's day.
func (r *Resolver) validate(value string) (DateSelection, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return DateSelection{}, &InvalidDateError{Value: value, Reason: "must be YYYY-MM-DD"}
	}

	date := d.Format(dateLayout)
	today := r.now().Format(dateLayout)
	if date < firstAPODDate {
		return DateSelection{}, &InvalidDateError{Value: value, Reason: fmt.Sprintf("the archive starts on %s", firstAPODDate)}
	}
	if date > today {
		return DateSelection{}, &InvalidDateError{Value: value, Reason: "date is in the future"}
	}
	if date == today {
		return Latest, nil
	}
	return DateSelection{Date: date}, nil
}
