// Package schedule holds the conference sessions shown on the site and
// groups them by day.
package schedule

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"github.com/ancientlore/datefilter"
)

// Presentation is a talk within a session.
type Presentation struct {
	Title      string   `json:"title"`
	Time       string   `json:"time"` // Time of day as shown by the organizers, like "10:00am - 10:30am EDT"
	Presenters []string `json:"presenters"`
	ZoomLink   string   `json:"zoom_link"`
}

// Session is a block of presentations on one day of one track.
type Session struct {
	Date          string         `json:"date"` // Day of the session, like "2021-04-13T00:00:00-0500"
	Track         string         `json:"track"`
	Title         string         `json:"title"`
	Time          string         `json:"time"`
	Presiders     []string       `json:"presiders"`
	Presentations []Presentation `json:"presentations"`
	ZoomLink      string         `json:"zoom_link"`
}

// DateKey returns the raw session date.
func (s Session) DateKey() string {
	return s.Date
}

// Start parses the session date.
func (s Session) Start() (time.Time, error) {
	return datefilter.ParseDate(s.Date)
}

// Read reads a JSON list of sessions from fsys.
func Read(fsys fs.FS, name string) ([]Session, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}
	var sessions []Session
	if err = json.Unmarshal(b, &sessions); err != nil {
		return nil, fmt.Errorf("Read %q: %w", name, err)
	}
	return sessions, nil
}

// Decode converts a value from the site's global data, such as a []any of
// maps, into sessions.
func Decode(v any) ([]Session, error) {
	if v == nil {
		return []Session{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	var sessions []Session
	if err = json.Unmarshal(b, &sessions); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	return sessions, nil
}

// Sorted returns the sessions ordered by date. Sessions on the same day keep their order.
func Sorted(sessions []Session) []Session {
	return datefilter.SortDated(sessions)
}

// OnDay returns the sessions whose date is exactly day.
func OnDay(sessions []Session, day string) []Session {
	return datefilter.FilterDated(sessions, day)
}

// Days returns the distinct session dates, earliest first.
func Days(sessions []Session) []string {
	return datefilter.Keys(sessions, Session.DateKey)
}

// Day is the sessions of one day.
type Day struct {
	Date     string
	Sessions []Session
}

// ByDay groups the sessions by date, earliest day first.
func ByDay(sessions []Session) []Day {
	days := Days(sessions)
	r := make([]Day, len(days))
	for i, d := range days {
		r[i] = Day{Date: d, Sessions: OnDay(sessions, d)}
	}
	return r
}
