package schedule

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

// Tournament is one resolved entry of the season schedule. Entries are
// immutable once loaded; queries return pointers into the schedule's slice
// and callers must not modify them.
type Tournament struct {
	Name     string     `json:"name"`
	TierAbbr string     `json:"tier_abbr"`
	Tier     Tier       `json:"tier"`
	DatesRaw string     `json:"dates"`
	Start    *time.Time `json:"start_date"`
	End      *time.Time `json:"end_date"`
	EventID  string     `json:"event_id,omitempty"`
}

// HasDates reports whether both dates resolved at load time.
func (t *Tournament) HasDates() bool {
	return t.Start != nil && t.End != nil
}

// HasEventID reports whether a PDGA event ID is known for this entry.
func (t *Tournament) HasEventID() bool {
	return t.EventID != ""
}

// EventKey returns the stable key used to track whether this tournament has
// been scored: the PDGA event ID when known, otherwise a slug of the name.
func (t *Tournament) EventKey() string {
	if t.EventID != "" {
		return t.EventID
	}
	return slug.Make(t.Name)
}

// Schedule is the season tournament index, kept in file order.
type Schedule struct {
	Tournaments []Tournament
	logger      *logrus.Logger
}

// Load parses the schedule from r. Each line is one record:
//
//	Name, TierAbbr, DateRange[, EventID]
//
// Blank lines are skipped; records with fewer than three fields are skipped
// with a warning. Date ranges that fail to parse leave the entry without
// dates, which excludes it from range queries but keeps it findable by name.
func Load(r io.Reader, now time.Time, logger *logrus.Logger) (*Schedule, error) {
	s := &Schedule{logger: logger}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		parts := strings.Split(text, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		if len(parts) < 3 {
			logger.WithFields(logrus.Fields{
				"line":   line,
				"fields": len(parts),
			}).Warn("Skipping schedule record with too few fields")
			continue
		}

		t := Tournament{
			Name:     parts[0],
			TierAbbr: parts[1],
			DatesRaw: parts[2],
			Tier:     ClassifyTier(parts[1]),
		}
		if len(parts) >= 4 && parts[3] != "" {
			t.EventID = parts[3]
		}

		if !t.Tier.Known {
			logger.WithFields(logrus.Fields{
				"tournament": t.Name,
				"tier_abbr":  t.TierAbbr,
			}).Warn("Unknown tier abbreviation, scoring with multiplier 1.0")
		}

		start, end, err := ResolveRange(t.DatesRaw, now)
		if err != nil {
			logger.WithError(err).WithField("tournament", t.Name).Warn("Could not resolve tournament dates")
		} else {
			t.Start = &start
			t.End = &end
		}

		s.Tournaments = append(s.Tournaments, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"tournaments":    len(s.Tournaments),
		"with_event_ids": len(s.WithEventIDs()),
	}).Info("Loaded tournament schedule")

	return s, nil
}

// LoadFile reads the schedule from a file path.
func LoadFile(path string, now time.Time, logger *logrus.Logger) (*Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f, now, logger)
}

// FindByName returns the first tournament whose name contains name,
// case-insensitively, in file order. Returns nil when nothing matches.
func (s *Schedule) FindByName(name string) *Tournament {
	needle := strings.ToLower(name)
	for i := range s.Tournaments {
		if strings.Contains(strings.ToLower(s.Tournaments[i].Name), needle) {
			return &s.Tournaments[i]
		}
	}
	return nil
}

// FindByEventID returns the tournament with the exact event ID, or nil.
func (s *Schedule) FindByEventID(eventID string) *Tournament {
	if eventID == "" {
		return nil
	}
	for i := range s.Tournaments {
		if s.Tournaments[i].EventID == eventID {
			return &s.Tournaments[i]
		}
	}
	return nil
}

// InRange returns, in file order, every tournament whose resolved dates
// overlap [start, end] inclusively. Entries without resolved dates are
// excluded.
func (s *Schedule) InRange(start, end time.Time) []*Tournament {
	var matches []*Tournament
	for i := range s.Tournaments {
		t := &s.Tournaments[i]
		if !t.HasDates() {
			continue
		}
		if !t.Start.After(end) && !t.End.Before(start) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Upcoming returns tournaments starting within daysAhead days of now,
// sorted by start date.
func (s *Schedule) Upcoming(now time.Time, daysAhead int) []*Tournament {
	horizon := now.AddDate(0, 0, daysAhead)

	var upcoming []*Tournament
	for i := range s.Tournaments {
		t := &s.Tournaments[i]
		if t.Start == nil {
			continue
		}
		if !t.Start.Before(now) && !t.Start.After(horizon) {
			upcoming = append(upcoming, t)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Start.Before(*upcoming[j].Start)
	})
	return upcoming
}

// WithEventIDs returns the entries that carry a PDGA event ID, in file order.
func (s *Schedule) WithEventIDs() []*Tournament {
	var matches []*Tournament
	for i := range s.Tournaments {
		if s.Tournaments[i].HasEventID() {
			matches = append(matches, &s.Tournaments[i])
		}
	}
	return matches
}

// WithoutEventIDs returns the entries still missing an event ID, in file order.
func (s *Schedule) WithoutEventIDs() []*Tournament {
	var matches []*Tournament
	for i := range s.Tournaments {
		if !s.Tournaments[i].HasEventID() {
			matches = append(matches, &s.Tournaments[i])
		}
	}
	return matches
}

// Export is the JSON shape of a resolved schedule.
type Export struct {
	Season      int          `json:"season"`
	LastUpdated time.Time    `json:"last_updated"`
	Tournaments []Tournament `json:"tournaments"`
}

// ExportJSON builds the export document for the resolved schedule.
func (s *Schedule) ExportJSON(now time.Time) Export {
	return Export{
		Season:      now.Year(),
		LastUpdated: now,
		Tournaments: s.Tournaments,
	}
}
