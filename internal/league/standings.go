package league

import (
	"sort"
	"time"
)

// BeginWeek advances the league to the next scoring week and returns it.
// Nothing else increments CurrentWeek; the updater calls this only when a
// run has at least one fresh tournament.
func BeginWeek(s *Standings) int {
	s.CurrentWeek++
	return s.CurrentWeek
}

// Seen reports whether a tournament's event key has already been scored.
func (s *Standings) Seen(key string) bool {
	for _, k := range s.ProcessedEvents {
		if k == key {
			return true
		}
	}
	return false
}

// MarkProcessed records event keys as scored. Duplicate keys are ignored.
func (s *Standings) MarkProcessed(keys ...string) {
	for _, key := range keys {
		if !s.Seen(key) {
			s.ProcessedEvents = append(s.ProcessedEvents, key)
		}
	}
}

// SplitProcessed partitions a fetched batch into tournaments not yet scored
// and tournaments already recorded in ProcessedEvents.
func (s *Standings) SplitProcessed(events []EventResults) (fresh, skipped []EventResults) {
	for _, ev := range events {
		if s.Seen(ev.EventKey) {
			skipped = append(skipped, ev)
		} else {
			fresh = append(fresh, ev)
		}
	}
	return fresh, skipped
}

// RecomputeStandings derives totals, weeks counted, and ranks from the
// weekly breakdowns. Lower season totals rank higher; ties keep their prior
// order. Breakdowns are never mutated, so recomputing is idempotent.
func RecomputeStandings(s *Standings, now time.Time) {
	for i := range s.Standings {
		st := &s.Standings[i]

		total := 0.0
		for _, week := range st.WeeklyBreakdown {
			total += week.Score
		}
		st.TotalScore = total
		st.WeeksCounted = len(st.WeeklyBreakdown)
	}

	sort.SliceStable(s.Standings, func(i, j int) bool {
		return s.Standings[i].TotalScore < s.Standings[j].TotalScore
	})

	for i := range s.Standings {
		s.Standings[i].Rank = i + 1
	}

	s.LastUpdated = now
}
