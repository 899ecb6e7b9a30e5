package league

import (
	"reflect"
	"testing"
	"time"
)

func TestBeginWeek(t *testing.T) {
	s := &Standings{}

	if week := BeginWeek(s); week != 1 {
		t.Errorf("Expected week 1, got %d", week)
	}
	if week := BeginWeek(s); week != 2 {
		t.Errorf("Expected week 2, got %d", week)
	}
	if s.CurrentWeek != 2 {
		t.Errorf("Expected current week 2, got %d", s.CurrentWeek)
	}
}

func TestProcessedEvents(t *testing.T) {
	s := &Standings{}

	if s.Seen("88276") {
		t.Error("Expected unseen event")
	}

	s.MarkProcessed("88276", "88276", "supreme-flight-open")

	if !s.Seen("88276") {
		t.Error("Expected event to be seen after marking")
	}
	if !s.Seen("supreme-flight-open") {
		t.Error("Expected slug key to be seen after marking")
	}
	if len(s.ProcessedEvents) != 2 {
		t.Errorf("Expected duplicates collapsed to 2 keys, got %d", len(s.ProcessedEvents))
	}
}

func TestSplitProcessed(t *testing.T) {
	s := &Standings{ProcessedEvents: []string{"88276"}}
	events := []EventResults{
		{Name: "Supreme Flight Open", EventKey: "88276"},
		{Name: "Jonesboro Open", EventKey: "88278"},
		{Name: "The Open at Austin", EventKey: "the-open-at-austin"},
	}

	fresh, skipped := s.SplitProcessed(events)

	if len(fresh) != 2 {
		t.Fatalf("Expected 2 fresh events, got %d", len(fresh))
	}
	if fresh[0].Name != "Jonesboro Open" || fresh[1].Name != "The Open at Austin" {
		t.Errorf("Unexpected fresh order: %v, %v", fresh[0].Name, fresh[1].Name)
	}
	if len(skipped) != 1 || skipped[0].Name != "Supreme Flight Open" {
		t.Errorf("Expected only the processed event skipped, got %v", skipped)
	}
}

func TestRecomputeStandings(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	s := &Standings{Standings: []TeamStanding{
		{
			TeamName: "High Rollers",
			WeeklyBreakdown: []WeekResult{
				{Week: 1, Score: 20.0},
				{Week: 2, Score: 15.0},
			},
		},
		{
			TeamName: "Low Ballers",
			WeeklyBreakdown: []WeekResult{
				{Week: 1, Score: 8.0},
				{Week: 2, Score: 9.5},
			},
		},
	}}

	RecomputeStandings(s, now)

	if s.Standings[0].TeamName != "Low Ballers" {
		t.Errorf("Expected the lower total ranked first, got %q", s.Standings[0].TeamName)
	}
	if s.Standings[0].Rank != 1 || s.Standings[1].Rank != 2 {
		t.Errorf("Expected ranks 1 and 2, got %d and %d", s.Standings[0].Rank, s.Standings[1].Rank)
	}
	if s.Standings[0].TotalScore != 17.5 {
		t.Errorf("Expected total 17.5, got %v", s.Standings[0].TotalScore)
	}
	if s.Standings[0].WeeksCounted != 2 {
		t.Errorf("Expected 2 weeks counted, got %d", s.Standings[0].WeeksCounted)
	}
	if !s.LastUpdated.Equal(now) {
		t.Errorf("Expected last updated %v, got %v", now, s.LastUpdated)
	}
}

func TestRecomputeStandingsIdempotent(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	s := &Standings{Standings: []TeamStanding{
		{TeamName: "A", WeeklyBreakdown: []WeekResult{{Week: 1, Score: 10.0}}},
		{TeamName: "B", WeeklyBreakdown: []WeekResult{{Week: 1, Score: 10.0}}},
		{TeamName: "C", WeeklyBreakdown: []WeekResult{{Week: 1, Score: 4.0}}},
	}}

	RecomputeStandings(s, now)
	first := make([]TeamStanding, len(s.Standings))
	copy(first, s.Standings)

	RecomputeStandings(s, now)

	if !reflect.DeepEqual(first, s.Standings) {
		t.Errorf("Expected recompute to be idempotent:\nfirst:  %+v\nsecond: %+v", first, s.Standings)
	}
	// Tied teams keep their order across recomputes.
	if s.Standings[1].TeamName != "A" || s.Standings[2].TeamName != "B" {
		t.Errorf("Expected tied teams in stable order, got %q then %q",
			s.Standings[1].TeamName, s.Standings[2].TeamName)
	}
}
