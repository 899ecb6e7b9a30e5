package updater

import (
	"context"
	"fmt"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
	"github.com/discline/pdga-fantasy-mcp-server/internal/pdga"
	"github.com/discline/pdga-fantasy-mcp-server/internal/schedule"
)

// EventPreview is a read-only look at one tournament's results: the parsed
// finishers plus what each rostered player there would score.
type EventPreview struct {
	Event      *pdga.EventRef       `json:"event"`
	Tournament *schedule.Tournament `json:"tournament,omitempty"`
	Division   string               `json:"division"`
	Results    []pdga.ResultRow     `json:"results"`
	RosterHits []RosterHit          `json:"roster_hits"`
}

// RosterHit is one rostered player found in a fetched event's results.
type RosterHit struct {
	Player    string  `json:"player"`
	Team      string  `json:"team"`
	Placement int     `json:"placement"`
	Finish    string  `json:"finish"`
	Points    float64 `json:"points"`
	Underdog  bool    `json:"is_underdog,omitempty"`
}

// FetchEvent fetches a single tournament's results without touching any
// document. The event is annotated from the schedule when the event ID is
// known there, which also supplies the tier weighting for the preview.
func (u *Updater) FetchEvent(ctx context.Context, eventID, division string) (*EventPreview, error) {
	if division == "" {
		division = u.Division
	}

	ref, err := u.Provider.FindEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("resolving event %s: %w", eventID, err)
	}

	rows, err := u.Provider.FetchResults(ref, division)
	if err != nil {
		return nil, err
	}

	preview := &EventPreview{
		Event:    ref,
		Division: division,
		Results:  rows,
	}

	multiplier := 1.0
	if t := u.Schedule.FindByEventID(ref.EventID); t != nil {
		preview.Tournament = t
		multiplier = t.Tier.Multiplier
	}

	rosters, err := u.Store.LoadRosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rosters: %w", err)
	}

	for _, team := range rosters.Teams {
		for _, p := range team.Players {
			for _, row := range rows {
				if p.PDGANumber == 0 || p.PDGANumber != row.PDGANumber {
					continue
				}
				points := float64(row.Placement) * multiplier
				if p.Underdog {
					points /= 2
				}
				preview.RosterHits = append(preview.RosterHits, RosterHit{
					Player:    p.Name,
					Team:      team.TeamName,
					Placement: row.Placement,
					Finish:    league.Ordinal(row.Placement) + " place",
					Points:    points,
					Underdog:  p.Underdog,
				})
			}
		}
	}

	u.Logger.WithField("event_id", ref.EventID).Info("Fetched event preview")
	return preview, nil
}
