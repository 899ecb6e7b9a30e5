// Package store persists the league's four season documents as whole JSON
// files, either on local disk or in an S3-compatible bucket.
package store

import (
	"context"
	"fmt"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
)

// Document keys shared by every backend.
const (
	RostersKey     = "rosters.json"
	StandingsKey   = "standings.json"
	HistoryKey     = "recent_tournaments.json"
	PlayerStatsKey = "player_stats.json"
)

// Store reads and writes the season documents. Documents are loaded and
// saved whole; there are no partial updates.
type Store interface {
	LoadRosters(ctx context.Context) (*league.Rosters, error)
	LoadStandings(ctx context.Context) (*league.Standings, error)
	LoadHistory(ctx context.Context) (*league.History, error)
	LoadPlayerStats(ctx context.Context) (*league.PlayerStats, error)

	SaveRosters(ctx context.Context, rosters *league.Rosters) error
	SaveStandings(ctx context.Context, standings *league.Standings) error
	SaveHistory(ctx context.Context, history *league.History) error
	SavePlayerStats(ctx context.Context, stats *league.PlayerStats) error
}

// StoreError describes a failed load or save of one document.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Documents bundles the four season documents for one update run.
type Documents struct {
	Rosters     *league.Rosters
	Standings   *league.Standings
	History     *league.History
	PlayerStats *league.PlayerStats
}

// LoadAll reads every document, failing on the first error. An update run
// must not start from a partial load.
func LoadAll(ctx context.Context, s Store) (*Documents, error) {
	rosters, err := s.LoadRosters(ctx)
	if err != nil {
		return nil, err
	}
	standings, err := s.LoadStandings(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.LoadHistory(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.LoadPlayerStats(ctx)
	if err != nil {
		return nil, err
	}

	return &Documents{
		Rosters:     rosters,
		Standings:   standings,
		History:     history,
		PlayerStats: stats,
	}, nil
}

// SaveAll writes every document, failing on the first error.
func SaveAll(ctx context.Context, s Store, docs *Documents) error {
	if err := s.SaveRosters(ctx, docs.Rosters); err != nil {
		return err
	}
	if err := s.SaveStandings(ctx, docs.Standings); err != nil {
		return err
	}
	if err := s.SaveHistory(ctx, docs.History); err != nil {
		return err
	}
	return s.SavePlayerStats(ctx, docs.PlayerStats)
}
