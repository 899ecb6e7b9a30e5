// Package league implements the fantasy league core: the season documents,
// the weekly scoring engine, standings aggregation, the derived player
// leaderboard, and the bounded tournament history.
package league

import (
	"fmt"
	"time"

	"github.com/discline/pdga-fantasy-mcp-server/internal/schedule"
)

// Player is one rostered pro. Season accumulators live here and are
// mutated only by the scoring engine.
type Player struct {
	Name              string       `json:"name"`
	PDGANumber        int          `json:"pdga_number"`
	Underdog          bool         `json:"is_underdog,omitempty"`
	SeasonTotal       float64      `json:"season_total"`
	TimesCounted      int          `json:"times_counted"`
	TournamentsPlayed int          `json:"tournaments_played"`
	WeeklyScores      []ScoreEntry `json:"weekly_scores,omitempty"`
}

// ScoreEntry records one player's result at one tournament. Counted flips to
// true when the player lands in the team's weekly top three.
type ScoreEntry struct {
	Week       int     `json:"week"`
	Tournament string  `json:"tournament"`
	Placement  int     `json:"placement"`
	RawScore   float64 `json:"raw_score"`
	Score      float64 `json:"score"`
	Tier       string  `json:"tier"`
	Counted    bool    `json:"counted"`
}

// Team is one fantasy roster.
type Team struct {
	TeamName string   `json:"team_name"`
	Owner    string   `json:"owner,omitempty"`
	Players  []Player `json:"players"`
}

// Rosters is the rosters.json document.
type Rosters struct {
	LeagueName string `json:"league_name,omitempty"`
	Teams      []Team `json:"teams"`
}

// Standings is the standings.json document. ProcessedEvents carries the
// event key of every tournament ever scored, which is what makes update
// runs idempotent.
type Standings struct {
	Season          string         `json:"season,omitempty"`
	CurrentWeek     int            `json:"current_week"`
	ProcessedEvents []string       `json:"processed_events,omitempty"`
	Standings       []TeamStanding `json:"standings"`
	LastUpdated     time.Time      `json:"last_updated"`
}

// TeamStanding is one team's line in the standings table.
type TeamStanding struct {
	TeamName        string       `json:"team_name"`
	Owner           string       `json:"owner,omitempty"`
	Rank            int          `json:"rank,omitempty"`
	TotalScore      float64      `json:"total_score"`
	WeeksCounted    int          `json:"weeks_counted"`
	WeeklyBreakdown []WeekResult `json:"weekly_breakdown,omitempty"`
}

// WeekResult is one scored week inside a team's breakdown.
type WeekResult struct {
	Week       int         `json:"week"`
	Score      float64     `json:"score"`
	TopPlayers []TopPlayer `json:"top_3_players"`
}

// TopPlayer is one counted player inside a weekly result.
type TopPlayer struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Tournaments int     `json:"tournaments"`
}

// MaxHistoryEntries bounds the recent tournament history document.
const MaxHistoryEntries = 10

// History is the recent_tournaments.json document, newest last.
type History struct {
	Tournaments []TournamentRecord `json:"tournaments"`
}

// TournamentRecord is one scored tournament in the history.
type TournamentRecord struct {
	Name           string          `json:"name"`
	EventID        string          `json:"event_id,omitempty"`
	Date           *time.Time      `json:"date,omitempty"`
	Location       string          `json:"location,omitempty"`
	Tier           string          `json:"tier"`
	Week           int             `json:"week,omitempty"`
	FantasyResults []FantasyResult `json:"fantasy_results"`
}

// FantasyResult is one rostered player's finish at a historical tournament.
// Points is the weighted fantasy score the finish produced.
type FantasyResult struct {
	Player    string  `json:"player"`
	Team      string  `json:"team,omitempty"`
	Finish    string  `json:"finish"`
	Placement int     `json:"placement"`
	Points    float64 `json:"points"`
}

// PlayerStats is the player_stats.json leaderboard, rebuilt on every run.
type PlayerStats struct {
	Players     []PlayerStat `json:"player_stats"`
	LastUpdated time.Time    `json:"last_updated"`
}

// PlayerStat is one leaderboard line.
type PlayerStat struct {
	Name               string  `json:"name"`
	PDGANumber         int     `json:"pdga_number"`
	Team               string  `json:"team"`
	Owner              string  `json:"owner,omitempty"`
	Underdog           bool    `json:"is_underdog"`
	SeasonTotal        float64 `json:"season_total"`
	TournamentsPlayed  int     `json:"tournaments_played"`
	TimesCounted       int     `json:"times_counted"`
	AverageWhenCounted float64 `json:"average_when_counted"`
}

// EventResults is one finished tournament's results, provider-agnostic.
// EventKey is the idempotency key (event ID when known, else a name slug);
// EventID is set only when the real PDGA event ID is known.
type EventResults struct {
	Name     string         `json:"name"`
	EventKey string         `json:"event_key"`
	EventID  string         `json:"event_id,omitempty"`
	Tier     schedule.Tier  `json:"tier"`
	EndDate  *time.Time     `json:"end_date,omitempty"`
	Results  []PlayerResult `json:"results"`
}

// PlayerResult is one finisher in an event's division results.
type PlayerResult struct {
	Placement  int    `json:"placement"`
	PDGANumber int    `json:"pdga_number"`
	Name       string `json:"name"`
	Tied       bool   `json:"tied,omitempty"`
}

// WeekSummary reports what one update run scored.
type WeekSummary struct {
	Week        int              `json:"week"`
	Tournaments []string         `json:"tournaments"`
	Skipped     []string         `json:"skipped,omitempty"`
	Teams       []TeamWeekResult `json:"teams"`
}

// TeamWeekResult is one team's line in a week summary.
type TeamWeekResult struct {
	TeamName   string      `json:"team_name"`
	Score      float64     `json:"score"`
	TopPlayers []TopPlayer `json:"top_3_players"`
}

// Response is the envelope every MCP tool returns.
type Response struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Summary  string      `json:"summary"`
	Error    string      `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
	RunID         string    `json:"run_id"`
	Division      string    `json:"division,omitempty"`
	ProviderCalls int       `json:"provider_calls,omitempty"`
}

// Ordinal renders a placement with its English suffix: 1 -> "1st",
// 2 -> "2nd", 11 -> "11th", 23 -> "23rd".
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
