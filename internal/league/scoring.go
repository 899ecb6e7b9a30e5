package league

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// topPlayersPerWeek is how many of a team's players count toward the team
// score each week.
const topPlayersPerWeek = 3

// Engine applies tournament results to rosters and weekly team breakdowns.
type Engine struct {
	logger *logrus.Logger
}

// NewEngine creates a scoring engine.
func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{logger: logger}
}

type playerWeek struct {
	player *Player
	score  float64
	plays  int
}

// ApplyWeek scores a batch of finished tournaments as the given week.
//
// Every placement becomes a weighted score (placement × tier multiplier,
// halved for the team's underdog) recorded on the player. Per team, the
// three lowest weekly player scores count; ties keep roster order, players
// who did not play are never counted. Counted players accumulate season
// totals and their entries for the week are marked counted. Each roster
// team gets a breakdown entry for the week, created in the standings if the
// team has no line yet. Standings totals and ranks are left for
// RecomputeStandings.
func (e *Engine) ApplyWeek(week int, events []EventResults, rosters *Rosters, standings *Standings) *WeekSummary {
	summary := &WeekSummary{Week: week}
	for _, ev := range events {
		summary.Tournaments = append(summary.Tournaments, ev.Name)
	}

	for ti := range rosters.Teams {
		team := &rosters.Teams[ti]

		var scored []playerWeek
		for pi := range team.Players {
			player := &team.Players[pi]

			weekScore := 0.0
			plays := 0
			for ei := range events {
				ev := &events[ei]
				row := findResult(ev.Results, player.PDGANumber)
				if row == nil {
					continue
				}

				raw := float64(row.Placement)
				weighted := raw * ev.Tier.Multiplier
				if player.Underdog {
					weighted /= 2
				}

				player.WeeklyScores = append(player.WeeklyScores, ScoreEntry{
					Week:       week,
					Tournament: ev.Name,
					Placement:  row.Placement,
					RawScore:   raw,
					Score:      weighted,
					Tier:       ev.Tier.Display,
				})
				player.TournamentsPlayed++
				weekScore += weighted
				plays++

				e.logger.WithFields(logrus.Fields{
					"team":       team.TeamName,
					"player":     player.Name,
					"tournament": ev.Name,
					"placement":  row.Placement,
					"score":      weighted,
				}).Debug("Scored player result")
			}

			if plays > 0 {
				scored = append(scored, playerWeek{player: player, score: weekScore, plays: plays})
			}
		}

		// Lowest scores count; stable sort keeps roster order on ties.
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].score < scored[j].score
		})

		k := topPlayersPerWeek
		if len(scored) < k {
			k = len(scored)
		}
		counted := scored[:k]

		teamScore := 0.0
		var top []TopPlayer
		for _, pw := range counted {
			teamScore += pw.score
			top = append(top, TopPlayer{Name: pw.player.Name, Score: pw.score, Tournaments: pw.plays})

			pw.player.SeasonTotal += pw.score
			pw.player.TimesCounted++
			for i := range pw.player.WeeklyScores {
				if pw.player.WeeklyScores[i].Week == week {
					pw.player.WeeklyScores[i].Counted = true
				}
			}
		}

		st := ensureTeamStanding(standings, team.TeamName, team.Owner)
		st.WeeklyBreakdown = append(st.WeeklyBreakdown, WeekResult{Week: week, Score: teamScore, TopPlayers: top})

		summary.Teams = append(summary.Teams, TeamWeekResult{TeamName: team.TeamName, Score: teamScore, TopPlayers: top})

		e.logger.WithFields(logrus.Fields{
			"team":    team.TeamName,
			"week":    week,
			"score":   teamScore,
			"counted": len(top),
		}).Info("Applied weekly team score")
	}

	return summary
}

// findResult locates a player's row in event results by PDGA number.
func findResult(results []PlayerResult, pdgaNumber int) *PlayerResult {
	if pdgaNumber == 0 {
		return nil
	}
	for i := range results {
		if results[i].PDGANumber == pdgaNumber {
			return &results[i]
		}
	}
	return nil
}

// ensureTeamStanding finds a team's standings line, creating one for roster
// teams that have never been scored.
func ensureTeamStanding(s *Standings, teamName, owner string) *TeamStanding {
	for i := range s.Standings {
		if s.Standings[i].TeamName == teamName {
			return &s.Standings[i]
		}
	}
	s.Standings = append(s.Standings, TeamStanding{TeamName: teamName, Owner: owner})
	return &s.Standings[len(s.Standings)-1]
}
