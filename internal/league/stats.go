package league

import (
	"sort"
	"time"
)

// RebuildPlayerStats derives the player leaderboard from the rosters.
// Players who have counted at least once sort ascending by season total
// (lower is better); players never counted follow in roster order with a
// zero average.
func RebuildPlayerStats(rosters *Rosters, now time.Time) *PlayerStats {
	var scored, unscored []PlayerStat

	for _, team := range rosters.Teams {
		for _, p := range team.Players {
			stat := PlayerStat{
				Name:              p.Name,
				PDGANumber:        p.PDGANumber,
				Team:              team.TeamName,
				Owner:             team.Owner,
				Underdog:          p.Underdog,
				SeasonTotal:       p.SeasonTotal,
				TournamentsPlayed: p.TournamentsPlayed,
				TimesCounted:      p.TimesCounted,
			}
			if p.TimesCounted > 0 {
				stat.AverageWhenCounted = p.SeasonTotal / float64(p.TimesCounted)
				scored = append(scored, stat)
			} else {
				unscored = append(unscored, stat)
			}
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SeasonTotal < scored[j].SeasonTotal
	})

	return &PlayerStats{
		Players:     append(scored, unscored...),
		LastUpdated: now,
	}
}
