package league

// Add appends a scored tournament to the history, evicting the oldest
// entries to keep at most MaxHistoryEntries.
func (h *History) Add(record TournamentRecord) {
	h.Tournaments = append(h.Tournaments, record)
	if len(h.Tournaments) > MaxHistoryEntries {
		h.Tournaments = h.Tournaments[len(h.Tournaments)-MaxHistoryEntries:]
	}
}

// BuildTournamentRecord summarizes one scored tournament for the history:
// every rostered player's finish there and the fantasy points it produced.
// Call it after ApplyWeek so the players' score entries exist.
func BuildTournamentRecord(rosters *Rosters, ev EventResults, week int) TournamentRecord {
	record := TournamentRecord{
		Name:           ev.Name,
		EventID:        ev.EventID,
		Date:           ev.EndDate,
		Tier:           ev.Tier.Display,
		Week:           week,
		FantasyResults: []FantasyResult{},
	}

	for _, team := range rosters.Teams {
		for _, p := range team.Players {
			for _, entry := range p.WeeklyScores {
				if entry.Week != week || entry.Tournament != ev.Name {
					continue
				}
				record.FantasyResults = append(record.FantasyResults, FantasyResult{
					Player:    p.Name,
					Team:      team.TeamName,
					Finish:    Ordinal(entry.Placement) + " place",
					Placement: entry.Placement,
					Points:    entry.Score,
				})
			}
		}
	}

	return record
}
