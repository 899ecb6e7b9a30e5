package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
	"github.com/discline/pdga-fantasy-mcp-server/internal/store"
)

// MockStore is a mock implementation of the store.Store interface for testing
type MockStore struct {
	LoadRostersFunc     func(ctx context.Context) (*league.Rosters, error)
	LoadStandingsFunc   func(ctx context.Context) (*league.Standings, error)
	LoadHistoryFunc     func(ctx context.Context) (*league.History, error)
	LoadPlayerStatsFunc func(ctx context.Context) (*league.PlayerStats, error)
	SaveRostersFunc     func(ctx context.Context, rosters *league.Rosters) error
	SaveStandingsFunc   func(ctx context.Context, standings *league.Standings) error
	SaveHistoryFunc     func(ctx context.Context, history *league.History) error
	SavePlayerStatsFunc func(ctx context.Context, stats *league.PlayerStats) error
}

func (m *MockStore) LoadRosters(ctx context.Context) (*league.Rosters, error) {
	if m.LoadRostersFunc != nil {
		return m.LoadRostersFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockStore) LoadStandings(ctx context.Context) (*league.Standings, error) {
	if m.LoadStandingsFunc != nil {
		return m.LoadStandingsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockStore) LoadHistory(ctx context.Context) (*league.History, error) {
	if m.LoadHistoryFunc != nil {
		return m.LoadHistoryFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockStore) LoadPlayerStats(ctx context.Context) (*league.PlayerStats, error) {
	if m.LoadPlayerStatsFunc != nil {
		return m.LoadPlayerStatsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockStore) SaveRosters(ctx context.Context, rosters *league.Rosters) error {
	if m.SaveRostersFunc != nil {
		return m.SaveRostersFunc(ctx, rosters)
	}
	return errors.New("not implemented")
}

func (m *MockStore) SaveStandings(ctx context.Context, standings *league.Standings) error {
	if m.SaveStandingsFunc != nil {
		return m.SaveStandingsFunc(ctx, standings)
	}
	return errors.New("not implemented")
}

func (m *MockStore) SaveHistory(ctx context.Context, history *league.History) error {
	if m.SaveHistoryFunc != nil {
		return m.SaveHistoryFunc(ctx, history)
	}
	return errors.New("not implemented")
}

func (m *MockStore) SavePlayerStats(ctx context.Context, stats *league.PlayerStats) error {
	if m.SavePlayerStatsFunc != nil {
		return m.SavePlayerStatsFunc(ctx, stats)
	}
	return errors.New("not implemented")
}

func TestLeagueHandler_ToolDefinitions(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := NewLeagueHandler(&MockStore{}, logger)

	tests := []struct {
		name string
		tool string
	}{
		{name: "standings tool", tool: "get_standings"},
		{name: "player stats tool", tool: "get_player_stats"},
		{name: "tournament history tool", tool: "get_tournament_history"},
	}

	tools := map[string]func() (name, description string){
		"get_standings": func() (string, string) {
			tool := handler.GetStandingsTool()
			return tool.Name, tool.Description
		},
		"get_player_stats": func() (string, string) {
			tool := handler.GetPlayerStatsTool()
			return tool.Name, tool.Description
		},
		"get_tournament_history": func() (string, string) {
			tool := handler.GetTournamentHistoryTool()
			return tool.Name, tool.Description
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, description := tools[tt.tool]()
			if name != tt.tool {
				t.Errorf("Expected tool name '%s', got '%s'", tt.tool, name)
			}
			if description == "" {
				t.Error("Expected tool description to be set")
			}
		})
	}
}

func TestLeagueHandler_HandleGetStandings(t *testing.T) {
	tests := []struct {
		name           string
		mockResponse   *league.Standings
		mockError      error
		expectErrorMsg bool
		expectContains string
	}{
		{
			name: "standings with teams",
			mockResponse: &league.Standings{
				Season:      "2025",
				CurrentWeek: 3,
				Standings: []league.TeamStanding{
					{TeamName: "Hyzer Flippers", Rank: 1, TotalScore: 21.5, WeeksCounted: 3},
					{TeamName: "Chain Gang", Rank: 2, TotalScore: 34.0, WeeksCounted: 3},
				},
				LastUpdated: time.Date(2025, time.March, 24, 9, 0, 0, 0, time.UTC),
			},
			expectContains: "Week 3 standings: Hyzer Flippers leads with 21.5 points across 2 teams",
		},
		{
			name:           "empty standings",
			mockResponse:   &league.Standings{Season: "2025"},
			expectContains: "No teams have been scored yet",
		},
		{
			name:           "store error",
			mockError:      &store.StoreError{Op: "load", Key: store.StandingsKey, Err: errors.New("no such file")},
			expectErrorMsg: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			mockStore := &MockStore{
				LoadStandingsFunc: func(ctx context.Context) (*league.Standings, error) {
					return tt.mockResponse, tt.mockError
				},
			}
			handler := NewLeagueHandler(mockStore, logger)

			result, err := handler.HandleGetStandings(context.Background(), map[string]interface{}{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if tt.expectErrorMsg {
				if !result.IsError {
					t.Error("Expected result to indicate error")
				}
				return
			}
			if result.IsError {
				t.Fatal("Expected successful result but got error")
			}

			text := textFromResult(t, result)
			if !strings.Contains(text, tt.expectContains) {
				t.Errorf("Expected %q in response", tt.expectContains)
			}
			if len(hook.Entries) == 0 {
				t.Error("Expected log entries")
			}
		})
	}
}

func TestLeagueHandler_HandleGetPlayerStats(t *testing.T) {
	tests := []struct {
		name           string
		mockResponse   *league.PlayerStats
		mockError      error
		expectErrorMsg bool
		expectContains string
	}{
		{
			name: "leaderboard with counted players",
			mockResponse: &league.PlayerStats{
				Players: []league.PlayerStat{
					{Name: "Calvin Heimburg", PDGANumber: 45971, Team: "Hyzer Flippers", SeasonTotal: 4.5, TimesCounted: 2, AverageWhenCounted: 2.25},
					{Name: "Benched Player", PDGANumber: 99999, Team: "Chain Gang"},
				},
			},
			expectContains: "Calvin Heimburg leads at 4.5 across 2 players",
		},
		{
			name: "nobody counted yet",
			mockResponse: &league.PlayerStats{
				Players: []league.PlayerStat{{Name: "Benched Player", PDGANumber: 99999, Team: "Chain Gang"}},
			},
			expectContains: "Player leaderboard: 1 players",
		},
		{
			name:           "store error",
			mockError:      &store.StoreError{Op: "load", Key: store.PlayerStatsKey, Err: errors.New("corrupt json")},
			expectErrorMsg: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			mockStore := &MockStore{
				LoadPlayerStatsFunc: func(ctx context.Context) (*league.PlayerStats, error) {
					return tt.mockResponse, tt.mockError
				},
			}
			handler := NewLeagueHandler(mockStore, logger)

			result, err := handler.HandleGetPlayerStats(context.Background(), map[string]interface{}{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if tt.expectErrorMsg {
				if !result.IsError {
					t.Error("Expected result to indicate error")
				}
				return
			}

			text := textFromResult(t, result)
			if !strings.Contains(text, tt.expectContains) {
				t.Errorf("Expected %q in response", tt.expectContains)
			}
		})
	}
}

func TestLeagueHandler_HandleGetTournamentHistory(t *testing.T) {
	tests := []struct {
		name           string
		mockResponse   *league.History
		mockError      error
		expectErrorMsg bool
		expectContains string
	}{
		{
			name: "history with records",
			mockResponse: &league.History{
				Tournaments: []league.TournamentRecord{
					{Name: "Supreme Flight Open", EventID: "88276", Tier: "Elite", Week: 1},
					{Name: "Jonesboro Open", EventID: "88278", Tier: "Elite", Week: 2},
				},
			},
			expectContains: "2 recent tournaments on record, most recent: Jonesboro Open (week 2)",
		},
		{
			name:           "empty history",
			mockResponse:   &league.History{},
			expectContains: "No tournaments scored yet",
		},
		{
			name:           "store error",
			mockError:      &store.StoreError{Op: "load", Key: store.HistoryKey, Err: errors.New("no such file")},
			expectErrorMsg: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			mockStore := &MockStore{
				LoadHistoryFunc: func(ctx context.Context) (*league.History, error) {
					return tt.mockResponse, tt.mockError
				},
			}
			handler := NewLeagueHandler(mockStore, logger)

			result, err := handler.HandleGetTournamentHistory(context.Background(), map[string]interface{}{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if tt.expectErrorMsg {
				if !result.IsError {
					t.Error("Expected result to indicate error")
				}
				return
			}

			text := textFromResult(t, result)
			if !strings.Contains(text, tt.expectContains) {
				t.Errorf("Expected %q in response", tt.expectContains)
			}
		})
	}
}
