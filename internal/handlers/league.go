package handlers

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
	"github.com/discline/pdga-fantasy-mcp-server/internal/store"
)

// LeagueHandler handles the MCP tools backed by the persisted season
// documents: standings, the player leaderboard, and tournament history.
type LeagueHandler struct {
	store  store.Store
	logger *logrus.Logger
}

// NewLeagueHandler creates a new league handler
func NewLeagueHandler(st store.Store, logger *logrus.Logger) *LeagueHandler {
	return &LeagueHandler{
		store:  st,
		logger: logger,
	}
}

// GetStandingsTool returns the MCP tool definition for get_standings
func (h *LeagueHandler) GetStandingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_standings",
		Description: "Get the current season standings with ranks, totals, and weekly breakdowns (lower totals rank higher)",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// HandleGetStandings handles the get_standings tool call
func (h *LeagueHandler) HandleGetStandings(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.Info("Handling get_standings")

	standings, err := h.store.LoadStandings(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load standings")

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Failed to load standings: %s", err.Error()),
				},
			},
			IsError: true,
		}, nil
	}

	summary := "No teams have been scored yet"
	if len(standings.Standings) > 0 {
		leader := standings.Standings[0]
		summary = fmt.Sprintf("Week %d standings: %s leads with %.1f points across %d teams",
			standings.CurrentWeek, leader.TeamName, leader.TotalScore, len(standings.Standings))
	}

	response := league.Response{
		Success:  true,
		Data:     standings,
		Summary:  summary,
		Metadata: newMetadata("store"),
	}

	jsonResponse, err := formatJSONResponse(response)
	if err != nil {
		h.logger.WithError(err).Error("Failed to format response")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Error formatting response: %s", err.Error()),
				},
			},
			IsError: true,
		}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: jsonResponse,
			},
		},
	}, nil
}

// GetPlayerStatsTool returns the MCP tool definition for get_player_stats
func (h *LeagueHandler) GetPlayerStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_player_stats",
		Description: "Get the per-player season leaderboard: totals, times counted, and average score when counted",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// HandleGetPlayerStats handles the get_player_stats tool call
func (h *LeagueHandler) HandleGetPlayerStats(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.Info("Handling get_player_stats")

	stats, err := h.store.LoadPlayerStats(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load player stats")

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Failed to load player stats: %s", err.Error()),
				},
			},
			IsError: true,
		}, nil
	}

	summary := fmt.Sprintf("Player leaderboard: %d players", len(stats.Players))
	if len(stats.Players) > 0 && stats.Players[0].TimesCounted > 0 {
		best := stats.Players[0]
		summary = fmt.Sprintf("Player leaderboard: %s leads at %.1f across %d players",
			best.Name, best.SeasonTotal, len(stats.Players))
	}

	response := league.Response{
		Success:  true,
		Data:     stats,
		Summary:  summary,
		Metadata: newMetadata("store"),
	}

	jsonResponse, err := formatJSONResponse(response)
	if err != nil {
		h.logger.WithError(err).Error("Failed to format response")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Error formatting response: %s", err.Error()),
				},
			},
			IsError: true,
		}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: jsonResponse,
			},
		},
	}, nil
}

// GetTournamentHistoryTool returns the MCP tool definition for get_tournament_history
func (h *LeagueHandler) GetTournamentHistoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_tournament_history",
		Description: fmt.Sprintf("Get the %d most recently scored tournaments with every rostered player's finish and fantasy points", league.MaxHistoryEntries),
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// HandleGetTournamentHistory handles the get_tournament_history tool call
func (h *LeagueHandler) HandleGetTournamentHistory(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.Info("Handling get_tournament_history")

	history, err := h.store.LoadHistory(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load tournament history")

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Failed to load tournament history: %s", err.Error()),
				},
			},
			IsError: true,
		}, nil
	}

	summary := "No tournaments scored yet"
	if len(history.Tournaments) > 0 {
		latest := history.Tournaments[len(history.Tournaments)-1]
		summary = fmt.Sprintf("%d recent tournaments on record, most recent: %s (week %d)",
			len(history.Tournaments), latest.Name, latest.Week)
	}

	response := league.Response{
		Success:  true,
		Data:     history,
		Summary:  summary,
		Metadata: newMetadata("store"),
	}

	jsonResponse, err := formatJSONResponse(response)
	if err != nil {
		h.logger.WithError(err).Error("Failed to format response")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Error formatting response: %s", err.Error()),
				},
			},
			IsError: true,
		}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: jsonResponse,
			},
		},
	}, nil
}
