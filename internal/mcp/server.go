package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/handlers"
	"github.com/discline/pdga-fantasy-mcp-server/internal/schedule"
	"github.com/discline/pdga-fantasy-mcp-server/internal/store"
	"github.com/discline/pdga-fantasy-mcp-server/internal/updater"
)

// NewLeagueMCPServer wires the league collaborators into an MCP server
// exposing the fantasy league tools over stdio.
func NewLeagueMCPServer(sched *schedule.Schedule, st store.Store, u *updater.Updater, logger *logrus.Logger) *server.DefaultServer {
	// Create handlers
	scheduleHandler := handlers.NewScheduleHandler(sched, logger)
	leagueHandler := handlers.NewLeagueHandler(st, logger)
	updateHandler := handlers.NewUpdateHandler(u, logger)

	// Create MCP server
	s := server.NewDefaultServer("PDGA Fantasy League", "1.0.0")

	if s == nil {
		logger.Error("Failed to create MCP server instance")
		return nil
	}

	logger.Info("MCP server instance created successfully")

	// Set up list tools handler
	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		tools := []mcp.Tool{
			scheduleHandler.GetScheduleTool(),
			scheduleHandler.FindTournamentTool(),
			leagueHandler.GetStandingsTool(),
			leagueHandler.GetPlayerStatsTool(),
			leagueHandler.GetTournamentHistoryTool(),
			updateHandler.GetTournamentResultsTool(),
			updateHandler.RunWeeklyUpdateTool(),
		}

		logger.WithField("tools_count", len(tools)).Info("Listing available tools")

		return &mcp.ListToolsResult{
			Tools: tools,
		}, nil
	})

	// Set up call tool handler
	s.HandleCallTool(func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		logger.WithFields(logrus.Fields{
			"tool": name,
			"args": arguments,
		}).Info("Tool called")

		// Route to specific tool handlers
		switch name {
		case "get_schedule":
			return scheduleHandler.HandleGetSchedule(ctx, arguments)
		case "find_tournament":
			return scheduleHandler.HandleFindTournament(ctx, arguments)
		case "get_standings":
			return leagueHandler.HandleGetStandings(ctx, arguments)
		case "get_player_stats":
			return leagueHandler.HandleGetPlayerStats(ctx, arguments)
		case "get_tournament_history":
			return leagueHandler.HandleGetTournamentHistory(ctx, arguments)
		case "get_tournament_results":
			return updateHandler.HandleGetTournamentResults(ctx, arguments)
		case "run_weekly_update":
			return updateHandler.HandleRunWeeklyUpdate(ctx, arguments)
		default:
			logger.WithField("tool", name).Warn("Unknown tool called")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Type: "text",
						Text: "Unknown tool: " + name,
					},
				},
				IsError: true,
			}, nil
		}
	})

	logger.Info("All tools registered successfully")
	return s
}
