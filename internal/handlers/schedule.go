package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
	"github.com/discline/pdga-fantasy-mcp-server/internal/schedule"
)

// GetScheduleArgs represents the parameters for the get_schedule tool
type GetScheduleArgs struct {
	UpcomingDays     int  `json:"upcoming_days,omitempty"`
	WithEventIDsOnly bool `json:"with_event_ids_only,omitempty"`
}

// FindTournamentArgs represents the parameters for the find_tournament tool
type FindTournamentArgs struct {
	Query string `json:"query"`
}

// ScheduleHandler handles schedule lookup MCP tools
type ScheduleHandler struct {
	schedule *schedule.Schedule
	logger   *logrus.Logger
	now      func() time.Time
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(s *schedule.Schedule, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedule: s,
		logger:   logger,
		now:      time.Now,
	}
}

// GetScheduleTool returns the MCP tool definition for get_schedule
func (h *ScheduleHandler) GetScheduleTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_schedule",
		Description: "Get the resolved season tournament schedule with tiers, dates, and PDGA event IDs",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"upcoming_days": map[string]interface{}{
					"type":        "integer",
					"description": "Only include tournaments starting within this many days, sorted by start date",
					"required":    false,
				},
				"with_event_ids_only": map[string]interface{}{
					"type":        "boolean",
					"description": "Only include tournaments that already carry a PDGA event ID",
					"required":    false,
				},
			},
		},
	}
}

// HandleGetSchedule handles the get_schedule tool call
func (h *ScheduleHandler) HandleGetSchedule(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_schedule")

	// Parse optional arguments
	upcomingDays := 0
	if upcomingRaw, exists := args["upcoming_days"]; exists {
		if upcomingFloat, ok := upcomingRaw.(float64); ok {
			upcomingDays = int(upcomingFloat)
		}
	}

	withEventIDsOnly := false
	if withIDsRaw, exists := args["with_event_ids_only"]; exists {
		if b, ok := withIDsRaw.(bool); ok {
			withEventIDsOnly = b
		}
	}

	now := h.now()

	var tournaments []*schedule.Tournament
	if upcomingDays > 0 {
		tournaments = h.schedule.Upcoming(now, upcomingDays)
	} else {
		for i := range h.schedule.Tournaments {
			tournaments = append(tournaments, &h.schedule.Tournaments[i])
		}
	}

	if withEventIDsOnly {
		var filtered []*schedule.Tournament
		for _, t := range tournaments {
			if t.HasEventID() {
				filtered = append(filtered, t)
			}
		}
		tournaments = filtered
	}

	withIDs := 0
	for _, t := range tournaments {
		if t.HasEventID() {
			withIDs++
		}
	}

	var summary string
	if upcomingDays > 0 {
		summary = fmt.Sprintf("%d tournaments starting in the next %d days", len(tournaments), upcomingDays)
	} else {
		summary = fmt.Sprintf("%d tournaments on the %d schedule, %d with event IDs", len(tournaments), now.Year(), withIDs)
	}

	response := league.Response{
		Success: true,
		Data: map[string]interface{}{
			"season":      now.Year(),
			"tournaments": tournaments,
		},
		Summary:  summary,
		Metadata: newMetadata("schedule"),
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

// FindTournamentTool returns the MCP tool definition for find_tournament
func (h *ScheduleHandler) FindTournamentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "find_tournament",
		Description: "Find a scheduled tournament by PDGA event ID or by a case-insensitive name fragment",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "A numeric PDGA event ID or part of a tournament name",
					"required":    true,
				},
			},
		},
	}
}

// HandleFindTournament handles the find_tournament tool call
func (h *ScheduleHandler) HandleFindTournament(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling find_tournament")

	// Parse arguments
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query is required and must be a string")
	}

	// A numeric query is an event ID; anything else matches on name.
	var tournament *schedule.Tournament
	if _, err := strconv.Atoi(query); err == nil {
		tournament = h.schedule.FindByEventID(query)
	} else {
		tournament = h.schedule.FindByName(query)
	}

	if tournament == nil {
		h.logger.WithField("query", query).Warn("No scheduled tournament matched")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("No scheduled tournament matches %q", query),
				},
			},
			IsError: true,
		}, nil
	}

	summary := fmt.Sprintf("%s (%s) runs %s", tournament.Name, tournament.Tier.Display, tournament.DatesRaw)
	if tournament.HasEventID() {
		summary += fmt.Sprintf(", PDGA event %s", tournament.EventID)
	}

	response := league.Response{
		Success:  true,
		Data:     tournament,
		Summary:  summary,
		Metadata: newMetadata("schedule"),
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
