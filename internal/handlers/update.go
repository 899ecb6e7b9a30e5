package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
	"github.com/discline/pdga-fantasy-mcp-server/internal/updater"
)

// GetTournamentResultsArgs represents the parameters for the get_tournament_results tool
type GetTournamentResultsArgs struct {
	EventID  string `json:"event_id"`
	Division string `json:"division,omitempty"`
}

// RunWeeklyUpdateArgs represents the parameters for the run_weekly_update tool
type RunWeeklyUpdateArgs struct {
	WindowDays int  `json:"window_days,omitempty"`
	DryRun     bool `json:"dry_run,omitempty"`
}

// UpdateHandler handles the MCP tools that fetch live results from the PDGA
type UpdateHandler struct {
	updater *updater.Updater
	logger  *logrus.Logger
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(u *updater.Updater, logger *logrus.Logger) *UpdateHandler {
	return &UpdateHandler{
		updater: u,
		logger:  logger,
	}
}

// GetTournamentResultsTool returns the MCP tool definition for get_tournament_results
func (h *UpdateHandler) GetTournamentResultsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_tournament_results",
		Description: "Fetch one tournament's live results from the PDGA by event ID, with a fantasy preview for rostered players. Never mutates league documents.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"event_id": map[string]interface{}{
					"type":        "string",
					"description": "The PDGA event ID (e.g. 88276)",
					"required":    true,
				},
				"division": map[string]interface{}{
					"type":        "string",
					"description": "Division to fetch (default: the configured division)",
					"required":    false,
				},
			},
		},
	}
}

// HandleGetTournamentResults handles the get_tournament_results tool call
func (h *UpdateHandler) HandleGetTournamentResults(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_tournament_results")

	// Parse arguments
	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return nil, fmt.Errorf("event_id is required and must be a string")
	}

	division := ""
	if divisionRaw, exists := args["division"]; exists {
		if s, ok := divisionRaw.(string); ok {
			division = s
		}
	}

	preview, err := h.updater.FetchEvent(ctx, eventID, division)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch tournament results")

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Failed to fetch tournament results: %s", err.Error()),
				},
			},
			IsError: true,
		}, nil
	}

	name := preview.Event.Name
	if name == "" {
		name = fmt.Sprintf("Event %s", preview.Event.EventID)
	}

	metadata := newMetadata("pdga")
	metadata.Division = preview.Division
	metadata.ProviderCalls = 2

	response := league.Response{
		Success: true,
		Data:    preview,
		Summary: fmt.Sprintf("%s: %d %s finishers, %d roster hits",
			name, len(preview.Results), preview.Division, len(preview.RosterHits)),
		Metadata: metadata,
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

// RunWeeklyUpdateTool returns the MCP tool definition for run_weekly_update
func (h *UpdateHandler) RunWeeklyUpdateTool() mcp.Tool {
	return mcp.Tool{
		Name:        "run_weekly_update",
		Description: "Run the weekly league update: fetch finished tournaments, score rosters, recompute standings, and save. Already-scored tournaments are skipped, so re-running is safe.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"window_days": map[string]interface{}{
					"type":        "integer",
					"description": "How many days back to look for finished tournaments (default: the configured window)",
					"required":    false,
				},
				"dry_run": map[string]interface{}{
					"type":        "boolean",
					"description": "Fetch and score without saving any document",
					"required":    false,
				},
			},
		},
	}
}

// HandleRunWeeklyUpdate handles the run_weekly_update tool call
func (h *UpdateHandler) HandleRunWeeklyUpdate(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling run_weekly_update")

	// Parse optional arguments
	opts := updater.RunOptions{}
	if windowRaw, exists := args["window_days"]; exists {
		if windowFloat, ok := windowRaw.(float64); ok && windowFloat > 0 {
			opts.Window = time.Duration(windowFloat) * 24 * time.Hour
		}
	}
	if dryRunRaw, exists := args["dry_run"]; exists {
		if b, ok := dryRunRaw.(bool); ok {
			opts.DryRun = b
		}
	}

	summary, err := h.updater.RunWith(ctx, opts)
	if err != nil {
		h.logger.WithError(err).Error("Weekly update failed")

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Weekly update failed: %s", err.Error()),
				},
			},
			IsError: true,
		}, nil
	}

	var text string
	if len(summary.Tournaments) == 0 {
		text = fmt.Sprintf("No fresh tournaments to score (%d already processed)", len(summary.Skipped))
	} else {
		text = fmt.Sprintf("Week %d scored: %d tournaments, %d teams updated",
			summary.Week, len(summary.Tournaments), len(summary.Teams))
	}
	if opts.DryRun {
		text = "Dry run: " + text
	}

	metadata := newMetadata("updater")
	metadata.Division = h.updater.Division

	response := league.Response{
		Success:  true,
		Data:     summary,
		Summary:  text,
		Metadata: metadata,
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
