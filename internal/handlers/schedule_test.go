package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/discline/pdga-fantasy-mcp-server/internal/schedule"
)

const handlerScheduleFixture = `Supreme Flight Open, ES, February 27 - March 1, 88276
The Open at Austin, ESP, March 6 - 8
Jonesboro Open, ES, April 3 - 5, 88278
Bad Date Classic, ES, TBD
`

func newTestScheduleHandler(t *testing.T) *ScheduleHandler {
	t.Helper()

	logger, _ := test.NewNullLogger()
	s, err := schedule.Load(strings.NewReader(handlerScheduleFixture),
		time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), logger)
	if err != nil {
		t.Fatalf("Failed to load schedule fixture: %v", err)
	}

	h := NewScheduleHandler(s, logger)
	h.now = func() time.Time {
		return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	}
	return h
}

func textFromResult(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if result == nil {
		t.Fatal("Expected result but got nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content")
	}
	if textContent.Text == "" {
		t.Fatal("Expected non-empty text content")
	}
	return textContent.Text
}

func TestScheduleHandler_GetScheduleTool(t *testing.T) {
	handler := newTestScheduleHandler(t)

	tool := handler.GetScheduleTool()

	if tool.Name != "get_schedule" {
		t.Errorf("Expected tool name 'get_schedule', got '%s'", tool.Name)
	}
	if tool.Description == "" {
		t.Error("Expected tool description to be set")
	}
	if tool.InputSchema.Type != "object" {
		t.Errorf("Expected input schema type 'object', got '%s'", tool.InputSchema.Type)
	}
	if _, exists := tool.InputSchema.Properties["upcoming_days"]; !exists {
		t.Error("Expected upcoming_days property in input schema")
	}
	if _, exists := tool.InputSchema.Properties["with_event_ids_only"]; !exists {
		t.Error("Expected with_event_ids_only property in input schema")
	}
}

func TestScheduleHandler_HandleGetSchedule(t *testing.T) {
	tests := []struct {
		name            string
		args            map[string]interface{}
		expectedSummary string
		expectContains  []string
		expectAbsent    []string
	}{
		{
			name:            "full schedule",
			args:            map[string]interface{}{},
			expectedSummary: "4 tournaments on the 2025 schedule, 2 with event IDs",
			expectContains:  []string{"Supreme Flight Open", "Bad Date Classic"},
		},
		{
			// JSON numbers arrive as float64.
			name:            "upcoming window",
			args:            map[string]interface{}{"upcoming_days": float64(10)},
			expectedSummary: "1 tournaments starting in the next 10 days",
			expectContains:  []string{"The Open at Austin"},
			expectAbsent:    []string{"Jonesboro Open", "Supreme Flight Open"},
		},
		{
			name:            "event ids only",
			args:            map[string]interface{}{"with_event_ids_only": true},
			expectedSummary: "2 tournaments on the 2025 schedule, 2 with event IDs",
			expectContains:  []string{"Supreme Flight Open", "Jonesboro Open"},
			expectAbsent:    []string{"The Open at Austin", "Bad Date Classic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestScheduleHandler(t)

			result, err := handler.HandleGetSchedule(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result.IsError {
				t.Fatal("Expected successful result but got error")
			}

			text := textFromResult(t, result)
			if !strings.Contains(text, tt.expectedSummary) {
				t.Errorf("Expected summary %q in response", tt.expectedSummary)
			}
			for _, want := range tt.expectContains {
				if !strings.Contains(text, want) {
					t.Errorf("Expected %q in response", want)
				}
			}
			for _, unwanted := range tt.expectAbsent {
				if strings.Contains(text, unwanted) {
					t.Errorf("Did not expect %q in response", unwanted)
				}
			}
		})
	}
}

func TestScheduleHandler_FindTournamentTool(t *testing.T) {
	handler := newTestScheduleHandler(t)

	tool := handler.FindTournamentTool()

	if tool.Name != "find_tournament" {
		t.Errorf("Expected tool name 'find_tournament', got '%s'", tool.Name)
	}
	if tool.Description == "" {
		t.Error("Expected tool description to be set")
	}
	if _, exists := tool.InputSchema.Properties["query"]; !exists {
		t.Error("Expected query property in input schema")
	}
}

func TestScheduleHandler_HandleFindTournament(t *testing.T) {
	tests := []struct {
		name           string
		args           map[string]interface{}
		wantError      bool
		expectErrorMsg bool
		expectContains string
	}{
		{
			name:           "find by event id",
			args:           map[string]interface{}{"query": "88276"},
			expectContains: "Supreme Flight Open",
		},
		{
			name:           "find by name fragment",
			args:           map[string]interface{}{"query": "austin"},
			expectContains: "The Open at Austin",
		},
		{
			name:           "no match",
			args:           map[string]interface{}{"query": "Winthrop Gold"},
			expectErrorMsg: true,
		},
		{
			name:           "unknown event id does not fall back to names",
			args:           map[string]interface{}{"query": "99999"},
			expectErrorMsg: true,
		},
		{
			name:      "missing query",
			args:      map[string]interface{}{},
			wantError: true,
		},
		{
			name:      "invalid query type",
			args:      map[string]interface{}{"query": 88276},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestScheduleHandler(t)

			result, err := handler.HandleFindTournament(context.Background(), tt.args)

			if tt.wantError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
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
		})
	}
}
