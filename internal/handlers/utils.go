package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
)

// formatJSONResponse converts a response struct to a formatted JSON string
func formatJSONResponse(response interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}

	return string(jsonBytes), nil
}

// newMetadata stamps a tool response with its source and a fresh run ID
func newMetadata(source string) league.Metadata {
	return league.Metadata{
		Timestamp: time.Now(),
		Source:    source,
		RunID:     uuid.New().String(),
	}
}
