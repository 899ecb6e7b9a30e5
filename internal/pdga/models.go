package pdga

import "errors"

// EventRef identifies a PDGA event results page.
type EventRef struct {
	EventID string `json:"event_id"`
	Name    string `json:"name,omitempty"`
	URL     string `json:"url"`
}

// ResultRow is one finisher parsed from an event's division table.
type ResultRow struct {
	Placement  int    `json:"placement"`
	PDGANumber int    `json:"pdga_number"`
	Name       string `json:"name"`
	Tied       bool   `json:"tied,omitempty"`
}

// ErrNotFound reports that no PDGA event matched a query.
var ErrNotFound = errors.New("pdga event not found")

// IsNotFound reports whether err means an event could not be located.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// PDGAError represents a failed PDGA request or an unparseable page
type PDGAError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
	EventID    string `json:"event_id,omitempty"`
}

func (e *PDGAError) Error() string {
	return e.Message
}
