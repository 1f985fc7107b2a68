package spamlogs

import (
	"encoding/json"
	"time"
)

// Log is an append-only record of a rejected spam submission.
type Log struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ProjectID string          `json:"project_id"`
	SourceIP  string          `json:"source_ip,omitempty"`
	UserAgent string          `json:"user_agent,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type Filter struct {
	Limit  int
	Offset int
}
