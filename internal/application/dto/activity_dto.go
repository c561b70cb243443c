package dto

import (
	"encoding/json"
	"time"
)

// ActivityLogResponse entrada de la bitácora para GET /api/logs.
type ActivityLogResponse struct {
	ID         string          `json:"id"`
	ActionType string          `json:"action_type"`
	TableName  string          `json:"table_name"`
	RecordID   string          `json:"record_id"`
	Changes    json.RawMessage `json:"changes"`
	Actor      string          `json:"actor,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}
