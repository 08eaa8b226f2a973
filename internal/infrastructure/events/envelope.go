package events

import (
	"encoding/json"
	"time"
)

// Envelope formato común de todos los mensajes publicados.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // orden_id
	Payload       json.RawMessage `json:"payload"`
}
