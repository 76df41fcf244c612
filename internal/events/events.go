package events

import (
	"encoding/json"
	"time"
)

// Challenge lifecycle event types published to the lobby stream
const (
	TypeChallengeCreated   = "challenge.created"
	TypeChallengeAccepted  = "challenge.accepted"
	TypeChallengeDeclined  = "challenge.declined"
	TypeChallengeActivated = "challenge.activated"
	TypeChallengeCompleted = "challenge.completed"
	TypeChallengeDisputed  = "challenge.disputed"
	TypeChallengeExpired   = "challenge.expired"
	TypePresence           = "presence"
)

// Event represents a lobby event published to the Redis Stream
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// ChallengePayload is the payload for challenge lifecycle events
type ChallengePayload struct {
	ChallengeID string  `json:"challengeId"`
	Status      string  `json:"status"`
	Challenger  string  `json:"challenger"`
	Game        string  `json:"game"`
	Platform    string  `json:"platform"`
	Stake       float64 `json:"stake"`
	IsPublic    bool    `json:"isPublic"`
	Winner      string  `json:"winner,omitempty"`
}

// PresencePayload carries the current online count
type PresencePayload struct {
	Online int64 `json:"online"`
}

// NewEvent wraps a payload into an Event with the current timestamp
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// UnmarshalEvent decodes an event from its stream representation
func UnmarshalEvent(data string) (*Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}
	return &event, nil
}
