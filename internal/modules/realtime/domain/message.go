package domain

import "time"

// Message is what the websocket feed sends to its clients.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// MetadataReservationCode is the metadata key clients can filter on.
const MetadataReservationCode = "reservationCode"

// NewSystemMessage builds a system.<action> message.
func NewSystemMessage(action string, data any) *Message {
	return &Message{
		Topic:     CustomTopic(SystemEntity, action),
		Entity:    SystemEntity,
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
