package amqp

import (
	"encoding/json"
	"time"
)

// RefreshMessage announces that the once-per-day recomputation ran. It
// carries the headline numbers so a consumer can display them without
// opening the store.
type RefreshMessage struct {
	Day            string    `json:"day"`
	Saved          int64     `json:"saved"`
	Target         int64     `json:"target"`
	Percentage     float64   `json:"percentage"`
	RemainingDays  int       `json:"remainingDays"`
	NeededPerMonth int64     `json:"neededPerMonth"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewRefreshMessage creates a refresh message stamped with the current time
func NewRefreshMessage(day string, saved, target int64, pct float64, remainingDays int, neededPerMonth int64) *RefreshMessage {
	return &RefreshMessage{
		Day:            day,
		Saved:          saved,
		Target:         target,
		Percentage:     pct,
		RemainingDays:  remainingDays,
		NeededPerMonth: neededPerMonth,
		Timestamp:      time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RefreshMessageFromJSON creates a message from JSON bytes
func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
