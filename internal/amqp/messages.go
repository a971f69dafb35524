package amqp

import (
	"encoding/json"
	"time"
)

// EntryEventMessage notifies the balance worker that one user's ledger
// changed. It carries only identifiers; the worker recomputes from the
// database, so a stale or duplicated message is harmless.
type EntryEventMessage struct {
	Action    string    `json:"action"`
	EntryID   int64     `json:"entry_id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryEventMessage(action string, entryID, userID int64) *EntryEventMessage {
	return &EntryEventMessage{
		Action:    action,
		EntryID:   entryID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *EntryEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryEventMessageFromJSON(data []byte) (*EntryEventMessage, error) {
	var msg EntryEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
