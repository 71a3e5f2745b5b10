package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sync message actions.
const (
	ActionSync   = "sync"
	ActionDelete = "delete"
)

// TransactionSyncMessage is the lightweight queue message for exporting a
// transaction. It carries only the ID and action; the worker fetches the
// full record from the store.
type TransactionSyncMessage struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSyncMessage creates a message asking the worker to export a transaction.
func NewSyncMessage(id string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		ID:        id,
		Action:    ActionSync,
		Timestamp: time.Now(),
	}
}

// NewDeleteMessage creates a message asking the worker to remove an exported
// transaction.
func NewDeleteMessage(id string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		ID:        id,
		Action:    ActionDelete,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncMessageFromJSON creates a message from JSON bytes
func SyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("sync message without id")
	}
	switch msg.Action {
	case ActionSync, ActionDelete:
	default:
		return nil, fmt.Errorf("unknown sync action %q", msg.Action)
	}
	return &msg, nil
}
