// internal/model/outbox_entry.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Outbox entry status constants
const (
	OutboxStatusPending  = "Pending"
	OutboxStatusRetrying = "Retrying"
	OutboxStatusFailed   = "Failed"
)

// Delivery channels
const (
	ChannelSMS   = "sms"
	ChannelVoice = "voice"
)

// OutboxEntry is a queued message waiting for delivery. Entries are keyed by
// a generated ID rather than table position, so removals during a drain pass
// cannot alias neighbouring rows.
type OutboxEntry struct {
	ID        uuid.UUID `json:"id"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Language  string    `json:"language"`
	Channel   string    `json:"channel"` // sms, voice
	Attempts  int       `json:"attempts"`
	Status    string    `json:"status"` // Pending, Retrying, Failed
	CreatedAt time.Time `json:"created_at"`
}

// CanAttempt reports whether the entry still has retry budget left.
func (e *OutboxEntry) CanAttempt(maxAttempts int) bool {
	return e.Attempts < maxAttempts
}
