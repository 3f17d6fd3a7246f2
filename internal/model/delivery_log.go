// internal/model/delivery_log.go
package model

import "time"

const LogStatusSent = "Sent"

// DeliveryLogEntry is the append-only record of a successfully sent message.
type DeliveryLogEntry struct {
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Language  string    `json:"language"`
	Channel   string    `json:"channel"`
	SentAt    time.Time `json:"sent_at"`
	Status    string    `json:"status"`
}
