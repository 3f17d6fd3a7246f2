// internal/transport/sender.go
package transport

import "context"

// Sender delivers a single message over a channel (sms or voice). Delivery
// problems (rejected numbers, provider outages, missing credentials) are all
// reported as ok=false with a human-readable info string, never as an error.
// The outbox retry path is the one degradation mechanism regardless of why
// delivery failed.
type Sender interface {
	Send(ctx context.Context, channel, recipient, message string) (ok bool, info string)
}
