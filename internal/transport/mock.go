// internal/transport/mock.go
package transport

import (
	"context"
	"fmt"
	"math/rand"
)

// MockSender simulates delivery with a configurable success rate. Used for
// local runs without Twilio credentials.
type MockSender struct {
	SuccessRate float64 // 0.0 .. 1.0
}

func NewMockSender() *MockSender {
	return &MockSender{SuccessRate: 0.9}
}

func (m *MockSender) Send(_ context.Context, channel, recipient, _ string) (bool, string) {
	if rand.Float64() < m.SuccessRate {
		return true, fmt.Sprintf("mock %s delivered to %s", channel, recipient)
	}
	return false, "mock sending failed"
}
