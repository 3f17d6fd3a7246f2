// internal/model/reminder.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Reminder status constants
const (
	ReminderStatusPending    = "Pending"
	ReminderStatusInProgress = "In Progress"
	ReminderStatusCompleted  = "Completed"
)

type Reminder struct {
	ID         uuid.UUID `json:"id"`
	Task       string    `json:"task"`
	DueDate    string    `json:"due_date"` // YYYY-MM-DD
	AssignedTo string    `json:"assigned_to"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Active reports whether the reminder still needs attention.
func (r *Reminder) Active() bool {
	return r.Status == ReminderStatusPending || r.Status == ReminderStatusInProgress
}
