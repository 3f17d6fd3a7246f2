// internal/model/feedback.go
package model

import "time"

type Feedback struct {
	Name        string    `json:"name"`
	Message     string    `json:"message"`
	Language    string    `json:"language"`
	SubmittedAt time.Time `json:"submitted_at"`
}
