// internal/service/dashboard_service.go
package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/repository"
)

// OutboxSnapshot is the read-only view of the engine the dashboard needs.
type OutboxSnapshot interface {
	Queue() []model.OutboxEntry
	Log() []model.DeliveryLogEntry
}

type DashboardService struct {
	PartnerRepo  repository.PartnerRepositoryInterface
	FeedbackRepo repository.FeedbackRepositoryInterface
	ReminderRepo repository.ReminderRepositoryInterface
	Outbox       OutboxSnapshot
}

type Activity struct {
	Type    string    `json:"type"`
	Date    time.Time `json:"date"`
	Details string    `json:"details"`
}

type Overview struct {
	TotalPartners      int            `json:"total_partners"`
	MessagesSent       int            `json:"messages_sent"`
	FeedbackCount      int            `json:"feedback_count"`
	ActiveReminders    int            `json:"active_reminders"`
	PendingOutbox      int            `json:"pending_outbox"`
	MessagesByLanguage map[string]int `json:"messages_by_language"`
	RecentActivity     []Activity     `json:"recent_activity"`
}

// Overview aggregates the campaign counters shown on the dashboard.
func (s *DashboardService) Overview() (*Overview, error) {
	partners, err := s.PartnerRepo.ListAll()
	if err != nil {
		return nil, err
	}
	feedback, err := s.FeedbackRepo.ListAll()
	if err != nil {
		return nil, err
	}
	reminders, err := s.ReminderRepo.List(nil)
	if err != nil {
		return nil, err
	}

	active := 0
	for i := range reminders {
		if reminders[i].Active() {
			active++
		}
	}

	logged := s.Outbox.Log()
	byLanguage := map[string]int{}
	for _, entry := range logged {
		byLanguage[entry.Language]++
	}

	activity := make([]Activity, 0, 10)
	for _, entry := range logged {
		activity = append(activity, Activity{
			Type:    "Message",
			Date:    entry.SentAt,
			Details: fmt.Sprintf("%s to %s in %s", entry.Channel, entry.Recipient, entry.Language),
		})
	}
	for _, f := range feedback {
		activity = append(activity, Activity{
			Type:    "Feedback",
			Date:    f.SubmittedAt,
			Details: fmt.Sprintf("From %s in %s", f.Name, f.Language),
		})
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})
	if len(activity) > 10 {
		activity = activity[:10]
	}

	return &Overview{
		TotalPartners:      len(partners),
		MessagesSent:       len(logged),
		FeedbackCount:      len(feedback),
		ActiveReminders:    active,
		PendingOutbox:      len(s.Outbox.Queue()),
		MessagesByLanguage: byLanguage,
		RecentActivity:     activity,
	}, nil
}
