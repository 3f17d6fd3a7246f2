package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/service"
)

type MockFeedbackRepo struct {
	feedback []model.Feedback
}

func (m *MockFeedbackRepo) Add(f model.Feedback) error { return nil }

func (m *MockFeedbackRepo) ListAll() ([]model.Feedback, error) { return m.feedback, nil }

func (m *MockFeedbackRepo) ListRecent(n int) ([]model.Feedback, error) { return m.feedback, nil }

type MockReminderRepo struct {
	reminders []model.Reminder
}

func (m *MockReminderRepo) Add(rem model.Reminder) (model.Reminder, error) { return rem, nil }

func (m *MockReminderRepo) List(statuses []string) ([]model.Reminder, error) {
	return m.reminders, nil
}

func (m *MockReminderRepo) Complete(id uuid.UUID) error { return nil }

type MockOutboxSnapshot struct {
	queue []model.OutboxEntry
	sent  []model.DeliveryLogEntry
}

func (m *MockOutboxSnapshot) Queue() []model.OutboxEntry    { return m.queue }
func (m *MockOutboxSnapshot) Log() []model.DeliveryLogEntry { return m.sent }

func TestDashboardOverview(t *testing.T) {
	now := time.Now()

	svc := &service.DashboardService{
		PartnerRepo: &MockPartnerRepo{partners: map[string]model.Partner{}},
		FeedbackRepo: &MockFeedbackRepo{feedback: []model.Feedback{
			{Name: "Anonymous", Message: "very helpful", Language: "Swahili", SubmittedAt: now.Add(-time.Hour)},
		}},
		ReminderRepo: &MockReminderRepo{reminders: []model.Reminder{
			{Task: "Visit Nyalenda clinic", Status: model.ReminderStatusPending},
			{Task: "Print posters", Status: model.ReminderStatusInProgress},
			{Task: "Book hall", Status: model.ReminderStatusCompleted},
		}},
		Outbox: &MockOutboxSnapshot{
			queue: []model.OutboxEntry{
				{Recipient: "+254700000009", Status: model.OutboxStatusRetrying},
			},
			sent: []model.DeliveryLogEntry{
				{Recipient: "+254700000001", Language: "Luo", Channel: "sms", SentAt: now.Add(-2 * time.Hour), Status: model.LogStatusSent},
				{Recipient: "+254700000002", Language: "Luo", Channel: "voice", SentAt: now.Add(-30 * time.Minute), Status: model.LogStatusSent},
				{Recipient: "+254700000003", Language: "Swahili", Channel: "sms", SentAt: now.Add(-10 * time.Minute), Status: model.LogStatusSent},
			},
		},
	}

	overview, err := svc.Overview()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overview.MessagesSent != 3 {
		t.Errorf("expected 3 messages sent, got %d", overview.MessagesSent)
	}
	if overview.FeedbackCount != 1 {
		t.Errorf("expected 1 feedback, got %d", overview.FeedbackCount)
	}
	if overview.ActiveReminders != 2 {
		t.Errorf("expected 2 active reminders, got %d", overview.ActiveReminders)
	}
	if overview.PendingOutbox != 1 {
		t.Errorf("expected 1 pending outbox entry, got %d", overview.PendingOutbox)
	}
	if overview.MessagesByLanguage["Luo"] != 2 || overview.MessagesByLanguage["Swahili"] != 1 {
		t.Errorf("unexpected language counts: %+v", overview.MessagesByLanguage)
	}

	if len(overview.RecentActivity) != 4 {
		t.Fatalf("expected 4 activity rows, got %d", len(overview.RecentActivity))
	}
	// Newest first across messages and feedback.
	for i := 1; i < len(overview.RecentActivity); i++ {
		if overview.RecentActivity[i].Date.After(overview.RecentActivity[i-1].Date) {
			t.Errorf("activity not sorted newest first at index %d", i)
		}
	}
}
