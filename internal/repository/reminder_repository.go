// internal/repository/reminder_repository.go
package repository

import (
	"github.com/google/uuid"

	appErrors "github.com/kisumu-health/sha-connect-backend/internal/errors"
	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
)

// ReminderRepositoryInterface defines methods used by services and handlers
type ReminderRepositoryInterface interface {
	Add(rem model.Reminder) (model.Reminder, error)
	List(statuses []string) ([]model.Reminder, error)
	Complete(id uuid.UUID) error
}

type ReminderRepository struct {
	Store store.TableStore
}

func (r *ReminderRepository) load() ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.Store.ReadTable(store.TableReminders, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *ReminderRepository) Add(rem model.Reminder) (model.Reminder, error) {
	if rem.ID == uuid.Nil {
		rem.ID = uuid.New()
	}
	if rem.Status == "" {
		rem.Status = model.ReminderStatusPending
	}
	reminders, err := r.load()
	if err != nil {
		return model.Reminder{}, err
	}
	reminders = append(reminders, rem)
	if err := r.Store.WriteTable(store.TableReminders, reminders); err != nil {
		return model.Reminder{}, err
	}
	return rem, nil
}

// List returns reminders whose status is in statuses; an empty filter means
// all of them.
func (r *ReminderRepository) List(statuses []string) ([]model.Reminder, error) {
	reminders, err := r.load()
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return reminders, nil
	}
	wanted := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}
	filtered := []model.Reminder{}
	for _, rem := range reminders {
		if wanted[rem.Status] {
			filtered = append(filtered, rem)
		}
	}
	return filtered, nil
}

func (r *ReminderRepository) Complete(id uuid.UUID) error {
	reminders, err := r.load()
	if err != nil {
		return err
	}
	for i := range reminders {
		if reminders[i].ID == id {
			reminders[i].Status = model.ReminderStatusCompleted
			return r.Store.WriteTable(store.TableReminders, reminders)
		}
	}
	return appErrors.NewReminderNotFound(id.String())
}
