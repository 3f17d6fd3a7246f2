// internal/repository/feedback_repository.go
package repository

import (
	"sort"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
)

// FeedbackRepositoryInterface defines methods used by services and handlers
type FeedbackRepositoryInterface interface {
	Add(f model.Feedback) error
	ListAll() ([]model.Feedback, error)
	ListRecent(n int) ([]model.Feedback, error)
}

type FeedbackRepository struct {
	Store store.TableStore
}

func (r *FeedbackRepository) load() ([]model.Feedback, error) {
	var feedback []model.Feedback
	if err := r.Store.ReadTable(store.TableFeedback, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (r *FeedbackRepository) Add(f model.Feedback) error {
	if f.Name == "" {
		f.Name = "Anonymous"
	}
	feedback, err := r.load()
	if err != nil {
		return err
	}
	feedback = append(feedback, f)
	return r.Store.WriteTable(store.TableFeedback, feedback)
}

func (r *FeedbackRepository) ListAll() ([]model.Feedback, error) {
	return r.load()
}

// ListRecent returns the n most recent entries, newest first.
func (r *FeedbackRepository) ListRecent(n int) ([]model.Feedback, error) {
	feedback, err := r.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(feedback, func(i, j int) bool {
		return feedback[i].SubmittedAt.After(feedback[j].SubmittedAt)
	})
	if n > 0 && len(feedback) > n {
		feedback = feedback[:n]
	}
	return feedback, nil
}
