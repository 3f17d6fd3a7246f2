// internal/handler/reminder_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appErrors "github.com/kisumu-health/sha-connect-backend/internal/errors"
	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/repository"
)

// ReminderHandler holds the dependencies for reminder HTTP handlers
type ReminderHandler struct {
	Repo repository.ReminderRepositoryInterface
}

// CreateReminderHandler adds a task reminder
func (h *ReminderHandler) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Task       string `json:"task"`
		DueDate    string `json:"due_date"`
		AssignedTo string `json:"assigned_to"`
		Status     string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Task == "" {
		http.Error(w, "task is required", http.StatusBadRequest)
		return
	}
	if payload.DueDate != "" {
		if _, err := time.Parse("2006-01-02", payload.DueDate); err != nil {
			http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	reminder, err := h.Repo.Add(model.Reminder{
		Task:       payload.Task,
		DueDate:    payload.DueDate,
		AssignedTo: payload.AssignedTo,
		Status:     payload.Status,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		http.Error(w, "failed to add reminder: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reminder)
}

// ListRemindersHandler returns reminders, optionally filtered by status
// (comma-separated, e.g. ?status=Pending,In Progress)
func (h *ReminderHandler) ListRemindersHandler(w http.ResponseWriter, r *http.Request) {
	var statuses []string
	if v := r.URL.Query().Get("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}

	reminders, err := h.Repo.List(statuses)
	if err != nil {
		http.Error(w, "failed to fetch reminders: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": reminders})
}

// CompleteReminderHandler marks a reminder as completed
func (h *ReminderHandler) CompleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid reminder id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Complete(id); err != nil {
		var notFound *appErrors.ErrReminderNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to complete reminder: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": model.ReminderStatusCompleted})
}
