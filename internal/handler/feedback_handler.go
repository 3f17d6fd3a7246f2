// internal/handler/feedback_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/repository"
)

// FeedbackHandler holds the dependencies for feedback HTTP handlers
type FeedbackHandler struct {
	Repo repository.FeedbackRepositoryInterface
}

// SubmitFeedbackHandler records community feedback
func (h *FeedbackHandler) SubmitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Message  string `json:"message"`
		Language string `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Message == "" {
		http.Error(w, "feedback message is required", http.StatusBadRequest)
		return
	}
	if payload.Language == "" {
		payload.Language = "English"
	}

	feedback := model.Feedback{
		Name:        payload.Name,
		Message:     payload.Message,
		Language:    payload.Language,
		SubmittedAt: time.Now(),
	}
	if err := h.Repo.Add(feedback); err != nil {
		http.Error(w, "failed to save feedback: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Thank you for your feedback!"})
}

// ListFeedbackHandler returns recent feedback, newest first
func (h *FeedbackHandler) ListFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	feedback, err := h.Repo.ListRecent(limit)
	if err != nil {
		http.Error(w, "failed to fetch feedback: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": feedback})
}
