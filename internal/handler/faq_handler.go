// internal/handler/faq_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kisumu-health/sha-connect-backend/internal/service"
)

// FAQHandler holds the dependencies for FAQ HTTP handlers
type FAQHandler struct {
	Service *service.FAQService
}

// ListFAQsHandler returns FAQs for a language (?lang=, default English)
func (h *FAQHandler) ListFAQsHandler(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.Service.List(r.URL.Query().Get("lang"))
	if err != nil {
		http.Error(w, "failed to fetch FAQs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": faqs})
}

// AskFAQHandler answers a free-text question by keyword match
func (h *FAQHandler) AskFAQHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
		Language string `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	answer, matched, err := h.Service.Answer(payload.Question, payload.Language)
	if err != nil {
		http.Error(w, "failed to answer question: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"answer":  answer,
		"matched": matched,
	})
}
