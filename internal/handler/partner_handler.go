// internal/handler/partner_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/repository"
)

// PartnerHandler holds the dependencies for partner-related HTTP handlers
type PartnerHandler struct {
	Repo repository.PartnerRepositoryInterface
}

// CreatePartnerHandler registers a new outreach partner
func (h *PartnerHandler) CreatePartnerHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string   `json:"name"`
		Role      string   `json:"role"`
		Languages []string `json:"languages"`
		Contact   string   `json:"contact"`
		Campaign  string   `json:"campaign"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		http.Error(w, "partner name is required", http.StatusBadRequest)
		return
	}

	partner := model.Partner{
		Name:      payload.Name,
		Role:      payload.Role,
		Languages: payload.Languages,
		Contact:   payload.Contact,
		Campaign:  payload.Campaign,
	}
	if err := h.Repo.Add(partner); err != nil {
		http.Error(w, "failed to add partner: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(partner)
}

// ListPartnersHandler returns all registered partners
func (h *PartnerHandler) ListPartnersHandler(w http.ResponseWriter, r *http.Request) {
	partners, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "failed to fetch partners: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": partners})
}

// SearchPartnersHandler filters partners by name substring
func (h *PartnerHandler) SearchPartnersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "missing search query", http.StatusBadRequest)
		return
	}

	partners, err := h.Repo.SearchByName(q)
	if err != nil {
		http.Error(w, "failed to search partners: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": partners})
}
