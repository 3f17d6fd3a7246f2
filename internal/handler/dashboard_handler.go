// internal/handler/dashboard_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kisumu-health/sha-connect-backend/internal/service"
)

// DashboardHandler serves the campaign overview and service status
type DashboardHandler struct {
	Service *service.DashboardService

	TwilioConfigured bool
	StoreDriver      string
	AMQPConfigured   bool
}

// GetDashboardHandler returns the campaign counters and recent activity
func (h *DashboardHandler) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.Overview()
	if err != nil {
		http.Error(w, "failed to build dashboard: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(overview)
}

// GetSettingsHandler reports which collaborators are configured, so an
// operator can tell "not configured" apart from a provider outage even
// though the outbox treats both the same.
func (h *DashboardHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"twilio_configured": h.TwilioConfigured,
		"store_driver":      h.StoreDriver,
		"amqp_configured":   h.AMQPConfigured,
	})
}
