// internal/controller/message_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/kisumu-health/sha-connect-backend/internal/errors"
	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/service"
)

// MessageController exposes direct sends and the delivery log.
type MessageController struct {
	MessagingService *service.MessagingService
	Outbox           service.OutboxSnapshot
}

// SendMessage tries a live delivery; failures are queued to the outbox.
func (c *MessageController) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Recipient string `json:"recipient"`
		Message   string `json:"message"`
		Language  string `json:"language"`
		Channel   string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Recipient == "" || body.Message == "" {
		http.Error(w, "recipient and message are required", http.StatusBadRequest)
		return
	}
	if body.Channel != "" && body.Channel != model.ChannelSMS && body.Channel != model.ChannelVoice {
		http.Error(w, "channel must be sms or voice", http.StatusBadRequest)
		return
	}

	outcome, err := c.MessagingService.SendDirect(r.Context(), body.Recipient, body.Message, body.Language, body.Channel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(outcome)
}

// SendPartnerMessage sends to a registered partner's contact in the
// partner's preferred language.
func (c *MessageController) SendPartnerMessage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body struct {
		Message string `json:"message"`
		Channel string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	outcome, err := c.MessagingService.SendToPartner(r.Context(), name, body.Message, body.Channel)
	if err != nil {
		var notFound *appErrors.ErrPartnerNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(outcome)
}

// ListDeliveryLog returns sent messages, newest first.
func (c *MessageController) ListDeliveryLog(w http.ResponseWriter, r *http.Request) {
	logged := c.Outbox.Log()
	sort.Slice(logged, func(i, j int) bool {
		return logged[i].SentAt.After(logged[j].SentAt)
	})

	json.NewEncoder(w).Encode(map[string]interface{}{"data": logged})
}
