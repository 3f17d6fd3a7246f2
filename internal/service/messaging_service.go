// internal/service/messaging_service.go
package service

import (
	"context"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/repository"
	"github.com/kisumu-health/sha-connect-backend/internal/transport"
)

// OutboxEngine is the slice of the engine the messaging service needs.
type OutboxEngine interface {
	Enqueue(recipient, message, language, channel string) (model.OutboxEntry, error)
	RecordDelivery(recipient, message, language, channel string) (model.DeliveryLogEntry, error)
}

// MessagingService sends messages live when the transport is up and falls
// back to the outbox when it is not. This matches the campaign desk flow:
// pressing Send either delivers immediately or queues for the next drain.
type MessagingService struct {
	Sender      transport.Sender
	Outbox      OutboxEngine
	PartnerRepo repository.PartnerRepositoryInterface
}

// SendOutcome reports what happened to a direct send.
type SendOutcome struct {
	Sent   bool   `json:"sent"`
	Queued bool   `json:"queued"`
	Info   string `json:"info"`
}

// SendDirect tries one live delivery. Success is logged; failure of any kind
// lands the message in the outbox for retry.
func (s *MessagingService) SendDirect(ctx context.Context, recipient, message, language, channel string) (SendOutcome, error) {
	if channel == "" {
		channel = model.ChannelSMS
	}
	if language == "" {
		language = "English"
	}

	ok, info := s.Sender.Send(ctx, channel, recipient, message)
	if ok {
		if _, err := s.Outbox.RecordDelivery(recipient, message, language, channel); err != nil {
			return SendOutcome{}, err
		}
		return SendOutcome{Sent: true, Info: info}, nil
	}

	if _, err := s.Outbox.Enqueue(recipient, message, language, channel); err != nil {
		return SendOutcome{}, err
	}
	return SendOutcome{Queued: true, Info: info}, nil
}

// SendToPartner looks the partner up by name and sends to their contact in
// their preferred language.
func (s *MessagingService) SendToPartner(ctx context.Context, partnerName, message, channel string) (SendOutcome, error) {
	partner, err := s.PartnerRepo.GetByName(partnerName)
	if err != nil {
		return SendOutcome{}, err
	}
	return s.SendDirect(ctx, partner.Contact, message, partner.PreferredLanguage(), channel)
}
