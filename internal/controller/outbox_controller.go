// internal/controller/outbox_controller.go
package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/streadway/amqp"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/outbox"
	"github.com/kisumu-health/sha-connect-backend/internal/queue"
)

// OutboxEngine is the full engine surface the controller needs.
type OutboxEngine interface {
	Enqueue(recipient, message, language, channel string) (model.OutboxEntry, error)
	Drain(ctx context.Context, maxAttempts int) ([]outbox.DrainResult, error)
	ResetFailed() (int, error)
	PurgeFailed() (int, error)
	Queue() []model.OutboxEntry
}

// OutboxController exposes the outbox queue and its operations. Async
// processing goes through RabbitMQ when AMQPURL is set, otherwise through
// the in-process queue.
type OutboxController struct {
	Engine  OutboxEngine
	Jobs    queue.Queue
	AMQPURL string
}

// GetOutbox returns the current queue snapshot for display.
func (c *OutboxController) GetOutbox(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]interface{}{"data": c.Engine.Queue()})
}

// EnqueueMessage queues a message without attempting a live send.
func (c *OutboxController) EnqueueMessage(w http.ResponseWriter, r *http.Request) {
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
	if body.Channel == "" {
		body.Channel = model.ChannelSMS
	}
	if body.Language == "" {
		body.Language = "English"
	}

	entry, err := c.Engine.Enqueue(body.Recipient, body.Message, body.Language, body.Channel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// ProcessOutbox runs one drain pass and reports per-entry outcomes.
func (c *OutboxController) ProcessOutbox(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MaxAttempts int `json:"max_attempts"`
	}
	// An empty body means default budget.
	_ = json.NewDecoder(r.Body).Decode(&body)

	results, err := c.Engine.Drain(r.Context(), body.MaxAttempts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sent := 0
	for _, res := range results {
		if res.Sent {
			sent++
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"processed": len(results),
		"sent":      sent,
		"failed":    len(results) - sent,
		"results":   results,
	})
}

// ProcessOutboxAsync hands the drain to a worker instead of running it on
// the request path.
func (c *OutboxController) ProcessOutboxAsync(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MaxAttempts int `json:"max_attempts"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	if c.AMQPURL == "" {
		if err := c.Jobs.Publish(queue.TopicOutboxDrain, body.MaxAttempts); err != nil {
			http.Error(w, "failed to queue drain: "+err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"queued": true, "via": "in-process"})
		return
	}

	// Publish to RabbitMQ for cmd/worker to pick up.
	conn, err := amqp.Dial(c.AMQPURL)
	if err != nil {
		http.Error(w, "Failed to connect to queue", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		http.Error(w, "Failed to open queue channel", http.StatusInternalServerError)
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicOutboxDrain,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		http.Error(w, "Failed to declare queue", http.StatusInternalServerError)
		return
	}

	payload, _ := json.Marshal(map[string]int{"max_attempts": body.MaxAttempts})
	err = ch.Publish(
		"",
		q.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err != nil {
		log.Println("⚠️ Failed to publish drain job:", err)
		http.Error(w, "Failed to publish drain job", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"queued": true, "via": "rabbitmq"})
}

// RetryFailed reopens every Failed entry for the next drain.
func (c *OutboxController) RetryFailed(w http.ResponseWriter, r *http.Request) {
	count, err := c.Engine.ResetFailed()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"reset": count})
}

// ClearFailed discards every Failed entry.
func (c *OutboxController) ClearFailed(w http.ResponseWriter, r *http.Request) {
	count, err := c.Engine.PurgeFailed()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"removed": count})
}
