// internal/queue/queue.go
package queue

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kisumu-health/sha-connect-backend/internal/outbox"
)

// TopicOutboxDrain carries drain requests; the payload is the max attempt
// budget for the pass (0 means the engine default).
const TopicOutboxDrain = "outbox_drain"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used when no RabbitMQ is
// configured and drains should still run off the request path.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a payload to all subscribers of the topic.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("⚠️ Job failed (attempt %d/%d): %v\n", job.RetryCount, job.MaxRetries, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts\n", job.MaxRetries)
			return // No requeue
		}

		// Backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// DrainEngine is the slice of the outbox engine the subscriber needs.
type DrainEngine interface {
	Drain(ctx context.Context, maxAttempts int) ([]outbox.DrainResult, error)
}

// StartOutboxDrainSubscriber wires the engine to the in-process drain topic.
// A StorageError returns the job to the queue's retry loop.
func StartOutboxDrainSubscriber(q Queue, engine DrainEngine) {
	go func() {
		err := q.Subscribe(TopicOutboxDrain, func(payload any) error {
			maxAttempts, _ := payload.(int)

			results, err := engine.Drain(context.Background(), maxAttempts)
			if err != nil {
				log.Println("⚠️ Outbox drain failed:", err)
				return err // triggers retry in queue
			}

			sent := 0
			for _, res := range results {
				if res.Sent {
					sent++
				}
			}
			log.Printf("📬 Outbox drain: %d processed, %d sent\n", len(results), sent)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for outbox_drain:", err)
		}
	}()
}
