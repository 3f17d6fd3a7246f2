// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"github.com/kisumu-health/sha-connect-backend/internal/config"
	"github.com/kisumu-health/sha-connect-backend/internal/outbox"
	"github.com/kisumu-health/sha-connect-backend/internal/queue"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
	"github.com/kisumu-health/sha-connect-backend/internal/transport"
)

// DrainJob is the payload published by the server for each async drain.
type DrainJob struct {
	MaxAttempts int `json:"max_attempts"`
}

func main() {
	cfg := config.Load()

	var tableStore store.TableStore
	switch cfg.StoreDriver {
	case "postgres":
		pg, err := store.OpenPostgres()
		if err != nil {
			log.Fatal("failed to open postgres store:", err)
		}
		tableStore = pg
	default:
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatal("failed to open file store:", err)
		}
		tableStore = fs
	}

	var sender transport.Sender
	if cfg.MockSender {
		sender = transport.NewMockSender()
	} else {
		sender = transport.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}

	engine, err := outbox.New(tableStore, sender, outbox.Options{
		SendTimeout: cfg.SendTimeout,
		Concurrency: cfg.SendConcurrency,
	})
	if err != nil {
		log.Fatal("failed to load outbox:", err)
	}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicOutboxDrain, // name
		true,                   // durable
		false,                  // delete when unused
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job DrainJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Println("Invalid job:", err)
				d.Ack(false)
				continue
			}

			results, err := engine.Drain(context.Background(), job.MaxAttempts)
			if err != nil {
				// StorageError: nothing from this pass committed. Requeue
				// up to 3 times.
				log.Println("⚠️ Drain failed:", err)
				var retryCount int
				if d.Headers["x-retry-count"] != nil {
					retryCount = int(d.Headers["x-retry-count"].(int32))
				}
				if retryCount < 3 {
					d.Nack(false, true) // requeue
					continue
				}
				d.Ack(false)
				continue
			}

			sent := 0
			for _, res := range results {
				if res.Sent {
					sent++
				}
			}
			log.Printf("📬 Drain done: %d processed, %d sent, %d failed\n", len(results), sent, len(results)-sent)

			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for drain jobs...")
	<-forever
}
