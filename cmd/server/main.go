// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kisumu-health/sha-connect-backend/internal/config"
	"github.com/kisumu-health/sha-connect-backend/internal/controller"
	"github.com/kisumu-health/sha-connect-backend/internal/handler"
	"github.com/kisumu-health/sha-connect-backend/internal/outbox"
	"github.com/kisumu-health/sha-connect-backend/internal/queue"
	"github.com/kisumu-health/sha-connect-backend/internal/repository"
	"github.com/kisumu-health/sha-connect-backend/internal/service"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
	"github.com/kisumu-health/sha-connect-backend/internal/transport"
)

func main() {
	cfg := config.Load()

	// Record store: local JSON tables by default, Postgres when shared.
	var tableStore store.TableStore
	switch cfg.StoreDriver {
	case "postgres":
		pg, err := store.OpenPostgres()
		if err != nil {
			log.Fatalf("failed to open postgres store: %v", err)
		}
		tableStore = pg
		log.Println("✅ Connected to database")
	default:
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("failed to open file store: %v", err)
		}
		tableStore = fs
		log.Println("✅ Using file store in", cfg.DataDir)
	}

	var sender transport.Sender
	if cfg.MockSender {
		sender = transport.NewMockSender()
		log.Println("⚠️ MOCK_SENDER enabled, deliveries are simulated")
	} else {
		sender = transport.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
		if !cfg.TwilioConfigured() {
			log.Println("⚠️ Twilio not configured, sends will queue to the outbox")
		}
	}

	engine, err := outbox.New(tableStore, sender, outbox.Options{
		SendTimeout: cfg.SendTimeout,
		Concurrency: cfg.SendConcurrency,
	})
	if err != nil {
		log.Fatalf("failed to load outbox: %v", err)
	}

	partnerRepo := &repository.PartnerRepository{Store: tableStore}
	feedbackRepo := &repository.FeedbackRepository{Store: tableStore}
	reminderRepo := &repository.ReminderRepository{Store: tableStore}
	faqRepo := &repository.FAQRepository{Store: tableStore}

	jobs := queue.NewInMemoryQueue()
	queue.StartOutboxDrainSubscriber(jobs, engine)

	messagingService := &service.MessagingService{
		Sender:      sender,
		Outbox:      engine,
		PartnerRepo: partnerRepo,
	}
	faqService := &service.FAQService{Repo: faqRepo}
	dashboardService := &service.DashboardService{
		PartnerRepo:  partnerRepo,
		FeedbackRepo: feedbackRepo,
		ReminderRepo: reminderRepo,
		Outbox:       engine,
	}

	messageController := &controller.MessageController{
		MessagingService: messagingService,
		Outbox:           engine,
	}
	outboxController := &controller.OutboxController{
		Engine:  engine,
		Jobs:    jobs,
		AMQPURL: cfg.AMQPURL,
	}

	partnerHandler := &handler.PartnerHandler{Repo: partnerRepo}
	feedbackHandler := &handler.FeedbackHandler{Repo: feedbackRepo}
	reminderHandler := &handler.ReminderHandler{Repo: reminderRepo}
	faqHandler := &handler.FAQHandler{Service: faqService}
	dashboardHandler := &handler.DashboardHandler{
		Service:          dashboardService,
		TwilioConfigured: cfg.TwilioConfigured(),
		StoreDriver:      cfg.StoreDriver,
		AMQPConfigured:   cfg.AMQPURL != "",
	}

	r := chi.NewRouter()

	// Messaging routes
	r.Post("/messages", messageController.SendMessage)
	r.Get("/messages", messageController.ListDeliveryLog)

	// Outbox routes
	r.Get("/outbox", outboxController.GetOutbox)
	r.Post("/outbox/enqueue", outboxController.EnqueueMessage)
	r.Post("/outbox/process", outboxController.ProcessOutbox)
	r.Post("/outbox/process/async", outboxController.ProcessOutboxAsync)
	r.Post("/outbox/retry-failed", outboxController.RetryFailed)
	r.Delete("/outbox/failed", outboxController.ClearFailed)

	// Partner routes
	r.Post("/partners", partnerHandler.CreatePartnerHandler)
	r.Get("/partners", partnerHandler.ListPartnersHandler)
	r.Get("/partners/search", partnerHandler.SearchPartnersHandler)
	r.Post("/partners/{name}/message", messageController.SendPartnerMessage)

	// Feedback routes
	r.Post("/feedback", feedbackHandler.SubmitFeedbackHandler)
	r.Get("/feedback", feedbackHandler.ListFeedbackHandler)

	// Reminder routes
	r.Post("/reminders", reminderHandler.CreateReminderHandler)
	r.Get("/reminders", reminderHandler.ListRemindersHandler)
	r.Post("/reminders/{id}/complete", reminderHandler.CompleteReminderHandler)

	// FAQ routes
	r.Get("/faqs", faqHandler.ListFAQsHandler)
	r.Post("/faqs/ask", faqHandler.AskFAQHandler)

	// Dashboard routes
	r.Get("/dashboard", dashboardHandler.GetDashboardHandler)
	r.Get("/settings", dashboardHandler.GetSettingsHandler)

	log.Println("🚀 Server running on", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
