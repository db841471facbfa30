// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/mailpost/mailing-backend/internal/db"
	"github.com/mailpost/mailing-backend/internal/handler"
	"github.com/mailpost/mailing-backend/internal/mailer"
	"github.com/mailpost/mailing-backend/internal/queue"
	"github.com/mailpost/mailing-backend/internal/repository"
	"github.com/mailpost/mailing-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	recipientRepo := &repository.RecipientRepository{DB: db.DB}
	messageRepo := &repository.MessageRepository{DB: db.DB}
	sendingRepo := &repository.SendingRepository{DB: db.DB}
	attemptRepo := &repository.AttemptRepository{DB: db.DB}

	recipientService := &service.RecipientService{RecipientRepo: recipientRepo}
	messageService := &service.MessageService{MessageRepo: messageRepo}
	sendingService := service.NewSendingService(sendingRepo, messageRepo, recipientRepo, attemptRepo)

	dispatcher := service.NewDispatchService(
		sendingRepo,
		messageRepo,
		attemptRepo,
		mailer.NewSMTPSenderFromEnv(),
		os.Getenv("MAIL_FROM"),
	)

	// Delivery-event fan-out is optional: without AMQP_URL the attempts
	// are still recorded in Postgres.
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		events, err := queue.NewAMQPPublisher(amqpURL)
		if err != nil {
			log.Println("⚠️ Failed to connect to RabbitMQ, events disabled:", err)
		} else {
			defer events.Close()
			dispatcher.Events = events
		}
	}

	recipientHandler := &handler.RecipientHandler{Service: recipientService}
	messageHandler := &handler.MessageHandler{Service: messageService}
	sendingHandler := &handler.SendingHandler{
		Service:    sendingService,
		Dispatcher: dispatcher,
	}

	r := chi.NewRouter()

	r.Get("/", sendingHandler.HomeHandler)

	// Recipient routes
	r.Post("/recipients", recipientHandler.CreateRecipientHandler)
	r.Get("/recipients", recipientHandler.ListRecipientsHandler)
	r.Get("/recipients/{id}", recipientHandler.GetRecipientHandler)
	r.Put("/recipients/{id}", recipientHandler.UpdateRecipientHandler)
	r.Delete("/recipients/{id}", recipientHandler.DeleteRecipientHandler)

	// Message routes
	r.Post("/messages", messageHandler.CreateMessageHandler)
	r.Get("/messages", messageHandler.ListMessagesHandler)
	r.Get("/messages/{id}", messageHandler.GetMessageHandler)
	r.Put("/messages/{id}", messageHandler.UpdateMessageHandler)
	r.Delete("/messages/{id}", messageHandler.DeleteMessageHandler)

	// Sending routes
	r.Post("/sendings", sendingHandler.CreateSendingHandler)
	r.Get("/sendings", sendingHandler.ListSendingsHandler)
	r.Get("/sendings/{id}", sendingHandler.GetSendingHandler)
	r.Put("/sendings/{id}", sendingHandler.UpdateSendingHandler)
	r.Delete("/sendings/{id}", sendingHandler.DeleteSendingHandler)
	r.Post("/sendings/{id}/dispatch", sendingHandler.DispatchSendingHandler)
	r.Get("/sendings/{id}/attempts", sendingHandler.ListAttemptsHandler)
	r.Get("/attempts", sendingHandler.ListOwnerAttemptsHandler)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Println("🚀 Server running on", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
