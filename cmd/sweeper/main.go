// cmd/sweeper/main.go
package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/mailpost/mailing-backend/internal/db"
	"github.com/mailpost/mailing-backend/internal/mailer"
	"github.com/mailpost/mailing-backend/internal/queue"
	"github.com/mailpost/mailing-backend/internal/repository"
	"github.com/mailpost/mailing-backend/internal/service"
)

// The sweeper is the periodic trigger: it advances every due sending on a
// cron cadence. One sweeper per deployment; the dispatcher assumes a
// single scheduler.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	db.Init()

	messageRepo := &repository.MessageRepository{DB: db.DB}
	sendingRepo := &repository.SendingRepository{DB: db.DB}
	attemptRepo := &repository.AttemptRepository{DB: db.DB}

	dispatcher := service.NewDispatchService(
		sendingRepo,
		messageRepo,
		attemptRepo,
		mailer.NewSMTPSenderFromEnv(),
		os.Getenv("MAIL_FROM"),
	)

	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		events, err := queue.NewAMQPPublisher(amqpURL)
		if err != nil {
			log.Println("⚠️ Failed to connect to RabbitMQ, events disabled:", err)
		} else {
			defer events.Close()
			dispatcher.Events = events
		}
	}

	sweep := func() {
		if err := dispatcher.Sweep(time.Now()); err != nil {
			log.Println("⚠️ Sweep failed:", err)
		}
	}

	schedule := os.Getenv("SWEEP_SCHEDULE")
	if schedule == "" {
		schedule = "* * * * *" // every minute
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, sweep); err != nil {
		log.Fatalf("invalid SWEEP_SCHEDULE %q: %v", schedule, err)
	}

	log.Printf("🚀 Sweeper running, schedule %q", schedule)
	sweep() // catch up immediately on boot
	c.Run()
}
