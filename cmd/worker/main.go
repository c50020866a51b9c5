// cmd/worker/main.go
package main

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/streadway/amqp"

	"github.com/brightcart/mailblast-backend/internal/config"
	"github.com/brightcart/mailblast-backend/internal/db"
	appErrors "github.com/brightcart/mailblast-backend/internal/errors"
	"github.com/brightcart/mailblast-backend/internal/mailer"
	"github.com/brightcart/mailblast-backend/internal/queue"
	"github.com/brightcart/mailblast-backend/internal/repository"
	"github.com/brightcart/mailblast-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	defer conn.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}
	contactRepo := &repository.ContactRepository{DB: conn}

	renderer, err := service.NewRenderer(cfg.BaseURL)
	if err != nil {
		log.Fatal("failed to build renderer:", err)
	}

	mail, err := mailer.New(mailer.Config{
		Provider:           cfg.MailProvider,
		FromAddress:        cfg.MailFrom,
		FromName:           cfg.MailFromName,
		AWSRegion:          cfg.AWSRegion,
		AWSAccessKeyID:     cfg.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		log.Fatal("failed to build mailer:", err)
	}

	dispatchService := &service.DispatchService{
		CampaignRepo: campaignRepo,
		ContactRepo:  contactRepo,
		Mailer:       mail,
		Renderer:     renderer,
	}

	// Connect to RabbitMQ
	mq, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer mq.Close()

	ch, err := mq.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.DispatchQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
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
			if processJob(d.Body, dispatchService) == jobRetry {
				d.Nack(false, true) // requeue
				continue
			}
			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for dispatch jobs...")
	<-forever
}

// jobResult tells the consumer loop what to do with a delivery.
type jobResult int

const (
	jobDone jobResult = iota
	jobDrop
	jobRetry
)

// processJob runs one queued dispatch. Validation errors (already
// published, missing campaign, empty recipient set) can never succeed
// on redelivery, so they are dropped; anything else is retried.
func processJob(body []byte, svc *service.DispatchService) jobResult {
	var job queue.DispatchJob
	if err := json.Unmarshal(body, &job); err != nil {
		log.Println("Invalid job:", err)
		return jobDrop
	}

	log.Println("📩 Dispatching queued campaign ID:", job.CampaignID)

	result, err := svc.SendDraft(job.CampaignID, nil)
	if err != nil {
		var badStatus *appErrors.ErrInvalidCampaignStatus
		var notFound *appErrors.ErrCampaignNotFound
		var noRecipients *appErrors.ErrNoRecipients
		if errors.As(err, &badStatus) || errors.As(err, &notFound) || errors.As(err, &noRecipients) {
			log.Println("⚠️ Dropping dispatch job:", err)
			return jobDrop
		}

		log.Println("⚠️ Failed to dispatch campaign:", err)
		return jobRetry
	}

	log.Printf("✅ Campaign %d dispatched: %d delivered, %d failed\n",
		result.CampaignID, result.Delivered, result.Failed)
	return jobDone
}
