// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightcart/mailblast-backend/internal/config"
	"github.com/brightcart/mailblast-backend/internal/controller"
	"github.com/brightcart/mailblast-backend/internal/db"
	"github.com/brightcart/mailblast-backend/internal/handler"
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
	log.Println("✅ Connected to database")

	campaignRepo := &repository.CampaignRepository{DB: conn}
	contactRepo := &repository.ContactRepository{DB: conn}
	groupRepo := &repository.GroupRepository{DB: conn}
	eventRepo := &repository.DeliveryEventRepository{DB: conn}

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

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		EventRepo:    eventRepo,
	}
	dispatchService := &service.DispatchService{
		CampaignRepo: campaignRepo,
		ContactRepo:  contactRepo,
		Mailer:       mail,
		Renderer:     renderer,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
		DispatchService: dispatchService,
		Queue:           &queue.AMQPPublisher{URL: cfg.AMQPURL},
	}
	trackingHandler := &handler.TrackingHandler{Events: eventRepo}
	contactHandler := &handler.ContactHandler{
		ContactRepo: contactRepo,
		GroupRepo:   groupRepo,
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaignDetails)
	r.Get("/campaigns/{id}/events", campaignController.GetCampaignEvents)
	r.Post("/campaigns/send-now", campaignController.SendNow)
	r.Post("/campaigns/{id}/send", campaignController.SendDraft)
	r.Post("/campaigns/{id}/schedule", campaignController.ScheduleCampaign)

	// Group & contact routes
	r.Post("/groups", contactHandler.CreateGroup)
	r.Get("/groups", contactHandler.ListGroups)
	r.Post("/groups/{id}/contacts", contactHandler.AddGroupMember)
	r.Post("/contacts", contactHandler.CreateContact)
	r.Get("/contacts", contactHandler.ListContacts)

	// Tracking routes
	r.Get("/track/open", trackingHandler.Open)
	r.Get("/track/click", trackingHandler.Click)

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
