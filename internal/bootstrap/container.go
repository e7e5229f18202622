package bootstrap

import (
	"context"
	"log"
	"time"

	"museum-itinerary-be/internal/config"
	"museum-itinerary-be/internal/controller"
	"museum-itinerary-be/internal/pkg/logger"
	"museum-itinerary-be/internal/repository/implementation"
	"museum-itinerary-be/internal/service"
	"museum-itinerary-be/pkg/hours"
	"museum-itinerary-be/pkg/itinerary"
	"museum-itinerary-be/pkg/knowledge"
	"museum-itinerary-be/pkg/llm/factory"

	pktNats "museum-itinerary-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ItineraryController controller.IItineraryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Domain Foundations
	kb := knowledge.Load(cfg.Museum.KnowledgePath)
	log.Printf("[INFO] Knowledge base loaded: %d areas", kb.Len())

	location, err := time.LoadLocation(cfg.Museum.Timezone)
	if err != nil {
		log.Printf("[WARN] Invalid timezone %q, falling back to UTC: %v", cfg.Museum.Timezone, err)
		location = time.UTC
	}

	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
		cfg.Ai.Timeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	planner := itinerary.NewPlanner(llmProvider)
	enricher := itinerary.NewEnricher(llmProvider, kb)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// 4. Repositories
	areaRepo := implementation.NewAreaRepository(db)
	itineraryRepo := implementation.NewItineraryRepository(db)
	stopRepo := implementation.NewItineraryStopRepository(db)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Museum.JobTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Museum.JobTopic,
		stopRepo,
		enricher,
		natsPub,
		rdb,
		cfg.Museum.StopPause,
	)

	itineraryService := service.NewItineraryService(
		areaRepo,
		itineraryRepo,
		stopRepo,
		planner,
		enricher,
		llmProvider,
		publisherService,
		natsPub,
		hours.DefaultSchedule(),
		location,
		sysLogger,
	)

	// 6. Controllers
	itineraryController := controller.NewItineraryController(itineraryService)

	return &Container{
		ItineraryController: itineraryController,
		ConsumerService:     consumerService,
	}
}
