package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"museum-itinerary-be/internal/dto"
	"museum-itinerary-be/internal/repository/contract"
	"museum-itinerary-be/pkg/events"
	"museum-itinerary-be/pkg/itinerary"
	pktNats "museum-itinerary-be/pkg/nats"
)

// jobGuardTTL bounds how long a plan's duplicate-delivery guard lives.
// There is deliberately no per-job deadline beyond this: a hung provider
// leaves the plan partially generated, observable through stop statuses.
const jobGuardTTL = time.Hour

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the background completion worker: it receives one job
// per generated plan and enriches the remaining stops strictly in order
// index order, persisting each before moving on. Fire-and-forget: nothing
// joins or cancels a running job.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	stopRepo  contract.IItineraryStopRepository
	enricher  *itinerary.Enricher
	eventBus  *pktNats.Publisher
	rdb       *redis.Client
	stopPause time.Duration
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	stopRepo contract.IItineraryStopRepository,
	enricher *itinerary.Enricher,
	eventBus *pktNats.Publisher,
	rdb *redis.Client,
	stopPause time.Duration,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		stopRepo:  stopRepo,
		enricher:  enricher,
		eventBus:  eventBus,
		rdb:       rdb,
		stopPause: stopPause,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processJob(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processJob(ctx context.Context, msg *message.Message) {
	var job dto.GenerateRemainingStopsMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		log.Printf("[ERROR] Failed to unmarshal generation job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if !cs.acquireGuard(ctx, job.ItineraryId.String()) {
		log.Printf("[WARN] Generation job for itinerary %s already running, skipping", job.ItineraryId)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Background generation started for itinerary %s (%d stops)", job.ItineraryId, len(job.Stops))

	for i, stop := range job.Stops {
		cs.generateStop(ctx, &job, stop)

		// throttle the completion provider between stops
		if i < len(job.Stops)-1 && cs.stopPause > 0 {
			time.Sleep(cs.stopPause)
		}
	}

	log.Printf("[SUCCESS] Background generation finished for itinerary %s", job.ItineraryId)
	msg.Ack()
}

func (cs *consumerService) generateStop(ctx context.Context, job *dto.GenerateRemainingStopsMessage, stop dto.RemainingStop) {
	if err := cs.stopRepo.MarkStatus(ctx, job.ItineraryId, stop.Order, string(itinerary.StatusGenerating)); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			log.Printf("[WARN] Stop %d of itinerary %s no longer exists, skipping", stop.Order, job.ItineraryId)
			return
		}
		log.Printf("[ERROR] Failed to mark stop %d of itinerary %s: %v", stop.Order, job.ItineraryId, err)
	}

	res := cs.enricher.Enrich(ctx, itinerary.EnrichRequest{
		Candidate: itinerary.Candidate{
			Code:        stop.AreaCode,
			Name:        stop.AreaName,
			Description: stop.Description,
			Category:    stop.Category,
		},
		VisitorName: job.VisitorName,
		Interests:   job.Interests,
		Detail:      itinerary.DetailLevel(job.DetailLevel),
		Order:       stop.Order,
		Minutes:     stop.Minutes,
	})

	err := cs.stopRepo.UpdateContent(ctx, job.ItineraryId, stop.Order, stopEntity(res.Content))
	if err != nil {
		// The record may have been deleted mid-job; log and continue to
		// the next stop rather than aborting the whole plan.
		log.Printf("[ERROR] Failed to persist stop %d of itinerary %s: %v", stop.Order, job.ItineraryId, err)
		return
	}

	if cs.eventBus != nil {
		_ = cs.eventBus.Publish(ctx, events.BaseEvent{
			Type: events.TypeStopContentReady,
			Data: map[string]interface{}{
				"itinerary_id": job.ItineraryId.String(),
				"order":        stop.Order,
				"status":       string(res.Content.Status),
			},
			OccurredAt: time.Now(),
		})
	}

	log.Printf("[INFO] Stop %d of itinerary %s persisted (status=%s)", stop.Order, job.ItineraryId, res.Content.Status)
}

// acquireGuard takes the per-plan SETNX lock so redelivered or duplicated
// job messages never run a second pass. Without Redis the guard is a no-op.
func (cs *consumerService) acquireGuard(ctx context.Context, itineraryId string) bool {
	if cs.rdb == nil {
		return true
	}
	key := fmt.Sprintf("genjob:%s", itineraryId)
	ok, err := cs.rdb.SetNX(ctx, key, "1", jobGuardTTL).Result()
	if err != nil {
		log.Printf("[WARN] Redis job guard unavailable: %v (continuing without guard)", err)
		return true
	}
	return ok
}
