package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"museum-itinerary-be/internal/dto"
	"museum-itinerary-be/internal/entity"
	"museum-itinerary-be/internal/pkg/logger"
	"museum-itinerary-be/internal/repository/contract"
	"museum-itinerary-be/pkg/events"
	"museum-itinerary-be/pkg/hours"
	"museum-itinerary-be/pkg/itinerary"
	"museum-itinerary-be/pkg/llm"
	pktNats "museum-itinerary-be/pkg/nats"
)

// ErrNoCandidates means no active area matched the request; surfaced before
// any provider call is made.
var ErrNoCandidates = errors.New("no active areas match the requested interests")

// HoursClosedError rejects a request because the museum is unavailable. The
// message is visitor-facing.
type HoursClosedError struct {
	Message  string
	Schedule string
}

func (e *HoursClosedError) Error() string { return e.Message }

const areaCacheTTL = 5 * time.Minute

type IItineraryService interface {
	Generate(ctx context.Context, req *dto.GenerateItineraryRequest) (*dto.GenerateItineraryResponse, error)
	Progress(ctx context.Context, id uuid.UUID) (*dto.GenerationProgressResponse, error)
	Hours() *dto.HoursResponse
	Health(ctx context.Context) *dto.AIHealthResponse
}

type itineraryService struct {
	areaRepo      contract.IAreaRepository
	itineraryRepo contract.IItineraryRepository
	stopRepo      contract.IItineraryStopRepository
	planner       *itinerary.Planner
	enricher      *itinerary.Enricher
	provider      llm.Provider
	publisher     IPublisherService
	eventBus      *pktNats.Publisher
	schedule      hours.Schedule
	location      *time.Location
	areaCache     *gocache.Cache
	log           logger.ILogger

	// now is swappable so hour-dependent paths stay testable
	now func() time.Time
}

func NewItineraryService(
	areaRepo contract.IAreaRepository,
	itineraryRepo contract.IItineraryRepository,
	stopRepo contract.IItineraryStopRepository,
	planner *itinerary.Planner,
	enricher *itinerary.Enricher,
	provider llm.Provider,
	publisher IPublisherService,
	eventBus *pktNats.Publisher,
	schedule hours.Schedule,
	location *time.Location,
	log logger.ILogger,
) IItineraryService {
	if location == nil {
		location = time.UTC
	}
	s := &itineraryService{
		areaRepo:      areaRepo,
		itineraryRepo: itineraryRepo,
		stopRepo:      stopRepo,
		planner:       planner,
		enricher:      enricher,
		provider:      provider,
		publisher:     publisher,
		eventBus:      eventBus,
		schedule:      schedule,
		location:      location,
		areaCache:     gocache.New(areaCacheTTL, 10*time.Minute),
		log:           log,
	}
	s.now = func() time.Time { return time.Now().In(location) }
	return s
}

func (s *itineraryService) Generate(ctx context.Context, req *dto.GenerateItineraryRequest) (*dto.GenerateItineraryResponse, error) {
	decision := s.schedule.Evaluate(s.now(), req.AvailableMinutes)
	if !decision.CanGenerate {
		s.log.Warn("itinerary", "generation rejected by hours arbiter", map[string]interface{}{
			"reason": string(decision.Reason),
		})
		return nil, &HoursClosedError{
			Message:  decision.Message,
			Schedule: s.schedule.OpeningMessage(),
		}
	}

	// Interests only narrow the catalog when a time cap exists; an
	// unlimited visit walks the whole museum.
	var filter []string
	if decision.Duration != nil {
		filter = req.Interests
	}

	candidates, err := s.activeCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load area catalog: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	detail := parseDetail(req.DetailLevel)
	adjusted := durationChanged(req.AvailableMinutes, decision.Duration)

	record := &entity.Itinerary{
		Id:          uuid.New(),
		VisitorName: req.VisitorName,
		Interests:   req.Interests,
		DetailLevel: string(detail),
		Title:       "Building your itinerary...",
		Description: "Preparing your personalized tour...",
		Status:      entity.ItineraryInProgress,
		ModelUsed:   fmt.Sprintf("%s/%s", s.provider.Name(), s.provider.ModelName()),
		CreatedAt:   time.Now(),
	}
	if err := s.itineraryRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create itinerary: %w", err)
	}

	plan := s.planner.Build(ctx, req.VisitorName, req.Interests, decision.Duration, candidates)

	placeholders := make([]*entity.ItineraryStop, 0, len(plan.Stops))
	for _, ps := range plan.Stops {
		placeholders = append(placeholders, &entity.ItineraryStop{
			Id:          uuid.New(),
			ItineraryId: record.Id,
			AreaCode:    ps.Code,
			OrderIndex:  ps.Order,
			Minutes:     ps.Minutes,
			Status:      string(itinerary.StatusPending),
			CreatedAt:   time.Now(),
		})
	}
	if err := s.stopRepo.CreateBulk(ctx, placeholders); err != nil {
		return nil, fmt.Errorf("create stop placeholders: %w", err)
	}

	// Opening stop is synthesized synchronously so the visitor can start
	// walking right away.
	first := plan.Stops[0]
	res := s.enricher.Enrich(ctx, itinerary.EnrichRequest{
		Candidate:   candidateByCode(candidates, first.Code),
		VisitorName: req.VisitorName,
		Interests:   req.Interests,
		Detail:      detail,
		Opening:     true,
		Order:       first.Order,
		Minutes:     first.Minutes,
	})
	if err := s.stopRepo.UpdateContent(ctx, record.Id, first.Order, stopEntity(res.Content)); err != nil {
		s.log.Error("itinerary", "failed to persist opening stop", map[string]interface{}{
			"itinerary_id": record.Id.String(),
			"error":        err.Error(),
		})
	}

	if res.PlanTitle != "" {
		record.Title = res.PlanTitle
	} else {
		record.Title = "Your personalized visit"
	}
	description := res.PlanDescription
	if adjusted && decision.Message != "" {
		description = decision.Message + "\n\n" + description
	}
	record.Description = description
	record.TotalMinutes = plan.TotalMinutes
	record.Status = entity.ItineraryGenerated
	if err := s.itineraryRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update itinerary: %w", err)
	}

	s.scheduleRemaining(ctx, record, plan, detail, req, candidates)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, events.BaseEvent{
			Type: events.TypeItineraryGenerated,
			Data: map[string]interface{}{
				"itinerary_id": record.Id.String(),
				"stops":        len(plan.Stops),
			},
			OccurredAt: time.Now(),
		})
	}

	s.log.Info("itinerary", "opening stop ready, remaining stops scheduled", map[string]interface{}{
		"itinerary_id": record.Id.String(),
		"stops":        len(plan.Stops),
	})

	return s.buildResponse(record, plan, res.Content, decision, adjusted), nil
}

// scheduleRemaining hands stops 2..N to the background completion worker.
// The caller gets its response regardless; a publish failure only means the
// plan stays partially generated.
func (s *itineraryService) scheduleRemaining(ctx context.Context, record *entity.Itinerary, plan *itinerary.Plan, detail itinerary.DetailLevel, req *dto.GenerateItineraryRequest, candidates []itinerary.Candidate) {
	if len(plan.Stops) <= 1 {
		return
	}

	job := dto.GenerateRemainingStopsMessage{
		ItineraryId: record.Id,
		VisitorName: req.VisitorName,
		Interests:   req.Interests,
		DetailLevel: string(detail),
	}
	for _, ps := range plan.Stops[1:] {
		c := candidateByCode(candidates, ps.Code)
		job.Stops = append(job.Stops, dto.RemainingStop{
			AreaCode:    ps.Code,
			AreaName:    c.Name,
			Description: c.Description,
			Category:    c.Category,
			Order:       ps.Order,
			Minutes:     ps.Minutes,
		})
	}

	payload, err := json.Marshal(job)
	if err != nil {
		s.log.Error("itinerary", "failed to marshal background job", map[string]interface{}{
			"itinerary_id": record.Id.String(),
			"error":        err.Error(),
		})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Error("itinerary", "failed to schedule background generation", map[string]interface{}{
			"itinerary_id": record.Id.String(),
			"error":        err.Error(),
		})
	}
}

func (s *itineraryService) Progress(ctx context.Context, id uuid.UUID) (*dto.GenerationProgressResponse, error) {
	record, err := s.itineraryRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	stops, err := s.stopRepo.ListByItinerary(ctx, id)
	if err != nil {
		return nil, err
	}

	generated := 0
	for _, st := range stops {
		if st.Status == string(itinerary.StatusComplete) || st.Status == string(itinerary.StatusFailed) {
			generated++
		}
	}

	percent := 0.0
	if len(stops) > 0 {
		percent = float64(generated) / float64(len(stops)) * 100
	}

	return &dto.GenerationProgressResponse{
		ItineraryId:    id,
		Completed:      len(stops) > 0 && generated == len(stops),
		StopsGenerated: generated,
		TotalStops:     len(stops),
		Percent:        percent,
		Status:         record.Status,
	}, nil
}

func (s *itineraryService) Hours() *dto.HoursResponse {
	now := s.now()
	remaining := s.schedule.Remaining(now)
	decision := s.schedule.Evaluate(now, nil)
	return &dto.HoursResponse{
		Open:           remaining > 0,
		Message:        decision.Message,
		MinutesToClose: remaining,
		Schedule:       s.schedule.OpeningMessage(),
	}
}

func (s *itineraryService) Health(ctx context.Context) *dto.AIHealthResponse {
	resp := &dto.AIHealthResponse{
		Provider: s.provider.Name(),
		Model:    s.provider.ModelName(),
	}
	if err := s.provider.Ping(ctx); err != nil {
		resp.Detail = err.Error()
		return resp
	}
	resp.Connected = true
	return resp
}

// activeCandidates serves the area catalog through a short-lived cache; the
// catalog changes at curation pace, not at request pace.
func (s *itineraryService) activeCandidates(ctx context.Context, interests []string) ([]itinerary.Candidate, error) {
	key := "areas:" + strings.Join(interests, ",")
	if cached, found := s.areaCache.Get(key); found {
		return cached.([]itinerary.Candidate), nil
	}

	areas, err := s.areaRepo.ListActive(ctx, interests)
	if err != nil {
		return nil, err
	}

	candidates := make([]itinerary.Candidate, 0, len(areas))
	for _, a := range areas {
		candidates = append(candidates, itinerary.Candidate{
			Code:        a.Code,
			Name:        a.Name,
			Description: a.Description,
			Category:    a.Category,
			MinMinutes:  a.MinMinutes,
			MaxMinutes:  a.MaxMinutes,
			Floor:       a.Floor,
		})
	}
	s.areaCache.Set(key, candidates, gocache.DefaultExpiration)
	return candidates, nil
}

func (s *itineraryService) buildResponse(record *entity.Itinerary, plan *itinerary.Plan, first itinerary.StopContent, decision hours.Decision, adjusted bool) *dto.GenerateItineraryResponse {
	resp := &dto.GenerateItineraryResponse{
		Id:           record.Id,
		Title:        record.Title,
		Description:  record.Description,
		TotalMinutes: record.TotalMinutes,
		Status:       record.Status,
	}
	if adjusted {
		resp.HoursNotice = decision.Message
	}

	for _, ps := range plan.Stops {
		if ps.Order == first.Order {
			resp.Stops = append(resp.Stops, dto.StopResponse{
				AreaCode:       first.Code,
				Order:          first.Order,
				Minutes:        ps.Minutes,
				Introduction:   first.Introduction,
				History:        first.History,
				Curiosities:    first.Curiosities,
				Observations:   first.Observations,
				Recommendation: first.Recommendation,
				Provenance:     string(first.Provenance),
				Status:         string(first.Status),
			})
			continue
		}
		resp.Stops = append(resp.Stops, dto.StopResponse{
			AreaCode:     ps.Code,
			Order:        ps.Order,
			Minutes:      ps.Minutes,
			Introduction: "Generating content for this stop...",
			Status:       string(itinerary.StatusPending),
		})
	}
	return resp
}

func candidateByCode(candidates []itinerary.Candidate, code string) itinerary.Candidate {
	for _, c := range candidates {
		if c.Code == code {
			return c
		}
	}
	return itinerary.Candidate{Code: code, Name: code}
}

func stopEntity(content itinerary.StopContent) *entity.ItineraryStop {
	return &entity.ItineraryStop{
		Introduction:   content.Introduction,
		History:        content.History,
		Curiosities:    content.Curiosities,
		Observations:   content.Observations,
		Recommendation: content.Recommendation,
		Provenance:     string(content.Provenance),
		Status:         string(content.Status),
	}
}

func parseDetail(level string) itinerary.DetailLevel {
	switch itinerary.DetailLevel(level) {
	case itinerary.DetailBrief:
		return itinerary.DetailBrief
	case itinerary.DetailDeep:
		return itinerary.DetailDeep
	default:
		return itinerary.DetailStandard
	}
}

func durationChanged(requested, granted *int) bool {
	if requested == nil && granted == nil {
		return false
	}
	if requested == nil || granted == nil {
		return true
	}
	return *requested != *granted
}
