package itinerary

import (
	"context"
	"fmt"
	"log"

	"museum-itinerary-be/pkg/extract"
	"museum-itinerary-be/pkg/knowledge"
	"museum-itinerary-be/pkg/llm"
)

// Knowledge sufficiency cutoffs. Tunable: below either threshold the entry
// is too thin to ground a narrative and the engine goes fully generative.
const (
	minCuriositiesForGrounding = 3
	minObjectsForGrounding     = 3
)

const (
	tokensBrief    = 1200
	tokensStandard = 1800
	tokensDeep     = 3000

	enrichTemperature = 0.15
)

// Enricher synthesizes one stop's narrative content. It prefers the curated
// knowledge base and falls back to purely generative prompting when the base
// is thin; provider or parsing failures are absorbed into a minimal fallback
// record, never surfaced — a single stop must not sink a whole plan.
type Enricher struct {
	provider llm.Provider
	kb       *knowledge.Store
}

func NewEnricher(provider llm.Provider, kb *knowledge.Store) *Enricher {
	return &Enricher{provider: provider, kb: kb}
}

// EnrichRequest describes one stop to synthesize.
type EnrichRequest struct {
	Candidate   Candidate
	VisitorName string
	Interests   []string
	Detail      DetailLevel
	Opening     bool
	Order       int
	Minutes     int
}

// EnrichResult carries the stop content plus, for the opening stop only, the
// itinerary title and description that amend the plan.
type EnrichResult struct {
	Content         StopContent
	PlanTitle       string
	PlanDescription string
}

// stopPayload is the JSON shape the completion provider is asked to emit.
type stopPayload struct {
	ItineraryTitle       string   `json:"itinerary_title"`
	ItineraryDescription string   `json:"itinerary_description"`
	Introduction         string   `json:"introduction"`
	History              string   `json:"contextual_history"`
	Curiosities          []string `json:"curiosities"`
	Observations         []string `json:"what_to_observe"`
	Recommendation       string   `json:"recommendation"`
}

// Enrich synthesizes content for one stop. It always returns a usable
// result: on any failure the content is the fallback record with status
// failed.
func (e *Enricher) Enrich(ctx context.Context, req EnrichRequest) EnrichResult {
	entry, found := e.kb.Lookup(req.Candidate.Code)
	grounded := found && sufficient(entry)

	var prompt string
	var provenance Provenance
	if grounded {
		prompt = buildGroundedPrompt(req, entry)
		provenance = ProvenanceKnowledgeBase
	} else {
		prompt = buildGenerativePrompt(req)
		provenance = ProvenanceGenerative
	}

	raw, err := e.provider.Complete(ctx, prompt,
		llm.WithTemperature(enrichTemperature),
		llm.WithMaxTokens(tokenBudget(req.Detail)),
		llm.WithStructuredOutput(),
	)
	if err != nil {
		log.Printf("[ERROR] completion failed for stop %s: %v", req.Candidate.Code, err)
		return EnrichResult{Content: fallbackContent(req, provenance)}
	}

	var payload stopPayload
	if err := extract.JSON(raw, &payload); err != nil {
		log.Printf("[ERROR] could not extract content for stop %s: %v", req.Candidate.Code, err)
		return EnrichResult{Content: fallbackContent(req, provenance)}
	}
	if payload.Introduction == "" || payload.History == "" {
		log.Printf("[ERROR] incomplete content for stop %s, using fallback", req.Candidate.Code)
		return EnrichResult{Content: fallbackContent(req, provenance)}
	}

	content := StopContent{
		Code:           req.Candidate.Code,
		Order:          req.Order,
		Introduction:   payload.Introduction,
		History:        payload.History,
		Curiosities:    clampItems(payload.Curiosities),
		Observations:   clampItems(payload.Observations),
		Recommendation: payload.Recommendation,
		Provenance:     provenance,
		Status:         StatusComplete,
	}

	result := EnrichResult{Content: content}
	if req.Opening {
		result.PlanTitle = payload.ItineraryTitle
		result.PlanDescription = payload.ItineraryDescription
	}
	return result
}

func sufficient(entry knowledge.Entry) bool {
	return len(entry.Curiosities) >= minCuriositiesForGrounding &&
		len(entry.HighlightedObjects) >= minObjectsForGrounding
}

func tokenBudget(detail DetailLevel) int {
	switch detail {
	case DetailBrief:
		return tokensBrief
	case DetailDeep:
		return tokensDeep
	default:
		return tokensStandard
	}
}

// itemTarget decides how many curiosities/observations to ask for.
// Deep knowledge-grounded visits get the richest lists; generative content
// stays at five even for deep detail to limit invention.
func itemTarget(detail DetailLevel, grounded bool) int {
	if detail == DetailDeep {
		if grounded {
			return 6
		}
		return 5
	}
	return 4
}

// clampItems bounds a list to the 3-8 window the content record expects.
// Short lists are kept as-is; the record stays useful either way.
func clampItems(items []string) []string {
	if len(items) > 8 {
		return items[:8]
	}
	return items
}

// fallbackContent is the minimal record used when synthesis fails. Fields
// are never empty so the visitor always sees something for every stop.
func fallbackContent(req EnrichRequest, provenance Provenance) StopContent {
	c := req.Candidate
	return StopContent{
		Code:           c.Code,
		Order:          req.Order,
		Introduction:   fmt.Sprintf("Welcome to %s, one of the museum's signature areas.", c.Name),
		History:        c.Description,
		Curiosities:    []string{"Ask the room guides about the stories behind the collection."},
		Observations:   []string{"Take your time with the pieces that catch your eye."},
		Recommendation: fmt.Sprintf("Plan around %d minutes for this area.", req.Minutes),
		Provenance:     provenance,
		Status:         StatusFailed,
	}
}
