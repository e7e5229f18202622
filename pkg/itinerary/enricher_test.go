package itinerary

import (
	"context"
	"strings"
	"testing"

	"museum-itinerary-be/pkg/knowledge"
	"museum-itinerary-be/pkg/llm"
)

func richEntry() knowledge.Entry {
	return knowledge.Entry{
		Name:        "Archaeology Hall",
		Description: "Pre-Columbian artifacts from the southern highlands.",
		History:     "Opened in 1981 on the Pumapungo site.",
		HighlightedObjects: []string{
			"Inca ceremonial axe", "Cañari funeral urn", "Spondylus necklace",
			"Tomebamba wall fragment", "Golden sun disc",
		},
		Curiosities: []string{
			"The site was a Tomebamba palace complex.",
			"Some urns still held maize when excavated.",
			"The shells travelled 400 km from the coast.",
			"The wall aligns with the June solstice.",
		},
	}
}

const goodStopResponse = `{
	"itinerary_title": "Treasures of Pumapungo",
	"itinerary_description": "A walk through the highland cultures.",
	"introduction": "This hall opens the story of the valley.",
	"contextual_history": "Long before the Inca arrived, the Cañari people settled here and built Guapondelig, later renamed Tomebamba.",
	"curiosities": ["The site was a palace.", "Urns held maize.", "Shells came from the coast.", "The wall tracks the solstice."],
	"what_to_observe": ["The axe's bronze edge.", "The urn's burn marks.", "The necklace's red shells.", "The wall's masonry joints."],
	"recommendation": "Start at the chronological timeline near the entrance."
}`

func stopRequest(code string, opening bool) EnrichRequest {
	return EnrichRequest{
		Candidate: Candidate{
			Code:        code,
			Name:        "Archaeology Hall",
			Description: "Pre-Columbian artifacts.",
			Category:    "history",
			MinMinutes:  20,
			MaxMinutes:  40,
		},
		VisitorName: "Ana",
		Interests:   []string{"history"},
		Detail:      DetailStandard,
		Opening:     opening,
		Order:       1,
		Minutes:     30,
	}
}

// A stop with rich curated material must take the knowledge-grounded path.
func TestEnrichGroundedPath(t *testing.T) {
	kb := knowledge.NewStore(map[string]knowledge.Entry{"sala_x": richEntry()})
	fp := &fakeProvider{response: goodStopResponse}
	e := NewEnricher(fp, kb)

	res := e.Enrich(context.Background(), stopRequest("sala_x", true))

	if res.Content.Provenance != ProvenanceKnowledgeBase {
		t.Errorf("Provenance = %s, want knowledge_base", res.Content.Provenance)
	}
	if res.Content.Status != StatusComplete {
		t.Errorf("Status = %s, want complete", res.Content.Status)
	}
	if res.PlanTitle != "Treasures of Pumapungo" {
		t.Errorf("PlanTitle = %q", res.PlanTitle)
	}

	prompt := fp.prompts[0]
	if !strings.Contains(prompt, "curated_facts") {
		t.Error("grounded prompt must inject the curated facts section")
	}
	if !strings.Contains(prompt, "Inca ceremonial axe") {
		t.Error("grounded prompt must list highlighted objects")
	}
	if !strings.Contains(prompt, "Do NOT invent") {
		t.Error("grounded prompt must forbid invention")
	}
}

// A stop with no curated entry must go purely generative and never reference
// knowledge-base fields.
func TestEnrichGenerativePath(t *testing.T) {
	kb := knowledge.NewStore(nil)
	fp := &fakeProvider{response: goodStopResponse}
	e := NewEnricher(fp, kb)

	res := e.Enrich(context.Background(), stopRequest("sala_y", false))

	if res.Content.Provenance != ProvenanceGenerative {
		t.Errorf("Provenance = %s, want generative", res.Content.Provenance)
	}
	prompt := fp.prompts[0]
	if strings.Contains(prompt, "curated_facts") {
		t.Error("generative prompt must not carry a curated facts section")
	}
	if !strings.Contains(prompt, "plausible, educational") {
		t.Error("generative prompt must ask for plausible educational content")
	}
	// non-opening stop carries no plan amendments
	if res.PlanTitle != "" {
		t.Errorf("PlanTitle = %q, want empty for non-opening stop", res.PlanTitle)
	}
}

// An entry below the sufficiency cutoff is treated like no entry at all.
func TestEnrichThinEntryGoesGenerative(t *testing.T) {
	thin := richEntry()
	thin.Curiosities = thin.Curiosities[:2] // below the 3-item threshold
	kb := knowledge.NewStore(map[string]knowledge.Entry{"sala_x": thin})
	fp := &fakeProvider{response: goodStopResponse}

	res := NewEnricher(fp, kb).Enrich(context.Background(), stopRequest("sala_x", false))
	if res.Content.Provenance != ProvenanceGenerative {
		t.Errorf("Provenance = %s, want generative for thin entry", res.Content.Provenance)
	}
}

// Provider failure must yield the fallback record, never an error or an
// empty stop.
func TestEnrichFallbackOnUnavailable(t *testing.T) {
	kb := knowledge.NewStore(nil)
	fp := &fakeProvider{err: llm.ErrUnavailable}

	res := NewEnricher(fp, kb).Enrich(context.Background(), stopRequest("sala_y", true))

	c := res.Content
	if c.Status != StatusFailed {
		t.Errorf("Status = %s, want failed", c.Status)
	}
	if c.Introduction == "" || c.History == "" {
		t.Error("fallback content must have non-empty introduction and narrative")
	}
	if len(c.Curiosities) == 0 || len(c.Observations) == 0 {
		t.Error("fallback content must carry placeholder curiosity and observation")
	}
}

func TestEnrichFallbackOnMalformedResponse(t *testing.T) {
	kb := knowledge.NewStore(nil)
	fp := &fakeProvider{response: "sorry, I got distracted"}

	res := NewEnricher(fp, kb).Enrich(context.Background(), stopRequest("sala_y", false))
	if res.Content.Status != StatusFailed {
		t.Errorf("Status = %s, want failed", res.Content.Status)
	}
	if res.Content.Introduction == "" {
		t.Error("fallback introduction must not be empty")
	}
}

func TestItemTargets(t *testing.T) {
	tests := []struct {
		detail   DetailLevel
		grounded bool
		want     int
	}{
		{DetailBrief, true, 4},
		{DetailStandard, true, 4},
		{DetailStandard, false, 4},
		{DetailDeep, true, 6},
		{DetailDeep, false, 5},
	}
	for _, tt := range tests {
		if got := itemTarget(tt.detail, tt.grounded); got != tt.want {
			t.Errorf("itemTarget(%s, %v) = %d, want %d", tt.detail, tt.grounded, got, tt.want)
		}
	}
}

func TestTokenBudgets(t *testing.T) {
	if tokenBudget(DetailStandard) != 1800 {
		t.Errorf("standard budget = %d", tokenBudget(DetailStandard))
	}
	if tokenBudget(DetailDeep) != 3000 {
		t.Errorf("deep budget = %d", tokenBudget(DetailDeep))
	}
	if tokenBudget(DetailBrief) >= tokenBudget(DetailStandard) {
		t.Error("brief budget should be below standard")
	}
}
