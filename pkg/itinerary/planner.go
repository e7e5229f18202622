package itinerary

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"museum-itinerary-be/pkg/extract"
	"museum-itinerary-be/pkg/llm"
)

const (
	// placeholders shown to the visitor until the opening stop's content
	// amends the plan
	placeholderTitle       = "Building your itinerary..."
	placeholderDescription = "Preparing your personalized tour..."

	selectionMaxTokens = 900
	// overshootPercent bounds how far a capped plan may exceed its budget.
	overshootPercent = 10
)

// Planner chooses and orders stops to fit the admissible duration. Selection
// under a time cap is delegated to the completion provider; any failure of
// that step falls back to a fixed deterministic choice, so planning never
// propagates an error for a non-empty catalog.
type Planner struct {
	provider llm.Provider
}

func NewPlanner(provider llm.Provider) *Planner {
	return &Planner{provider: provider}
}

// Build produces the visit skeleton. A nil budget means "no limit": every
// candidate is included in catalog order with its maximum minutes.
func (p *Planner) Build(ctx context.Context, visitorName string, interests []string, budget *int, candidates []Candidate) *Plan {
	if budget == nil {
		return fullPlan(candidates)
	}

	plan, err := p.selectStops(ctx, visitorName, interests, *budget, candidates)
	if err != nil {
		log.Printf("[WARN] stop selection failed (%v), using catalog fallback", err)
		plan = fallbackPlan(candidates)
	}
	enforceBudget(plan, *budget)
	return plan
}

func fullPlan(candidates []Candidate) *Plan {
	plan := &Plan{
		Title:       placeholderTitle,
		Description: placeholderDescription,
	}
	for i, c := range candidates {
		plan.Stops = append(plan.Stops, PlannedStop{
			Code:    c.Code,
			Order:   i + 1,
			Minutes: c.MaxMinutes,
		})
		plan.TotalMinutes += c.MaxMinutes
	}
	return plan
}

// fallbackPlan takes the first four catalog candidates with their maximum
// minutes. It is the guaranteed-safe answer when selection misbehaves.
func fallbackPlan(candidates []Candidate) *Plan {
	n := len(candidates)
	if n > 4 {
		n = 4
	}
	return fullPlan(candidates[:n])
}

type selectionPayload struct {
	Stops []struct {
		Code    string `json:"code"`
		Order   int    `json:"order"`
		Minutes int    `json:"minutes"`
	} `json:"stops"`
}

func (p *Planner) selectStops(ctx context.Context, visitorName string, interests []string, budget int, candidates []Candidate) (*Plan, error) {
	prompt := buildSelectionPrompt(visitorName, interests, budget, candidates)

	raw, err := p.provider.Complete(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(selectionMaxTokens),
		llm.WithStructuredOutput(),
	)
	if err != nil {
		return nil, fmt.Errorf("selection completion: %w", err)
	}

	var payload selectionPayload
	if err := extract.JSON(raw, &payload); err != nil {
		return nil, fmt.Errorf("selection parse: %w", err)
	}
	if len(payload.Stops) == 0 {
		return nil, fmt.Errorf("selection returned no stops")
	}

	byCode := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byCode[c.Code] = c
	}

	sort.SliceStable(payload.Stops, func(i, j int) bool {
		return payload.Stops[i].Order < payload.Stops[j].Order
	})

	plan := &Plan{
		Title:       placeholderTitle,
		Description: placeholderDescription,
	}
	for _, s := range payload.Stops {
		c, ok := byCode[s.Code]
		if !ok {
			return nil, fmt.Errorf("selection named unknown area %q", s.Code)
		}
		minutes := s.Minutes
		if minutes < c.MinMinutes {
			minutes = c.MinMinutes
		}
		if minutes > c.MaxMinutes {
			minutes = c.MaxMinutes
		}
		plan.Stops = append(plan.Stops, PlannedStop{
			Code:    c.Code,
			Order:   len(plan.Stops) + 1,
			Minutes: minutes,
		})
		plan.TotalMinutes += minutes
	}
	return plan, nil
}

// enforceBudget keeps the total inside budget plus the allowed overshoot by
// shaving the tail stops, dropping them entirely when shaving is not enough.
// At least one stop always survives.
func enforceBudget(plan *Plan, budget int) {
	allowed := budget + budget*overshootPercent/100
	for plan.TotalMinutes > allowed && len(plan.Stops) > 1 {
		last := &plan.Stops[len(plan.Stops)-1]
		excess := plan.TotalMinutes - allowed
		if last.Minutes-excess >= 10 {
			last.Minutes -= excess
			plan.TotalMinutes -= excess
			return
		}
		plan.TotalMinutes -= last.Minutes
		plan.Stops = plan.Stops[:len(plan.Stops)-1]
	}
}

func buildSelectionPrompt(visitorName string, interests []string, budget int, candidates []Candidate) string {
	var b strings.Builder

	b.WriteString("<task>\n")
	b.WriteString("You are an expert museum guide planning a visit route.\n")
	fmt.Fprintf(&b, "Select 3 to 5 areas for %s whose suggested times add up to roughly %d minutes.\n", visitorName, budget)
	if len(interests) > 0 {
		fmt.Fprintf(&b, "Prefer areas matching these interests: %s.\n", strings.Join(interests, ", "))
	}
	b.WriteString("Order them as a sensible walking route.\n")
	b.WriteString("</task>\n\n")

	b.WriteString("<available_areas>\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "%s: %s [%s] (%d-%d min, floor %d)\n",
			c.Code, c.Name, c.Category, c.MinMinutes, c.MaxMinutes, c.Floor)
	}
	b.WriteString("</available_areas>\n\n")

	b.WriteString("<output_format>\n")
	b.WriteString("Respond ONLY with a JSON object, no text before or after, no code fences:\n")
	b.WriteString(`{"stops": [{"code": "area_code", "order": 1, "minutes": 30}]}` + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("1. Every code must come from the list above.\n")
	b.WriteString("2. minutes must stay within each area's range.\n")
	fmt.Fprintf(&b, "3. The minutes must sum to approximately %d.\n", budget)
	b.WriteString("</output_format>")

	return b.String()
}
