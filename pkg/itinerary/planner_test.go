package itinerary

import (
	"context"
	"errors"
	"testing"

	"museum-itinerary-be/pkg/llm"
)

// fakeProvider scripts completion responses for tests.
type fakeProvider struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeProvider) Complete(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) Ping(context.Context) error { return f.err }
func (f *fakeProvider) Name() string               { return "fake" }
func (f *fakeProvider) ModelName() string          { return "fake-model" }

func catalog() []Candidate {
	return []Candidate{
		{Code: "sala_arqueologia", Name: "Archaeology Hall", Category: "history", MinMinutes: 20, MaxMinutes: 40, Floor: 1},
		{Code: "sala_etnografia", Name: "Ethnography Hall", Category: "culture", MinMinutes: 25, MaxMinutes: 45, Floor: 1},
		{Code: "sala_arte", Name: "Art Gallery", Category: "art", MinMinutes: 15, MaxMinutes: 30, Floor: 2},
		{Code: "sala_numismatica", Name: "Numismatics", Category: "history", MinMinutes: 10, MaxMinutes: 20, Floor: 2},
		{Code: "aviario", Name: "Aviary", Category: "nature", MinMinutes: 15, MaxMinutes: 25, Floor: 0},
	}
}

func checkContiguous(t *testing.T, plan *Plan) {
	t.Helper()
	if len(plan.Stops) == 0 {
		t.Fatal("plan has no stops")
	}
	for i, s := range plan.Stops {
		if s.Order != i+1 {
			t.Errorf("stop %d has order %d, want %d", i, s.Order, i+1)
		}
	}
}

func TestBuildWithoutCapIncludesEverything(t *testing.T) {
	p := NewPlanner(&fakeProvider{})
	plan := p.Build(context.Background(), "Ana", nil, nil, catalog())

	if len(plan.Stops) != 5 {
		t.Fatalf("stops = %d, want 5", len(plan.Stops))
	}
	checkContiguous(t, plan)

	wantTotal := 40 + 45 + 30 + 20 + 25
	if plan.TotalMinutes != wantTotal {
		t.Errorf("TotalMinutes = %d, want %d", plan.TotalMinutes, wantTotal)
	}
	// no provider call on the unlimited path
	fp := p.provider.(*fakeProvider)
	if len(fp.prompts) != 0 {
		t.Errorf("unlimited plan should not call the provider, got %d calls", len(fp.prompts))
	}
}

func TestBuildWithCapUsesSelection(t *testing.T) {
	fp := &fakeProvider{response: `{"stops":[
		{"code":"sala_arqueologia","order":1,"minutes":35},
		{"code":"sala_arte","order":2,"minutes":25},
		{"code":"sala_numismatica","order":3,"minutes":15}
	]}`}
	budget := 80
	plan := NewPlanner(fp).Build(context.Background(), "Ana", []string{"history"}, &budget, catalog())

	if len(plan.Stops) != 3 {
		t.Fatalf("stops = %d, want 3", len(plan.Stops))
	}
	checkContiguous(t, plan)
	if plan.TotalMinutes != 75 {
		t.Errorf("TotalMinutes = %d, want 75", plan.TotalMinutes)
	}
	if plan.Stops[0].Code != "sala_arqueologia" {
		t.Errorf("first stop = %s", plan.Stops[0].Code)
	}
}

func TestBuildFallsBackOnProviderError(t *testing.T) {
	fp := &fakeProvider{err: llm.ErrUnavailable}
	budget := 120
	plan := NewPlanner(fp).Build(context.Background(), "Ana", nil, &budget, catalog())

	// first four catalog candidates with their maximum minutes
	if len(plan.Stops) != 4 {
		t.Fatalf("stops = %d, want 4", len(plan.Stops))
	}
	checkContiguous(t, plan)
	if plan.Stops[0].Code != "sala_arqueologia" || plan.Stops[3].Code != "sala_numismatica" {
		t.Errorf("fallback took wrong candidates: %+v", plan.Stops)
	}
}

func TestBuildFallsBackOnGarbageResponse(t *testing.T) {
	fp := &fakeProvider{response: "I cannot answer that."}
	budget := 120
	plan := NewPlanner(fp).Build(context.Background(), "Ana", nil, &budget, catalog())
	if len(plan.Stops) != 4 {
		t.Fatalf("stops = %d, want 4", len(plan.Stops))
	}
	checkContiguous(t, plan)
}

func TestBuildFallsBackOnUnknownCode(t *testing.T) {
	fp := &fakeProvider{response: `{"stops":[{"code":"sala_fantasma","order":1,"minutes":30}]}`}
	budget := 60
	plan := NewPlanner(fp).Build(context.Background(), "Ana", nil, &budget, catalog())
	checkContiguous(t, plan)
	for _, s := range plan.Stops {
		if s.Code == "sala_fantasma" {
			t.Error("unknown area leaked into the plan")
		}
	}
}

func TestBuildRespectsBudgetOvershoot(t *testing.T) {
	// Selection answers with far more minutes than the budget allows.
	fp := &fakeProvider{response: `{"stops":[
		{"code":"sala_arqueologia","order":1,"minutes":40},
		{"code":"sala_etnografia","order":2,"minutes":45},
		{"code":"sala_arte","order":3,"minutes":30}
	]}`}
	budget := 60
	plan := NewPlanner(fp).Build(context.Background(), "Ana", nil, &budget, catalog())

	checkContiguous(t, plan)
	allowed := budget + budget/10
	if plan.TotalMinutes > allowed {
		t.Errorf("TotalMinutes = %d exceeds %d", plan.TotalMinutes, allowed)
	}
}

func TestSelectionClampsMinutesToCandidateRange(t *testing.T) {
	fp := &fakeProvider{response: `{"stops":[{"code":"sala_arte","order":1,"minutes":300}]}`}
	budget := 400
	plan := NewPlanner(fp).Build(context.Background(), "Ana", nil, &budget, catalog())
	if plan.Stops[0].Minutes != 30 {
		t.Errorf("minutes = %d, want clamped to 30", plan.Stops[0].Minutes)
	}
}

func TestEnforceBudgetKeepsAtLeastOneStop(t *testing.T) {
	plan := &Plan{
		Stops:        []PlannedStop{{Code: "a", Order: 1, Minutes: 200}},
		TotalMinutes: 200,
	}
	enforceBudget(plan, 30)
	if len(plan.Stops) != 1 {
		t.Fatalf("stops = %d, want 1", len(plan.Stops))
	}
}

func TestFallbackIsUsedOnTimeout(t *testing.T) {
	fp := &fakeProvider{err: errors.New("deadline exceeded")}
	budget := 90
	plan := NewPlanner(fp).Build(context.Background(), "Ana", nil, &budget, catalog())
	if len(plan.Stops) == 0 {
		t.Fatal("plan must never be empty for a non-empty catalog")
	}
}
