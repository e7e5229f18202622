// Package itinerary plans personalized museum visits and synthesizes the
// narrative content for each stop.
package itinerary

// Candidate is one selectable museum area, supplied by the area catalog
// already filtered and ordered.
type Candidate struct {
	Code        string
	Name        string
	Description string
	Category    string
	MinMinutes  int
	MaxMinutes  int
	Floor       int
}

// DetailLevel controls how much content each stop gets.
type DetailLevel string

const (
	DetailBrief    DetailLevel = "brief"
	DetailStandard DetailLevel = "standard"
	DetailDeep     DetailLevel = "deep"
)

// Provenance marks whether a stop's content was grounded in the curated
// knowledge base or produced purely generatively.
type Provenance string

const (
	ProvenanceKnowledgeBase Provenance = "knowledge_base"
	ProvenanceGenerative    Provenance = "generative"
)

// Status tracks a stop's content through generation. It only ever moves
// forward: pending -> generating -> complete|failed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusGenerating Status = "generating"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
)

// PlannedStop is one entry of the plan skeleton: which area, in what order,
// for how long. Prose content comes later.
type PlannedStop struct {
	Code    string
	Order   int
	Minutes int
}

// Plan is the ordered visit structure. Title and Description start as
// placeholders and are amended once the opening stop's content arrives.
type Plan struct {
	Title        string
	Description  string
	TotalMinutes int
	Stops        []PlannedStop
}

// StopContent is the synthesized narrative for one stop.
type StopContent struct {
	Code           string
	Order          int
	Introduction   string
	History        string
	Curiosities    []string
	Observations   []string
	Recommendation string
	Provenance     Provenance
	Status         Status
}
