package dto

import (
	"github.com/google/uuid"
)

type GenerateItineraryRequest struct {
	VisitorName      string   `json:"visitor_name"`
	Interests        []string `json:"interests"`
	AvailableMinutes *int     `json:"available_minutes"` // nil = "no limit"
	DetailLevel      string   `json:"detail_level"`      // brief | standard | deep
}

type StopResponse struct {
	AreaCode       string   `json:"area_code"`
	Order          int      `json:"order"`
	Minutes        int      `json:"minutes"`
	Introduction   string   `json:"introduction"`
	History        string   `json:"history"`
	Curiosities    []string `json:"curiosities"`
	Observations   []string `json:"what_to_observe"`
	Recommendation string   `json:"recommendation"`
	Provenance     string   `json:"provenance"`
	Status         string   `json:"status"`
}

type GenerateItineraryResponse struct {
	Id           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	TotalMinutes int            `json:"total_minutes"`
	Status       string         `json:"status"`
	HoursNotice  string         `json:"hours_notice,omitempty"`
	Stops        []StopResponse `json:"stops"`
}

type GenerationProgressResponse struct {
	ItineraryId    uuid.UUID `json:"itinerary_id"`
	Completed      bool      `json:"completed"`
	StopsGenerated int       `json:"stops_generated"`
	TotalStops     int       `json:"total_stops"`
	Percent        float64   `json:"percent_completed"`
	Status         string    `json:"status"`
}

type HoursResponse struct {
	Open           bool   `json:"open"`
	Message        string `json:"message"`
	MinutesToClose int    `json:"minutes_to_close"`
	Schedule       string `json:"schedule"`
}

type AIHealthResponse struct {
	Connected bool   `json:"connected"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Detail    string `json:"detail,omitempty"`
}

// RemainingStop carries one not-yet-generated stop of a plan, with enough
// of the area catalog embedded for the worker to prompt without re-reading it.
type RemainingStop struct {
	AreaCode    string `json:"area_code"`
	AreaName    string `json:"area_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Order       int    `json:"order"`
	Minutes     int    `json:"minutes"`
}

// GenerateRemainingStopsMessage is the background job payload handed to the
// completion scheduler after the opening stop is returned to the caller.
type GenerateRemainingStopsMessage struct {
	ItineraryId uuid.UUID       `json:"itinerary_id"`
	VisitorName string          `json:"visitor_name"`
	Interests   []string        `json:"interests"`
	DetailLevel string          `json:"detail_level"`
	Stops       []RemainingStop `json:"stops"`
}
