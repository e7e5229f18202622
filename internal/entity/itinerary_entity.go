package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Itinerary-level generation states. Stop-level states live on each
// ItineraryStop record.
const (
	ItineraryInProgress = "in_progress"
	ItineraryGenerated  = "generated"
)

type Itinerary struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	VisitorName  string    `gorm:"type:varchar(255);not null"`
	Interests    datatypes.JSONSlice[string]
	DetailLevel  string `gorm:"type:varchar(16)"`
	Title        string `gorm:"type:varchar(255)"`
	Description  string `gorm:"type:text"`
	TotalMinutes int
	Status       string `gorm:"type:varchar(32);index"`
	ModelUsed    string `gorm:"type:varchar(128)"`
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (Itinerary) TableName() string {
	return "itineraries"
}

// ItineraryStop is the persisted content record for one stop of a plan.
// Created as a pending placeholder when the plan is built, then filled in,
// first synchronously for stop 1 and in the background for the rest.
type ItineraryStop struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItineraryId    uuid.UUID `gorm:"type:uuid;index;not null"`
	AreaCode       string    `gorm:"type:varchar(64);not null"`
	OrderIndex     int       `gorm:"not null"`
	Minutes        int
	Introduction   string `gorm:"type:text"`
	History        string `gorm:"type:text"`
	Curiosities    datatypes.JSONSlice[string]
	Observations   datatypes.JSONSlice[string]
	Recommendation string `gorm:"type:text"`
	Provenance     string `gorm:"type:varchar(32)"`
	Status         string `gorm:"type:varchar(16);index"`
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

func (ItineraryStop) TableName() string {
	return "itinerary_stops"
}
