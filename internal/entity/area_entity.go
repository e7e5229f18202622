package entity

import (
	"time"

	"github.com/google/uuid"
)

// Area is one visitable museum area, the raw material of every plan.
type Area struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code             string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Description      string    `gorm:"type:text"`
	Category         string    `gorm:"type:varchar(64);index"`
	Floor            int
	MinMinutes       int
	MaxMinutes       int
	RecommendedOrder int  `gorm:"index"`
	Active           bool `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

func (Area) TableName() string {
	return "areas"
}
