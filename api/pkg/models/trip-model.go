package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusPublished TripStatus = "published"
	TripStatusArchived  TripStatus = "archived"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusDraft, TripStatusPublished, TripStatusArchived:
		return true
	}
	return false
}

// TripPreferenceSet is the part of the preferences without a column of its own
type TripPreferenceSet struct {
	Activities         []string `json:"activities"`
	AccessibilityNeeds []string `json:"accessibilityNeeds"`
}

// Trip is a saved trip plan
type Trip struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      string `gorm:"not null;index;type:varchar(128)" json:"user_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	StartDate Date `gorm:"not null" json:"start_date"`
	EndDate   Date `gorm:"not null" json:"end_date"`

	// Party
	GroupSize int `gorm:"not null" json:"group_size"`
	Adults    int `gorm:"not null" json:"adults"`
	Children  int `gorm:"not null" json:"children"`
	Infants   int `gorm:"not null" json:"infants"`

	BudgetRange string                                `json:"budget_range"`
	TripPace    string                                `json:"trip_pace"`
	Preferences datatypes.JSONType[TripPreferenceSet] `json:"preferences"`
	Status      TripStatus                            `gorm:"not null;default:'draft'" json:"status"`

	// Relationships
	Activities []TripActivity `gorm:"foreignKey:TripID" json:"activities,omitempty"`
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = TripStatusDraft
	}
	return nil
}

type ActivityStatus string

const (
	ActivityPlanned ActivityStatus = "planned"
	ActivityVisited ActivityStatus = "visited"
	ActivitySkipped ActivityStatus = "skipped"
)

// TripActivity is one scheduled stop of a saved trip
type TripActivity struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TripID       string `gorm:"not null;index;type:varchar(36)" json:"trip_id"`
	AttractionID string `gorm:"index" json:"attraction_id,omitempty"`

	DayNumber         int    `gorm:"not null" json:"day_number"`
	SortOrder         int    `gorm:"not null" json:"sort_order"`
	StartTime         string `json:"start_time,omitempty"`
	EstimatedDuration int    `json:"estimated_duration,omitempty"` // minutes
	Notes             string `json:"notes,omitempty"`

	Status            ActivityStatus `gorm:"not null;default:'planned'" json:"status"`
	IsCustom          bool           `json:"is_custom"`
	CustomName        string         `json:"custom_name,omitempty"`
	CustomDescription string         `json:"custom_description,omitempty"`
}

func (a *TripActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = ActivityPlanned
	}
	return nil
}
