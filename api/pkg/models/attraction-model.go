package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attraction is a bookable place or experience in Japan
type Attraction struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `gorm:"not null" json:"name"`
	NameJapanese string `json:"name_japanese,omitempty"`
	Description  string `json:"description"`
	Category     string `gorm:"not null;index" json:"category"`
	Subcategory  string `json:"subcategory,omitempty"`

	// Location
	LocationName string  `json:"location_name"`
	Prefecture   string  `gorm:"index" json:"prefecture"`
	City         string  `json:"city,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Website      string  `json:"website,omitempty"`

	DurationMinutes int     `json:"duration_minutes"`
	BestVisitTime   string  `json:"best_visit_time,omitempty"`
	Price           float64 `gorm:"not null" json:"price"` // yen per person

	CulturalSignificance string                      `json:"cultural_significance,omitempty"`
	HistoricalContext    string                      `json:"historical_context,omitempty"`
	AccessibilityInfo    string                      `json:"accessibility_info,omitempty"`
	VisitorTips          datatypes.JSONSlice[string] `json:"visitor_tips"`
	SeasonalInfo         datatypes.JSONSlice[string] `json:"seasonal_info"`

	Rating          float64 `json:"rating"`
	ReviewCount     int     `gorm:"not null" json:"review_count"`
	PopularityScore int     `gorm:"not null;index" json:"popularity_score"`

	// Relationships
	Images []AttractionImage `gorm:"foreignKey:AttractionID" json:"images,omitempty"`
}

// AttractionImage is one photo of an attraction, shown in SortOrder
type AttractionImage struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AttractionID string `gorm:"not null;index;type:varchar(64)" json:"attraction_id"`
	URL          string `gorm:"not null" json:"url"`
	AltText      string `json:"alt_text,omitempty"`
	SortOrder    int    `gorm:"not null" json:"sort_order"`
}

func (i *AttractionImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
