package planner

import (
	"encoding/json"
	"time"
)

// ActivityType enum
type ActivityType string

const (
	ActivityTemples       ActivityType = "temples"
	ActivityFood          ActivityType = "food"
	ActivityNightlife     ActivityType = "nightlife"
	ActivityShopping      ActivityType = "shopping"
	ActivityNature        ActivityType = "nature"
	ActivityCulture       ActivityType = "culture"
	ActivityMuseums       ActivityType = "museums"
	ActivityEntertainment ActivityType = "entertainment"
)

// ActivityTypes lists every category in display order.
var ActivityTypes = []ActivityType{
	ActivityTemples,
	ActivityFood,
	ActivityNightlife,
	ActivityShopping,
	ActivityNature,
	ActivityCulture,
	ActivityMuseums,
	ActivityEntertainment,
}

// Valid reports whether the category belongs to the closed set.
func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// BudgetRange enum
type BudgetRange string

const (
	BudgetLow    BudgetRange = "budget"
	BudgetMid    BudgetRange = "mid-range"
	BudgetLuxury BudgetRange = "luxury"
)

func (b BudgetRange) Valid() bool {
	switch b {
	case BudgetLow, BudgetMid, BudgetLuxury:
		return true
	}
	return false
}

// TripPace enum
type TripPace string

const (
	PaceRelaxed  TripPace = "relaxed"
	PaceModerate TripPace = "moderate"
	PacePacked   TripPace = "packed"
)

func (p TripPace) Valid() bool {
	switch p {
	case PaceRelaxed, PaceModerate, PacePacked:
		return true
	}
	return false
}

// TripPreferences are the constraints a traveler submits from the planning form
type TripPreferences struct {
	StartDate          time.Time      `json:"startDate"`
	EndDate            time.Time      `json:"endDate"`
	Adults             int            `json:"adults"`
	Children           int            `json:"children"`
	Infants            int            `json:"infants"`
	Activities         []ActivityType `json:"activities"`
	BudgetRange        BudgetRange    `json:"budgetRange"`
	TripPace           TripPace       `json:"tripPace"`
	AccessibilityNeeds []string       `json:"accessibilityNeeds"`
}

// UnmarshalJSON accepts plain YYYY-MM-DD dates as sent by date inputs, as
// well as full timestamps.
func (p *TripPreferences) UnmarshalJSON(data []byte) error {
	type plain TripPreferences
	aux := struct {
		StartDate *string `json:"startDate"`
		EndDate   *string `json:"endDate"`
		*plain
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	// unparseable dates surface as field errors like the rest of the form
	errs := FieldErrors{}
	var err error
	if p.StartDate, err = optionalDate(aux.StartDate); err != nil {
		errs["startDate"] = "Start date must be a valid date (YYYY-MM-DD)"
	}
	if p.EndDate, err = optionalDate(aux.EndDate); err != nil {
		errs["endDate"] = "End date must be a valid date (YYYY-MM-DD)"
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func optionalDate(value *string) (time.Time, error) {
	if value == nil || *value == "" {
		return time.Time{}, nil
	}
	return ParseDate(*value)
}

// TotalTravelers counts everyone in the party, infants included.
func (p TripPreferences) TotalTravelers() int {
	return p.Adults + p.Children + p.Infants
}

// Wants reports whether the category was requested.
func (p TripPreferences) Wants(category ActivityType) bool {
	for _, a := range p.Activities {
		if a == category {
			return true
		}
	}
	return false
}

// Coordinates is a lat/lng pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location describes where an activity takes place
type Location struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	Prefecture  string      `json:"prefecture"`
	City        string      `json:"city"`
}

// Activity is a single attraction from the reference catalog.
// Values are shared between snapshots and must be treated as read-only.
type Activity struct {
	ID                   string       `json:"id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Category             ActivityType `json:"category"`
	Location             Location     `json:"location"`
	Duration             int          `json:"duration"` // minutes
	Images               []string     `json:"images"`
	Rating               float64      `json:"rating"`
	Price                float64      `json:"price"`
	Tips                 []string     `json:"tips"`
	CulturalSignificance string       `json:"culturalSignificance,omitempty"`
	HistoricalContext    string       `json:"historicalContext,omitempty"`
	AccessibilityInfo    string       `json:"accessibilityInfo,omitempty"`
	ImageAltTexts        []string     `json:"imageAltTexts,omitempty"`
	BestVisitSeasons     []string     `json:"bestVisitSeasons,omitempty"`
}

// DayItinerary is the ordered schedule of a single trip day
type DayItinerary struct {
	Day        int        `json:"day"`
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

// ItineraryData is one immutable snapshot of a generated itinerary
type ItineraryData struct {
	ID                 string          `json:"id"`
	TripDuration       int             `json:"tripDuration"`
	Preferences        TripPreferences `json:"preferences"`
	Days               []DayItinerary  `json:"days"`
	TotalEstimatedCost float64         `json:"totalEstimatedCost"`
}

// Day returns the day with the given 1-based number.
func (it ItineraryData) Day(number int) (DayItinerary, bool) {
	for _, d := range it.Days {
		if d.Day == number {
			return d, true
		}
	}
	return DayItinerary{}, false
}

// ActivityCount returns the number of scheduled activities across all days.
func (it ItineraryData) ActivityCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Activities)
	}
	return n
}

// Clone returns a snapshot that shares no day or activity slices with it.
func (it ItineraryData) Clone() ItineraryData {
	out := it
	out.Preferences.Activities = cloneSlice(it.Preferences.Activities)
	out.Preferences.AccessibilityNeeds = cloneSlice(it.Preferences.AccessibilityNeeds)
	out.Days = cloneSlice(it.Days)
	for i := range out.Days {
		out.Days[i].Activities = cloneSlice(it.Days[i].Activities)
	}
	return out
}

// cloneSlice copies s, keeping nil and empty slices distinct.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
