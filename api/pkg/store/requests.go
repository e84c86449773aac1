package store

import (
	"fmt"
	"strings"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/models"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"gorm.io/datatypes"
)

// Party size limits accepted when a trip is created
const (
	MaxAdults   = 8
	MaxChildren = 4
	MaxInfants  = 3
)

// Price ceilings in yen per person for the attraction budget filter
const (
	BudgetMaxPrice   = 2000
	MidRangeMaxPrice = 10000
)

// AttractionFilter narrows the attraction list; zero values match everything
type AttractionFilter struct {
	Categories  []planner.ActivityType
	Prefecture  string
	BudgetRange planner.BudgetRange
}

// MaxPrice returns the price ceiling of the budget range, or false when the
// range does not restrict prices.
func (f AttractionFilter) MaxPrice() (float64, bool) {
	switch f.BudgetRange {
	case planner.BudgetLow:
		return BudgetMaxPrice, true
	case planner.BudgetMid:
		return MidRangeMaxPrice, true
	}
	return 0, false
}

// CategoryStrings returns the categories as column values.
func (f AttractionFilter) CategoryStrings() []string {
	out := make([]string, 0, len(f.Categories))
	for _, c := range f.Categories {
		out = append(out, string(c))
	}
	return out
}

// Matches applies the filter to a single attraction.
func (f AttractionFilter) Matches(a models.Attraction) bool {
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if string(c) == a.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Prefecture != "" && f.Prefecture != a.Prefecture {
		return false
	}
	if ceiling, ok := f.MaxPrice(); ok && a.Price > ceiling {
		return false
	}
	return true
}

// Validate rejects unknown categories and budget ranges.
func (f AttractionFilter) Validate() error {
	for _, c := range f.Categories {
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	if f.BudgetRange != "" && !f.BudgetRange.Valid() {
		return fmt.Errorf("unknown budget range %q", f.BudgetRange)
	}
	return nil
}

// CreateTripRequest is the body of POST /api/trips
type CreateTripRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Preferences planner.TripPreferences `json:"preferences"`
}

// Validate checks the preferences and the party size limits of a new trip.
func (r CreateTripRequest) Validate() planner.FieldErrors {
	errs := planner.ValidatePreferences(r.Preferences)
	p := r.Preferences
	if p.Adults > MaxAdults {
		errs["adults"] = fmt.Sprintf("At most %d adults are allowed", MaxAdults)
	}
	if p.Children > MaxChildren {
		errs["children"] = fmt.Sprintf("At most %d children are allowed", MaxChildren)
	}
	if p.Infants > MaxInfants {
		errs["infants"] = fmt.Sprintf("At most %d infants are allowed", MaxInfants)
	}
	if len(r.Title) > 200 {
		errs["title"] = "Title must be at most 200 characters"
	}
	return errs
}

// NewTripFromRequest builds the row for a new draft trip owned by userID.
func NewTripFromRequest(userID string, req CreateTripRequest) models.Trip {
	p := req.Preferences

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("Japan Trip %d", p.StartDate.Year())
	}

	activities := make([]string, 0, len(p.Activities))
	for _, a := range p.Activities {
		activities = append(activities, string(a))
	}
	needs := p.AccessibilityNeeds
	if needs == nil {
		needs = []string{}
	}

	return models.Trip{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		StartDate:   models.NewDate(p.StartDate),
		EndDate:     models.NewDate(p.EndDate),
		GroupSize:   p.TotalTravelers(),
		Adults:      p.Adults,
		Children:    p.Children,
		Infants:     p.Infants,
		BudgetRange: string(p.BudgetRange),
		TripPace:    string(p.TripPace),
		Preferences: datatypes.NewJSONType(models.TripPreferenceSet{
			Activities:         activities,
			AccessibilityNeeds: needs,
		}),
		Status: models.TripStatusDraft,
	}
}

// TripUpdate is a partial update of a trip; nil fields are left alone
type TripUpdate struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TripStatus `json:"status"`
	StartDate   *models.Date       `json:"start_date"`
	EndDate     *models.Date       `json:"end_date"`
	BudgetRange *string            `json:"budget_range"`
	TripPace    *string            `json:"trip_pace"`
}

// Validate checks the values present in the update.
func (u TripUpdate) Validate() planner.FieldErrors {
	errs := planner.FieldErrors{}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs["title"] = "Title must not be empty"
	}
	if u.Status != nil && !u.Status.Valid() {
		errs["status"] = "Status must be draft, published or archived"
	}
	if u.BudgetRange != nil && !planner.BudgetRange(*u.BudgetRange).Valid() {
		errs["budget_range"] = "Unknown budget range"
	}
	if u.TripPace != nil && !planner.TripPace(*u.TripPace).Valid() {
		errs["trip_pace"] = "Unknown trip pace"
	}
	if u.StartDate != nil && u.EndDate != nil && u.EndDate.Before(u.StartDate.Time) {
		errs["end_date"] = "End date must not be before start date"
	}
	return errs
}

// Empty reports whether the update changes nothing.
func (u TripUpdate) Empty() bool {
	return len(u.Fields()) == 0
}

// Fields returns the changed columns keyed by column name.
func (u TripUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Title != nil {
		fields["title"] = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.StartDate != nil {
		fields["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		fields["end_date"] = *u.EndDate
	}
	if u.BudgetRange != nil {
		fields["budget_range"] = *u.BudgetRange
	}
	if u.TripPace != nil {
		fields["trip_pace"] = *u.TripPace
	}
	return fields
}

// Apply writes the update onto a loaded trip.
func (u TripUpdate) Apply(t *models.Trip) {
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.StartDate != nil {
		t.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		t.EndDate = *u.EndDate
	}
	if u.BudgetRange != nil {
		t.BudgetRange = *u.BudgetRange
	}
	if u.TripPace != nil {
		t.TripPace = *u.TripPace
	}
}

// UserUpdate is a partial update of a user
type UserUpdate struct {
	FullName    *string      `json:"full_name"`
	AvatarURL   *string      `json:"avatar_url"`
	Preferences *models.JSON `json:"preferences"`
}

// Fields returns the changed columns keyed by column name.
func (u UserUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.FullName != nil {
		fields["full_name"] = *u.FullName
	}
	if u.AvatarURL != nil {
		fields["avatar_url"] = *u.AvatarURL
	}
	if u.Preferences != nil {
		fields["preferences"] = *u.Preferences
	}
	return fields
}

// Apply writes the update onto a loaded user.
func (u UserUpdate) Apply(user *models.User) {
	if u.FullName != nil {
		user.FullName = *u.FullName
	}
	if u.AvatarURL != nil {
		user.AvatarURL = *u.AvatarURL
	}
	if u.Preferences != nil {
		user.Preferences = *u.Preferences
	}
}
