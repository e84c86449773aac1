package planner

import (
	"github.com/google/uuid"
)

// MaxActivitiesPerDay caps the daily load regardless of pace.
const MaxActivitiesPerDay = 4

// MaxTripDays is the longest trip the planner accepts.
const MaxTripDays = 365

// Allocator distributes catalog activities across the days of a trip
type Allocator struct {
	catalog Catalog
	newID   func() string
}

// Option configures an Allocator
type Option func(*Allocator)

// WithIDGenerator replaces the uuid based itinerary id generator.
func WithIDGenerator(fn func() string) Option {
	return func(a *Allocator) {
		a.newID = fn
	}
}

// NewAllocator creates an allocator over the given catalog
func NewAllocator(catalog Catalog, opts ...Option) *Allocator {
	a := &Allocator{
		catalog: catalog,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Catalog returns the reference catalog the allocator draws from.
func (a *Allocator) Catalog() Catalog {
	return a.catalog
}

// Generate builds an itinerary for the preferences.
//
// Budget range and trip pace are accepted but do not influence allocation:
// every day receives the same share of the filtered catalog, capped at
// MaxActivitiesPerDay.
func (a *Allocator) Generate(prefs TripPreferences) (ItineraryData, error) {
	if errs := ValidatePreferences(prefs); len(errs) > 0 {
		return ItineraryData{}, &ValidationError{Fields: errs}
	}

	tripDuration, err := TripDuration(prefs.StartDate, prefs.EndDate)
	if err != nil {
		return ItineraryData{}, &ValidationError{Fields: FieldErrors{"endDate": err.Error()}}
	}

	available := a.catalog.Filter(prefs.Activities)
	perDay := activitiesPerDay(len(available), tripDuration)

	days := make([]DayItinerary, 0, tripDuration)
	for day := 1; day <= tripDuration; day++ {
		start := min((day-1)*perDay, len(available))
		end := min(day*perDay, len(available))

		activities := make([]Activity, 0, end-start)
		activities = append(activities, available[start:end]...)

		days = append(days, DayItinerary{
			Day:        day,
			Date:       prefs.StartDate.AddDate(0, 0, day-1),
			Activities: activities,
		})
	}

	it := ItineraryData{
		ID:           a.newID(),
		TripDuration: tripDuration,
		Preferences:  prefs,
		Days:         days,
	}
	it.TotalEstimatedCost = TotalCost(it.Days, prefs.TotalTravelers())

	return it.Clone(), nil
}

// activitiesPerDay spreads available activities evenly, rounding up.
func activitiesPerDay(available, days int) int {
	if available == 0 || days == 0 {
		return 0
	}
	return min(MaxActivitiesPerDay, (available+days-1)/days)
}

var defaultAllocator = NewAllocator(DefaultCatalog())

// GenerateItinerary allocates over the built-in catalog.
func GenerateItinerary(prefs TripPreferences) (ItineraryData, error) {
	return defaultAllocator.Generate(prefs)
}
