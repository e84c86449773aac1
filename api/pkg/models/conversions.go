package models

import (
	"sort"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
)

// defaultDurationMinutes is assumed for attractions without a duration
const defaultDurationMinutes = 60

// ToActivity maps a stored attraction onto the planner's activity shape.
func (a Attraction) ToActivity() planner.Activity {
	images := append([]AttractionImage(nil), a.Images...)
	sort.SliceStable(images, func(i, j int) bool { return images[i].SortOrder < images[j].SortOrder })

	urls := make([]string, 0, len(images))
	alts := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
		alts = append(alts, img.AltText)
	}

	duration := a.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}

	tips := []string(a.VisitorTips)
	if tips == nil {
		tips = []string{}
	}

	return planner.Activity{
		ID:          a.ID,
		Title:       a.Name,
		Description: a.Description,
		Category:    planner.ActivityType(a.Category),
		Location: planner.Location{
			Name:        a.LocationName,
			Address:     a.Address,
			Coordinates: planner.Coordinates{Lat: a.Latitude, Lng: a.Longitude},
			Prefecture:  a.Prefecture,
			City:        a.City,
		},
		Duration:             duration,
		Images:               urls,
		Rating:               a.Rating,
		Price:                a.Price,
		Tips:                 tips,
		CulturalSignificance: a.CulturalSignificance,
		HistoricalContext:    a.HistoricalContext,
		AccessibilityInfo:    a.AccessibilityInfo,
		ImageAltTexts:        alts,
		BestVisitSeasons:     []string(a.SeasonalInfo),
	}
}

// AttractionFromActivity builds the seed row for a catalog activity.
func AttractionFromActivity(act planner.Activity, popularity int) Attraction {
	images := make([]AttractionImage, 0, len(act.Images))
	for i, url := range act.Images {
		img := AttractionImage{AttractionID: act.ID, URL: url, SortOrder: i}
		if i < len(act.ImageAltTexts) {
			img.AltText = act.ImageAltTexts[i]
		}
		images = append(images, img)
	}

	return Attraction{
		ID:                   act.ID,
		Name:                 act.Title,
		Description:          act.Description,
		Category:             string(act.Category),
		LocationName:         act.Location.Name,
		Prefecture:           act.Location.Prefecture,
		City:                 act.Location.City,
		Latitude:             act.Location.Coordinates.Lat,
		Longitude:            act.Location.Coordinates.Lng,
		Address:              act.Location.Address,
		DurationMinutes:      act.Duration,
		Price:                act.Price,
		CulturalSignificance: act.CulturalSignificance,
		HistoricalContext:    act.HistoricalContext,
		AccessibilityInfo:    act.AccessibilityInfo,
		VisitorTips:          act.Tips,
		SeasonalInfo:         act.BestVisitSeasons,
		Rating:               act.Rating,
		PopularityScore:      popularity,
		Images:               images,
	}
}

// SeedAttractions converts the catalog, giving earlier entries a higher
// popularity so popularity order reproduces catalog order.
func SeedAttractions(catalog planner.Catalog) []Attraction {
	out := make([]Attraction, 0, len(catalog))
	for i, act := range catalog {
		out = append(out, AttractionFromActivity(act, (len(catalog)-i)*10))
	}
	return out
}

// TripActivitiesFromItinerary lays an itinerary snapshot out as trip
// activity rows, with start times taken from the day timeline.
func TripActivitiesFromItinerary(tripID string, it planner.ItineraryData) []TripActivity {
	out := make([]TripActivity, 0, it.ActivityCount())
	for _, day := range it.Days {
		for i, slot := range planner.BuildTimeline(day.Activities) {
			out = append(out, TripActivity{
				TripID:            tripID,
				AttractionID:      slot.Activity.ID,
				DayNumber:         day.Day,
				SortOrder:         i,
				StartTime:         slot.StartTime,
				EstimatedDuration: slot.Activity.Duration,
				Status:            ActivityPlanned,
				CustomName:        slot.Activity.Title,
			})
		}
	}
	return out
}

// PlannerPreferences rebuilds the planning preferences a trip was created from.
func (t Trip) PlannerPreferences() planner.TripPreferences {
	set := t.Preferences.Data()

	activities := make([]planner.ActivityType, 0, len(set.Activities))
	for _, a := range set.Activities {
		activities = append(activities, planner.ActivityType(a))
	}

	return planner.TripPreferences{
		StartDate:          t.StartDate.Time,
		EndDate:            t.EndDate.Time,
		Adults:             t.Adults,
		Children:           t.Children,
		Infants:            t.Infants,
		Activities:         activities,
		BudgetRange:        planner.BudgetRange(t.BudgetRange),
		TripPace:           planner.TripPace(t.TripPace),
		AccessibilityNeeds: set.AccessibilityNeeds,
	}
}
