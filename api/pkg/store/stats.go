package store

import (
	"time"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/models"
)

// TripStats summarises the trips of one user
type TripStats struct {
	TotalTrips       int            `json:"total_trips"`
	StatusBreakdown  map[string]int `json:"status_breakdown"`
	UpcomingTrips    int            `json:"upcoming_trips"`
	PastTrips        int            `json:"past_trips"`
	TotalTravelDays  int            `json:"total_travel_days"`
	AverageGroupSize float64        `json:"average_group_size"`
	TopActivities    map[string]int `json:"top_activities"`
	NextTrip         *models.Trip   `json:"next_trip,omitempty"`
}

// SummarizeTrips computes the statistics of trips as of now. A trip is
// upcoming until its end date has passed; travel days count both ends.
func SummarizeTrips(trips []models.Trip, now time.Time) TripStats {
	stats := TripStats{
		TotalTrips:      len(trips),
		StatusBreakdown: map[string]int{},
		TopActivities:   map[string]int{},
	}
	today := models.NewDate(now)

	travellers := 0
	for i := range trips {
		t := trips[i]
		stats.StatusBreakdown[string(t.Status)]++
		travellers += t.GroupSize

		if !t.StartDate.IsZero() && !t.EndDate.Before(t.StartDate.Time) {
			stats.TotalTravelDays += int(t.EndDate.Sub(t.StartDate.Time).Hours()/24) + 1
		}

		if t.EndDate.Before(today.Time) {
			stats.PastTrips++
		} else {
			stats.UpcomingTrips++
			if !t.StartDate.Before(today.Time) && (stats.NextTrip == nil || t.StartDate.Before(stats.NextTrip.StartDate.Time)) {
				stats.NextTrip = &trips[i]
			}
		}

		for _, a := range t.Preferences.Data().Activities {
			stats.TopActivities[a]++
		}
	}

	if len(trips) > 0 {
		stats.AverageGroupSize = float64(travellers) / float64(len(trips))
	}
	return stats
}
