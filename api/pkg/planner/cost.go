package planner

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TripDuration returns the number of itinerary days between start and end,
// rounding partial days up. Identical dates yield a one day trip.
func TripDuration(start, end time.Time) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, fmt.Errorf("trip dates are required")
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date %s precedes start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	// Unix seconds instead of end.Sub, which saturates after ~292 years
	secs := end.Unix() - start.Unix()
	days := secs / secondsPerDay
	if rem := secs % secondsPerDay; rem > 0 || (rem == 0 && end.Nanosecond() > start.Nanosecond()) {
		days++
	}
	if days < 1 {
		days = 1
	}
	return int(days), nil
}

// TotalCost prices every scheduled activity for the whole party.
func TotalCost(days []DayItinerary, travelers int) float64 {
	total := 0.0
	for _, day := range days {
		for _, activity := range day.Activities {
			total += activity.Price * float64(travelers)
		}
	}
	return total
}

// DayMinutes is the time a day takes, including travel between activities.
func DayMinutes(activities []Activity) int {
	total := 0
	for i, a := range activities {
		total += a.Duration
		if i < len(activities)-1 {
			total += TravelMinutes
		}
	}
	return total
}

// FormatDuration renders minutes as "45 min", "2h" or "2h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}
