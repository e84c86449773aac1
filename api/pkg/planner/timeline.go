package planner

import (
	"fmt"
)

const (
	// DayStartMinutes is 9:00 AM, when the first activity of a day begins
	DayStartMinutes = 9 * 60
	// TravelMinutes between consecutive activities
	TravelMinutes = 15
)

// TimeSlot is one scheduled activity on the day timeline
type TimeSlot struct {
	Index     int      `json:"index"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Activity  Activity `json:"activity"`
}

// DayTimeline is the timeline of a single day
type DayTimeline struct {
	Day          int        `json:"day"`
	Date         string     `json:"date"`
	Slots        []TimeSlot `json:"slots"`
	EndsAt       string     `json:"endsAt,omitempty"`
	TotalMinutes int        `json:"totalMinutes"`
	Duration     string     `json:"duration"`
}

// BuildTimeline lays activities out back to back from 9:00 AM with travel
// time between them.
func BuildTimeline(activities []Activity) []TimeSlot {
	slots := make([]TimeSlot, 0, len(activities))
	current := DayStartMinutes

	for i, a := range activities {
		end := current + a.Duration
		slots = append(slots, TimeSlot{
			Index:     i,
			StartTime: FormatClock(current),
			EndTime:   FormatClock(end),
			Activity:  a,
		})
		current = end
		if i < len(activities)-1 {
			current += TravelMinutes
		}
	}
	return slots
}

// Timeline builds the timeline for every day of the itinerary.
func Timeline(it ItineraryData) []DayTimeline {
	out := make([]DayTimeline, 0, len(it.Days))
	for _, d := range it.Days {
		slots := BuildTimeline(d.Activities)
		minutes := DayMinutes(d.Activities)
		dt := DayTimeline{
			Day:          d.Day,
			Date:         d.Date.Format("2006-01-02"),
			Slots:        slots,
			TotalMinutes: minutes,
			Duration:     FormatDuration(minutes),
		}
		if len(slots) > 0 {
			dt.EndsAt = slots[len(slots)-1].EndTime
		}
		out = append(out, dt)
	}
	return out
}

// FormatClock renders minutes after midnight as a 12-hour clock time.
func FormatClock(minutes int) string {
	minutes = ((minutes % (24 * 60)) + 24*60) % (24 * 60)
	hours := minutes / 60
	mins := minutes % 60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours
	switch {
	case hours == 0:
		display = 12
	case hours > 12:
		display = hours - 12
	}
	return fmt.Sprintf("%d:%02d %s", display, mins, period)
}
