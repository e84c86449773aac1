package planner

import (
	"fmt"
)

// dayIndex finds the slice position of a day number.
func dayIndex(it ItineraryData, day int) (int, error) {
	for i, d := range it.Days {
		if d.Day == day {
			return i, nil
		}
	}
	return -1, fmt.Errorf("day %d: %w", day, ErrDayNotFound)
}

func activityIndex(activities []Activity, activityID string) int {
	for i, a := range activities {
		if a.ID == activityID {
			return i
		}
	}
	return -1
}

// scheduledDay returns the day holding the activity, or 0.
func scheduledDay(it ItineraryData, activityID string) int {
	for _, d := range it.Days {
		if activityIndex(d.Activities, activityID) >= 0 {
			return d.Day
		}
	}
	return 0
}

// finish recomputes the total so every snapshot keeps the cost invariant.
func finish(it ItineraryData) ItineraryData {
	it.TotalEstimatedCost = TotalCost(it.Days, it.Preferences.TotalTravelers())
	return it
}

// AddActivity appends the activity to the given day.
func AddActivity(it ItineraryData, activity Activity, day int) (ItineraryData, error) {
	idx, err := dayIndex(it, day)
	if err != nil {
		return it, err
	}
	if existing := scheduledDay(it, activity.ID); existing != 0 {
		return it, fmt.Errorf("activity %s on day %d: %w", activity.ID, existing, ErrActivityAlreadyScheduled)
	}

	next := it.Clone()
	next.Days[idx].Activities = append(next.Days[idx].Activities, activity)
	return finish(next), nil
}

// RemoveActivity removes the activity from the given day, leaving every
// other entry in place.
func RemoveActivity(it ItineraryData, activityID string, day int) (ItineraryData, error) {
	idx, err := dayIndex(it, day)
	if err != nil {
		return it, err
	}
	pos := activityIndex(it.Days[idx].Activities, activityID)
	if pos < 0 {
		return it, fmt.Errorf("activity %s on day %d: %w", activityID, day, ErrActivityNotFound)
	}

	next := it.Clone()
	acts := next.Days[idx].Activities
	next.Days[idx].Activities = append(acts[:pos], acts[pos+1:]...)
	return finish(next), nil
}

// ReorderWithinDay moves the activity at from to position to, shifting the
// activities in between. Equal indices return the itinerary unchanged.
func ReorderWithinDay(it ItineraryData, day, from, to int) (ItineraryData, error) {
	idx, err := dayIndex(it, day)
	if err != nil {
		return it, err
	}
	n := len(it.Days[idx].Activities)
	if from < 0 || from >= n || to < 0 || to >= n {
		return it, fmt.Errorf("move %d -> %d on day %d with %d activities: %w", from, to, day, n, ErrIndexOutOfRange)
	}
	if from == to {
		return it, nil
	}

	next := it.Clone()
	next.Days[idx].Activities = moveItem(next.Days[idx].Activities, from, to)
	return finish(next), nil
}

// MoveBetweenDays takes the activity off fromDay and appends it to toDay.
func MoveBetweenDays(it ItineraryData, activityID string, fromDay, toDay int) (ItineraryData, error) {
	src, err := dayIndex(it, fromDay)
	if err != nil {
		return it, err
	}
	dst, err := dayIndex(it, toDay)
	if err != nil {
		return it, err
	}
	pos := activityIndex(it.Days[src].Activities, activityID)
	if pos < 0 {
		return it, fmt.Errorf("activity %s on day %d: %w", activityID, fromDay, ErrActivityNotFound)
	}
	if src == dst {
		// same day drop keeps the list as is, the drag end has no target index
		return it, nil
	}

	next := it.Clone()
	activity := next.Days[src].Activities[pos]
	acts := next.Days[src].Activities
	next.Days[src].Activities = append(acts[:pos], acts[pos+1:]...)
	next.Days[dst].Activities = append(next.Days[dst].Activities, activity)
	return finish(next), nil
}

// moveItem is an in-place array move on an already copied slice.
func moveItem(items []Activity, from, to int) []Activity {
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
	return items
}
