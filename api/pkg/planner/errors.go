package planner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Referential errors returned by itinerary mutations
var (
	ErrDayNotFound              = errors.New("day not found in itinerary")
	ErrActivityNotFound         = errors.New("activity not found in day")
	ErrActivityAlreadyScheduled = errors.New("activity already scheduled")
	ErrIndexOutOfRange          = errors.New("activity index out of range")
)

// FieldErrors maps a preferences field to a human readable message
type FieldErrors map[string]string

// ValidationError rejects trip preferences before allocation
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid trip preferences: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err carries field level validation errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidatePreferences checks the preferences a form collaborator must enforce
// before allocation. An empty map means the preferences are valid.
func ValidatePreferences(p TripPreferences) FieldErrors {
	errs := FieldErrors{}

	if p.StartDate.IsZero() {
		errs["startDate"] = "Start date is required"
	}
	if p.EndDate.IsZero() {
		errs["endDate"] = "End date is required"
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() {
		if p.EndDate.Before(p.StartDate) {
			errs["endDate"] = "End date must not be before start date"
		} else if days, err := TripDuration(p.StartDate, p.EndDate); err == nil && days > MaxTripDays {
			errs["endDate"] = fmt.Sprintf("Trips can last at most %d days", MaxTripDays)
		}
	}

	if p.Adults < 1 {
		errs["adults"] = "At least one adult is required"
	}
	if p.Children < 0 {
		errs["children"] = "Children cannot be negative"
	}
	if p.Infants < 0 {
		errs["infants"] = "Infants cannot be negative"
	}

	if len(p.Activities) == 0 {
		errs["activities"] = "Please select at least one activity"
	}
	for _, a := range p.Activities {
		if !a.Valid() {
			errs["activities"] = fmt.Sprintf("Unknown activity category %q", a)
			break
		}
	}

	if p.BudgetRange != "" && !p.BudgetRange.Valid() {
		errs["budgetRange"] = fmt.Sprintf("Unknown budget range %q", p.BudgetRange)
	}
	if p.TripPace != "" && !p.TripPace.Valid() {
		errs["tripPace"] = fmt.Sprintf("Unknown trip pace %q", p.TripPace)
	}

	return errs
}

// dateLayouts accepted by ParseDate, most specific first
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats the planning form sends.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
