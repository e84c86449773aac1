package planner

import (
	"fmt"
)

// ViewType enum
type ViewType string

const (
	ViewPreferences ViewType = "preferences"
	ViewItinerary   ViewType = "itinerary"
	ViewGallery     ViewType = "gallery"
	ViewMap         ViewType = "map"
	ViewTimeline    ViewType = "timeline"
)

func (v ViewType) Valid() bool {
	switch v {
	case ViewPreferences, ViewItinerary, ViewGallery, ViewMap, ViewTimeline:
		return true
	}
	return false
}

// PlanningState is the per-visitor planning state: the form draft, its
// field errors, bookmarks and the view being shown. It is hydrated from the
// session at the start of a request and written back after every change.
type PlanningState struct {
	Preferences *TripPreferences `json:"preferences,omitempty"`
	FormErrors  FieldErrors      `json:"formErrors"`
	Bookmarks   []string         `json:"bookmarks"`
	CurrentView ViewType         `json:"currentView"`
}

// NewPlanningState returns the state of a first visit.
func NewPlanningState() *PlanningState {
	return &PlanningState{
		FormErrors:  FieldErrors{},
		Bookmarks:   []string{},
		CurrentView: ViewPreferences,
	}
}

// SetPreferences stores the draft and re-validates it.
func (s *PlanningState) SetPreferences(p TripPreferences) FieldErrors {
	s.Preferences = &p
	s.FormErrors = ValidatePreferences(p)
	return s.FormErrors
}

// IsValid reports whether the stored draft can be submitted.
func (s *PlanningState) IsValid() bool {
	return s.Preferences != nil && len(s.FormErrors) == 0
}

// SetView switches the current view.
func (s *PlanningState) SetView(v ViewType) error {
	if !v.Valid() {
		return fmt.Errorf("unknown view %q", v)
	}
	s.CurrentView = v
	return nil
}

// ToggleBookmark flips the bookmark and returns the new bookmarked state.
func (s *PlanningState) ToggleBookmark(activityID string) bool {
	for i, id := range s.Bookmarks {
		if id == activityID {
			s.Bookmarks = append(s.Bookmarks[:i:i], s.Bookmarks[i+1:]...)
			return false
		}
	}
	s.Bookmarks = append(s.Bookmarks, activityID)
	return true
}

// IsBookmarked reports whether the activity is bookmarked.
func (s *PlanningState) IsBookmarked(activityID string) bool {
	for _, id := range s.Bookmarks {
		if id == activityID {
			return true
		}
	}
	return false
}
