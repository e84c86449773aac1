package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

// GenerateRequest carries the preferences an itinerary is generated from.
// Without preferences the draft stored in the planning session is used.
type GenerateRequest struct {
	Preferences *planner.TripPreferences `json:"preferences"`
}

// SaveItineraryRequest names the open itinerary to store in a trip
type SaveItineraryRequest struct {
	ItineraryID string `json:"itinerary_id" binding:"required"`
}

// getTrips returns all trips of the current user, newest first
func (s *Server) getTrips(c *gin.Context) {
	trips, err := s.backend.Trips().GetUserTrips(c.Request.Context(), s.currentUserID(c))
	if err != nil {
		s.respondError(c, err, "Trips not found", "Failed to get trips")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(trips, "Trips retrieved successfully"))
}

// createTrip creates a draft trip from the submitted preferences
func (s *Server) createTrip(c *gin.Context) {
	var req store.CreateTripRequest
	if !bindJSON(c, &req, "Invalid request data") {
		return
	}

	req.Title = s.validator.SanitizeInput(req.Title)
	req.Description = s.validator.SanitizeInput(req.Description)

	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, utils.NewValidationErrorResponse("Validation failed", errs))
		return
	}

	userID := s.currentUserID(c)
	trip, err := s.backend.Trips().CreateTrip(c.Request.Context(), userID, req)
	if err != nil {
		s.respondError(c, err, "Trip not found", "Failed to create trip")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"trip_id": trip.ID,
		"title":   trip.Title,
	}).Info("Trip created")

	c.JSON(http.StatusCreated, utils.NewSuccessResponse(trip, "Trip created successfully"))
}

// getTrip returns a trip of the current user
func (s *Server) getTrip(c *gin.Context) {
	trip, err := s.backend.Trips().GetTripByID(c.Request.Context(), c.Param("id"), s.currentUserID(c))
	if err != nil {
		s.respondError(c, err, "Trip not found", "Failed to get trip")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(trip, "Trip retrieved successfully"))
}

// updateTrip applies a partial update
func (s *Server) updateTrip(c *gin.Context) {
	var update store.TripUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "Invalid request data")
		return
	}

	if update.Title != nil {
		title := s.validator.SanitizeInput(*update.Title)
		update.Title = &title
	}
	if update.Description != nil {
		description := s.validator.SanitizeInput(*update.Description)
		update.Description = &description
	}

	if errs := update.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, utils.NewValidationErrorResponse("Validation failed", errs))
		return
	}

	trip, err := s.backend.Trips().UpdateTrip(c.Request.Context(), c.Param("id"), s.currentUserID(c), update)
	if err != nil {
		s.respondError(c, err, "Trip not found", "Failed to update trip")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(trip, "Trip updated successfully"))
}

// deleteTrip deletes a trip and its saved activities
func (s *Server) deleteTrip(c *gin.Context) {
	userID := s.currentUserID(c)
	tripID := c.Param("id")

	if err := s.backend.Trips().DeleteTrip(c.Request.Context(), tripID, userID); err != nil {
		s.respondError(c, err, "Trip not found", "Failed to delete trip")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"trip_id": tripID,
	}).Info("Trip deleted")

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Trip deleted successfully"))
}

// getTripActivities returns the saved schedule of a trip
func (s *Server) getTripActivities(c *gin.Context) {
	activities, err := s.backend.Trips().GetTripActivities(c.Request.Context(), c.Param("id"), s.currentUserID(c))
	if err != nil {
		s.respondError(c, err, "Trip not found", "Failed to get trip activities")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(activities, "Trip activities retrieved successfully"))
}

// saveTripItinerary stores the current snapshot of an open itinerary as the
// trip's schedule
func (s *Server) saveTripItinerary(c *gin.Context) {
	var req SaveItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "itinerary_id is required")
		return
	}

	it, err := s.workspace.Get(req.ItineraryID)
	if err != nil {
		s.respondError(c, err, "Itinerary not found", "Failed to load itinerary")
		return
	}

	activities, err := s.backend.Trips().SaveItinerary(c.Request.Context(), c.Param("id"), s.currentUserID(c), it)
	if err != nil {
		s.respondError(c, err, "Trip not found", "Failed to save itinerary")
		return
	}

	s.logger.LogItinerary(it.ID, "saved", len(it.Days), len(activities), it.TotalEstimatedCost)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(activities, "Itinerary saved successfully"))
}

// getTripStats summarises the trips of the current user
func (s *Server) getTripStats(c *gin.Context) {
	trips, err := s.backend.Trips().GetUserTrips(c.Request.Context(), s.currentUserID(c))
	if err != nil {
		s.respondError(c, err, "Trips not found", "Failed to get trip stats")
		return
	}

	stats := store.SummarizeTrips(trips, time.Now().UTC())
	c.JSON(http.StatusOK, utils.NewSuccessResponse(stats, "Trip stats retrieved successfully"))
}

// generateItinerary allocates an itinerary without opening it for editing
func (s *Server) generateItinerary(c *gin.Context) {
	it, ok := s.generate(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(it, "Itinerary generated successfully"))
}

// generate reads the preferences of the request, waits out the configured
// generation delay and runs the allocator. It writes the error response
// itself and reports whether the caller should continue.
func (s *Server) generate(c *gin.Context) (planner.ItineraryData, bool) {
	var req GenerateRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req, "Invalid request data") {
			return planner.ItineraryData{}, false
		}
	}

	prefs := req.Preferences
	if prefs == nil {
		prefs = s.loadPlanningState(c).Preferences
	}
	if prefs == nil {
		badRequest(c, "Trip preferences are required")
		return planner.ItineraryData{}, false
	}

	if err := s.generationDelay(c.Request.Context()); err != nil {
		s.respondError(c, err, "", "Failed to generate itinerary")
		return planner.ItineraryData{}, false
	}

	it, err := s.allocator.Generate(*prefs)
	if err != nil {
		s.respondError(c, err, "", "Failed to generate itinerary")
		return planner.ItineraryData{}, false
	}

	s.logger.LogItinerary(it.ID, "generated", len(it.Days), it.ActivityCount(), it.TotalEstimatedCost)
	return it, true
}

// generationDelay waits the configured time unless ctx ends first.
func (s *Server) generationDelay(ctx context.Context) error {
	delay := time.Duration(s.config.Planner.GenerationDelayMS) * time.Millisecond
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
