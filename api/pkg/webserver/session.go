package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

const planningStateKey = "planning_state"

// SetViewRequest selects the view shown to the visitor
type SetViewRequest struct {
	View planner.ViewType `json:"view" binding:"required"`
}

// loadPlanningState hydrates the planning state from the session cookie.
// A missing or unreadable state starts over.
func (s *Server) loadPlanningState(c *gin.Context) *planner.PlanningState {
	state := planner.NewPlanningState()

	raw, ok := sessions.Default(c).Get(planningStateKey).(string)
	if !ok || raw == "" {
		return state
	}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		s.logger.WithError(err).Warn("Discarding unreadable planning state")
		return planner.NewPlanningState()
	}
	if state.FormErrors == nil {
		state.FormErrors = planner.FieldErrors{}
	}
	if state.Bookmarks == nil {
		state.Bookmarks = []string{}
	}
	return state
}

// savePlanningState writes the state back to the session cookie.
func (s *Server) savePlanningState(c *gin.Context, state *planner.PlanningState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	session := sessions.Default(c)
	session.Set(planningStateKey, string(raw))
	return session.Save()
}

func (s *Server) respondState(c *gin.Context, state *planner.PlanningState, message string) {
	if err := s.savePlanningState(c, state); err != nil {
		s.logger.WithError(err).Error("Failed to save planning state")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to save planning state"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(state, message))
}

// getSession returns the planning state of the visitor
func (s *Server) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse(s.loadPlanningState(c), "Planning state retrieved successfully"))
}

// updateSessionPreferences stores the draft preferences. Invalid drafts are
// kept, the field errors are returned alongside them.
func (s *Server) updateSessionPreferences(c *gin.Context) {
	var prefs planner.TripPreferences
	if !bindJSON(c, &prefs, "Invalid request data") {
		return
	}

	state := s.loadPlanningState(c)
	errs := state.SetPreferences(prefs)

	message := "Preferences saved successfully"
	if len(errs) > 0 {
		message = "Preferences saved with validation errors"
	}
	s.respondState(c, state, message)
}

// updateSessionView switches the current view
func (s *Server) updateSessionView(c *gin.Context) {
	var req SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "view is required")
		return
	}

	state := s.loadPlanningState(c)
	if err := state.SetView(req.View); err != nil {
		badRequest(c, err.Error())
		return
	}
	s.respondState(c, state, "View updated successfully")
}

// toggleBookmark flips the bookmark of an activity
func (s *Server) toggleBookmark(c *gin.Context) {
	activityID := c.Param("activity_id")
	if _, ok := s.allocator.Catalog().Find(activityID); !ok {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Activity not found"))
		return
	}

	state := s.loadPlanningState(c)
	state.ToggleBookmark(activityID)
	s.respondState(c, state, "Bookmarks updated successfully")
}

// clearSession resets the planning state
func (s *Server) clearSession(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		s.logger.WithError(err).Error("Failed to clear session")
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(planner.NewPlanningState(), "Planning state cleared"))
}
