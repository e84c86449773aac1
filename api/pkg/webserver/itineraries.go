package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

// ItineraryResponse is an itinerary snapshot with its undo state
type ItineraryResponse struct {
	Itinerary planner.ItineraryData `json:"itinerary"`
	CanUndo   bool                  `json:"can_undo"`
	History   int                   `json:"history_length"`
}

type AddActivityRequest struct {
	ActivityID string `json:"activity_id" binding:"required"`
}

type ReorderRequest struct {
	FromIndex *int `json:"from_index" binding:"required"`
	ToIndex   *int `json:"to_index" binding:"required"`
}

type MoveActivityRequest struct {
	ActivityID string `json:"activity_id" binding:"required"`
	FromDay    int    `json:"from_day" binding:"required"`
	ToDay      int    `json:"to_day" binding:"required"`
}

func snapshot(e *planner.Editor) ItineraryResponse {
	return ItineraryResponse{
		Itinerary: e.Current(),
		CanUndo:   e.CanUndo(),
		History:   e.HistoryLen(),
	}
}

// editItinerary runs fn on the editor of the :id itinerary and answers with
// the resulting snapshot.
func (s *Server) editItinerary(c *gin.Context, action, message string, fn func(e *planner.Editor) error) {
	id := c.Param("id")

	var resp ItineraryResponse
	err := s.workspace.Do(id, func(e *planner.Editor) error {
		if err := fn(e); err != nil {
			return err
		}
		resp = snapshot(e)
		return nil
	})
	if err != nil {
		s.respondError(c, err, "Itinerary not found", "Failed to update itinerary")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"itinerary_id": id,
		"action":       action,
		"can_undo":     resp.CanUndo,
	}).Debug("Itinerary edited")

	c.JSON(http.StatusOK, utils.NewSuccessResponse(resp, message))
}

func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		badRequest(c, "Invalid day number")
		return 0, false
	}
	return day, true
}

// openItinerary generates an itinerary and opens it for editing
func (s *Server) openItinerary(c *gin.Context) {
	it, ok := s.generate(c)
	if !ok {
		return
	}

	editor := s.workspace.Open(it)
	c.JSON(http.StatusCreated, utils.NewSuccessResponse(snapshot(editor), "Itinerary opened successfully"))
}

// getItinerary returns the current snapshot of an open itinerary
func (s *Server) getItinerary(c *gin.Context) {
	var resp ItineraryResponse
	err := s.workspace.Do(c.Param("id"), func(e *planner.Editor) error {
		resp = snapshot(e)
		return nil
	})
	if err != nil {
		s.respondError(c, err, "Itinerary not found", "Failed to get itinerary")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(resp, "Itinerary retrieved successfully"))
}

// closeItinerary drops the editor and its history
func (s *Server) closeItinerary(c *gin.Context) {
	if !s.workspace.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(planner.ErrItineraryNotFound.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Itinerary closed successfully"))
}

// addItineraryActivity schedules a catalog activity at the end of a day
func (s *Server) addItineraryActivity(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "activity_id is required")
		return
	}

	activity, found := s.allocator.Catalog().Find(req.ActivityID)
	if !found {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Activity not found in catalog"))
		return
	}

	s.editItinerary(c, "add", "Activity added successfully", func(e *planner.Editor) error {
		_, err := e.AddActivity(activity, day)
		return err
	})
}

// removeItineraryActivity removes an activity from a day
func (s *Server) removeItineraryActivity(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	activityID := c.Param("activity_id")

	s.editItinerary(c, "remove", "Activity removed successfully", func(e *planner.Editor) error {
		_, err := e.RemoveActivity(activityID, day)
		return err
	})
}

// reorderItineraryDay moves an activity to another position of the same day
func (s *Server) reorderItineraryDay(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "from_index and to_index are required")
		return
	}

	s.editItinerary(c, "reorder", "Day reordered successfully", func(e *planner.Editor) error {
		_, err := e.ReorderWithinDay(day, *req.FromIndex, *req.ToIndex)
		return err
	})
}

// moveItineraryActivity moves an activity to the end of another day
func (s *Server) moveItineraryActivity(c *gin.Context) {
	var req MoveActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "activity_id, from_day and to_day are required")
		return
	}

	s.editItinerary(c, "move", "Activity moved successfully", func(e *planner.Editor) error {
		_, err := e.MoveBetweenDays(req.ActivityID, req.FromDay, req.ToDay)
		return err
	})
}

// undoItinerary restores the previous snapshot. Undo without history is not
// an error; can_undo tells the client.
func (s *Server) undoItinerary(c *gin.Context) {
	undone := false
	s.editItinerary(c, "undo", "Undo applied", func(e *planner.Editor) error {
		_, undone = e.Undo()
		return nil
	})
	if undone {
		s.logger.WithField("itinerary_id", c.Param("id")).Debug("Itinerary undone")
	}
}

// getItineraryTimeline returns the day timelines of an itinerary
func (s *Server) getItineraryTimeline(c *gin.Context) {
	it, err := s.workspace.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err, "Itinerary not found", "Failed to get timeline")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(planner.Timeline(it), "Timeline retrieved successfully"))
}

// getItineraryMap returns the map pins of an itinerary
func (s *Server) getItineraryMap(c *gin.Context) {
	it, err := s.workspace.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err, "Itinerary not found", "Failed to get map")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(planner.MapPins(it), "Map retrieved successfully"))
}

// getItineraryGallery returns the scheduled activities with the visitor's
// bookmarks flagged
func (s *Server) getItineraryGallery(c *gin.Context) {
	it, err := s.workspace.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err, "Itinerary not found", "Failed to get gallery")
		return
	}

	state := s.loadPlanningState(c)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(planner.Gallery(it, state.Bookmarks), "Gallery retrieved successfully"))
}
