package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")
	api.Use(s.userMiddleware())
	{
		trips := api.Group("/trips")
		{
			trips.GET("", s.getTrips)
			trips.POST("", s.createTrip)
			trips.GET("/stats", s.getTripStats)
			trips.POST("/generate", s.generateItinerary)
			trips.GET("/:id", s.getTrip)
			trips.PUT("/:id", s.updateTrip)
			trips.DELETE("/:id", s.deleteTrip)
			trips.GET("/:id/activities", s.getTripActivities)
			trips.PUT("/:id/itinerary", s.saveTripItinerary)
		}

		attractions := api.Group("/attractions")
		{
			attractions.GET("", s.getAttractions)
			attractions.GET("/search", s.searchAttractions)
			attractions.GET("/:id", s.getAttraction)
		}

		api.GET("/catalog", s.getCatalog)

		itineraries := api.Group("/itineraries")
		{
			itineraries.POST("", s.openItinerary)
			itineraries.GET("/:id", s.getItinerary)
			itineraries.DELETE("/:id", s.closeItinerary)
			itineraries.POST("/:id/days/:day/activities", s.addItineraryActivity)
			itineraries.DELETE("/:id/days/:day/activities/:activity_id", s.removeItineraryActivity)
			itineraries.PUT("/:id/days/:day/order", s.reorderItineraryDay)
			itineraries.POST("/:id/move", s.moveItineraryActivity)
			itineraries.POST("/:id/undo", s.undoItinerary)
			itineraries.GET("/:id/timeline", s.getItineraryTimeline)
			itineraries.GET("/:id/map", s.getItineraryMap)
			itineraries.GET("/:id/gallery", s.getItineraryGallery)
		}

		session := api.Group("/session")
		{
			session.GET("", s.getSession)
			session.PUT("/preferences", s.updateSessionPreferences)
			session.PUT("/view", s.updateSessionView)
			session.POST("/bookmarks/:activity_id", s.toggleBookmark)
			session.DELETE("", s.clearSession)
		}

		users := api.Group("/users")
		{
			users.GET("/me", s.getCurrentUser)
			users.PUT("/me", s.updateCurrentUser)
		}
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Route not found"))
	})
}
