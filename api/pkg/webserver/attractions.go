package webserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

const maxSearchLimit = 100

// getAttractions lists attractions, most popular first. Query parameters:
// categories (comma separated), prefecture, budgetRange, page and limit.
func (s *Server) getAttractions(c *gin.Context) {
	filter := store.AttractionFilter{
		Prefecture:  s.validator.SanitizeInput(c.Query("prefecture")),
		BudgetRange: planner.BudgetRange(c.Query("budgetRange")),
	}
	for _, category := range utils.SplitCSV(c.Query("categories")) {
		filter.Categories = append(filter.Categories, planner.ActivityType(category))
	}

	if err := filter.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	attractions, err := s.backend.Attractions().GetAttractions(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err, "Attractions not found", "Failed to get attractions")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	pagination := utils.NewPagination(page, limit, len(attractions))

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(utils.Paginate(attractions, pagination), pagination, "Attractions retrieved successfully"))
}

// searchAttractions matches q against name, description and location
func (s *Server) searchAttractions(c *gin.Context) {
	query := s.validator.SanitizeInput(c.Query("q"))
	if query == "" {
		badRequest(c, "Search query is required")
		return
	}

	limit := store.DefaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive number")
			return
		}
		limit = min(n, maxSearchLimit)
	}

	attractions, err := s.backend.Attractions().SearchAttractions(c.Request.Context(), query, limit)
	if err != nil {
		s.respondError(c, err, "Attractions not found", "Failed to search attractions")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(attractions, "Search completed successfully"))
}

// getAttraction returns a single attraction with its images
func (s *Server) getAttraction(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	attraction, err := s.backend.Attractions().GetAttractionByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err, "Attraction not found", "Failed to get attraction")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(attraction, "Attraction retrieved successfully"))
}

// getCatalog returns the activity catalog the itinerary allocator draws from,
// grouped by category
func (s *Server) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse(s.allocator.Catalog().ByCategory(), "Catalog retrieved successfully"))
}
