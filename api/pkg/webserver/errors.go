package webserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

// respondError maps domain and storage errors onto the response envelope.
// Unexpected errors are logged and answered with failure as the message.
func (s *Server) respondError(c *gin.Context, err error, notFound, failure string) {
	var ve *planner.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, utils.NewValidationErrorResponse("Validation failed", ve.Fields))
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(notFound))
	case errors.Is(err, planner.ErrItineraryNotFound),
		errors.Is(err, planner.ErrDayNotFound),
		errors.Is(err, planner.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(err.Error()))
	case errors.Is(err, planner.ErrActivityAlreadyScheduled):
		c.JSON(http.StatusConflict, utils.NewErrorResponse(err.Error()))
	case errors.Is(err, planner.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.WithError(err).Debug("Request cancelled")
		c.JSON(http.StatusServiceUnavailable, utils.NewErrorResponse("Request cancelled"))
	default:
		s.logger.WithError(err).WithField("path", c.FullPath()).Error(failure)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(failure))
	}
}

// badRequest answers a malformed request body or parameter
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, utils.NewErrorResponse(message))
}

// bindJSON decodes the request body into dst. Field errors raised while
// decoding (such as an impossible date) are answered as a validation
// failure, anything else with message.
func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var ve *planner.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, utils.NewValidationErrorResponse("Validation failed", ve.Fields))
		return false
	}
	badRequest(c, message)
	return false
}
