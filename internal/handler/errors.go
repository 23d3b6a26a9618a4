package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/service"
	"github.com/colective/fleet-backend-go/pkg/response"
)

// writeServiceError maps a service error category to an HTTP response.
// Anything outside the taxonomy is a store failure: logged for operators,
// generic message to the caller.
func writeServiceError(c *gin.Context, err error) {
	var invalid *service.InvalidInputError
	var conflict *service.ConflictError

	switch {
	case errors.As(err, &invalid):
		response.BadRequest(c, invalid.Error())
	case errors.As(err, &conflict):
		response.Conflict(c, conflict.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "not found")
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, "invalid credentials or token")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "role not authorized")
	default:
		log.Printf("[%s] %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.InternalError(c)
	}
}
