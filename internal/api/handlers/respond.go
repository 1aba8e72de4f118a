package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/panchito04/BackHogEle/internal/repository"
	"github.com/panchito04/BackHogEle/internal/service"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// verboseErrors controls whether upstream error details reach the
// client; enabled outside production.
var verboseErrors = true

// SetVerboseErrors toggles detailed 500 messages.
func SetVerboseErrors(v bool) {
	verboseErrors = v
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// respondError maps the service error taxonomy onto status codes:
// validation and conflict 400, not-found 404, auth 401, the rest 500.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: validationErr.Message})
		return
	}

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: conflictErr.Message,
			Details: gin.H{"current_state": conflictErr.CurrentState},
		})
		return
	}

	var authErr *service.AuthError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Message: authErr.Message})
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Message: err.Error()})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
	message := "internal server error"
	if verboseErrors {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: message})
}

// pathID parses the numeric id path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid id"})
		return 0, false
	}
	return uint(id), true
}
