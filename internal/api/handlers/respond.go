package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"academic_records/internal/service"
	"academic_records/internal/validation"
)

// bindPayload decodes a JSON object, keeping track of which keys were sent.
// An empty body is an empty object.
func bindPayload(c *gin.Context) (map[string]interface{}, error) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, nil
		}
		return nil, service.ErrMalformedBody
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, nil
}

// idParam parses :id; a non-numeric id cannot match any record
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, service.ErrNotFound
	}
	return uint(id), nil
}

// respondError maps service outcomes to status codes and bodies
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  verr.Fields(),
		})
	case errors.Is(err, service.ErrMalformedBody):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Malformed JSON body"})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid login details"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	}
}
