package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/careerportal/internal/app/models/dto"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	"github.com/yigit/careerportal/internal/pkg/logger"
)

// messageOr returns the caller-facing message carried by err, or fallback
func messageOr(err error, fallback string) string {
	if msg, ok := apperrors.PublicMessage(err); ok {
		return msg
	}
	return fallback
}

// HandleAPIError maps err to a status code and writes {"error": message}
func HandleAPIError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("Unhandled error")
	}
	c.JSON(status, dto.NewErrorResponse(message))
}

func statusFor(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthenticated, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, messageOr(err, "Not found")
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest, apperrors.ErrPayloadTooLarge):
		return http.StatusBadRequest, messageOr(err, "Bad request")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, messageOr(err, "Conflict")
	case errors.Is(err, apperrors.ErrTooManyRequests):
		return http.StatusTooManyRequests, "Too many requests"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
