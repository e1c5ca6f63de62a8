package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/domain"
	"tripwise/internal/logger"
	"tripwise/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code domain.ErrorCode, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: string(code), Message: msg},
	})
}

var codeStatus = map[domain.ErrorCode]int{
	domain.CodeUnauthenticated:  http.StatusUnauthorized,
	domain.CodeInvalidArgument:  http.StatusBadRequest,
	domain.CodePermissionDenied: http.StatusForbidden,
	domain.CodeNotFound:         http.StatusNotFound,
	domain.CodeInternal:         http.StatusInternalServerError,
}

// MapDomainError translates a service error to an HTTP status, error code and
// caller-safe message. Internal causes never reach the message.
func MapDomainError(err error) (status int, code domain.ErrorCode, msg string) {
	var callErr *domain.CallError
	if errors.As(err, &callErr) {
		status, ok := codeStatus[callErr.Code]
		if !ok {
			return http.StatusInternalServerError, domain.CodeInternal, "an internal error occurred"
		}
		return status, callErr.Code, callErr.Message
	}
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.CodeUnauthenticated, "authentication required"
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, domain.CodeInvalidArgument, "invalid argument"
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, domain.CodePermissionDenied, "permission denied"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.CodeNotFound, "resource not found"
	default:
		return http.StatusInternalServerError, domain.CodeInternal, "an internal error occurred"
	}
}

// HandleError maps a service error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.For(c.Request.Context(), "handler").Error().Err(err).Msg("internal error")
	}
	RespondError(c, status, code, msg)
}

// callerID extracts the caller ID from the request context.
// Returns false if it is missing (error response already written).
func callerID(c *gin.Context) (string, bool) {
	id, err := middleware.GetCallerID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, domain.CodeUnauthenticated, "authentication required")
		return "", false
	}
	return id, true
}
