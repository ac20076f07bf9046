package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/service"
	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

// Request body errors
var (
	ErrTextNotString  = errors.New("email text must be a string")
	ErrBodyUnreadable = errors.New("could not read request body")
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// It provides consistent error handling across all handlers.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, service.ErrTextMissing):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "No text provided",
		}
	case errors.Is(err, service.ErrEmptyInput):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "EMPTY_INPUT",
			Message:    "Email text cannot be empty",
		}
	case errors.Is(err, ErrTextNotString):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "Email text must be a string",
		}
	case errors.Is(err, ErrBodyUnreadable):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "Could not read request body",
		}
	case errors.Is(err, service.ErrInferenceFailure):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INFERENCE_FAILURE",
			Message:    "Prediction failed: " + err.Error(),
		}
	case errors.Is(err, usecase.ErrHistoryDisabled):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       "UNAVAILABLE",
			Message:    "prediction history is not configured",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError sends a usecase error in the standard envelope
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandlePredictionError sends a usecase error as a flat {"error": ...} body
func HandlePredictionError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondPlainError(c, errResp.StatusCode, errResp.Message)
}
