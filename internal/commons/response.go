// Package commons holds the HTTP response envelope shared by every
// controller.
package commons

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "couriertrack/internal/errors"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string                       `json:"code"`
	TraceID string                       `json:"traceId"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

// TraceID reuses the chi request id when the RequestID middleware ran.
func TraceID(r *http.Request) string {
	if id := chimw.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.New().String()
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}, logger *zap.Logger) {
	WriteJSON(w, status, Response{Success: true, Message: message, Data: data}, logger)
}

// WriteList adds the element count next to the data, like the list
// endpoints always did.
func WriteList(w http.ResponseWriter, message string, count int, data interface{}, logger *zap.Logger) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Message: message, Count: &count, Data: data}, logger)
}

func WriteValidationError(w http.ResponseWriter, traceID, message string, logger *zap.Logger, details ...apperrors.ValidationDetail) {
	WriteJSON(w, http.StatusBadRequest, Response{
		Message: message,
		Error:   &ErrorBody{Code: CodeValidation, TraceID: traceID, Details: details},
	}, logger)
}

// WriteError maps a service error to its HTTP status. Storage failures are
// logged with their cause and answered with a generic message.
func WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, traceID, ve.Message, logger, ve.Details...)
		return
	}

	status, code, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("traceId", traceID), zap.Error(err))
	}

	WriteJSON(w, status, Response{
		Message: message,
		Error:   &ErrorBody{Code: code, TraceID: traceID},
	}, logger)
}

func StatusFor(err error) (int, string, string) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		return http.StatusBadRequest, CodeValidation, ve.Message
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		return http.StatusNotFound, CodeNotFound, nfe.Message
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		return http.StatusConflict, CodeConflict, ce.Message
	}
	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		return http.StatusUnauthorized, CodeUnauthorized, ue.Message
	}
	if se, ok := apperrors.IsStorageError(err); ok {
		return http.StatusInternalServerError, CodeInternal, se.Message
	}
	return http.StatusInternalServerError, CodeInternal, "an unexpected error occurred"
}

// DecodeJSON reports a malformed body as a validation error on "body".
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
	return nil
}

// PathID parses a positive integer chi URL parameter.
func PathID(r *http.Request, param string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid "+param, apperrors.ValidationDetail{
			Field:   param,
			Message: param + " must be a positive integer",
		})
	}
	return uint(id), nil
}
