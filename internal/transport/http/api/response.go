package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

// FailError maps a service error onto a status and error code.
func FailError(w http.ResponseWriter, err error, requestID string) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, Envelope{
			Error:     &Error{Code: apperr.Code(err), Message: verr.Error(), Field: verr.Field},
			RequestID: requestID,
		})
	case apperr.IsNotFound(err):
		Fail(w, http.StatusNotFound, apperr.Code(err), err.Error(), requestID)
	case apperr.IsDuplicate(err):
		Fail(w, http.StatusConflict, apperr.Code(err), err.Error(), requestID)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		Fail(w, http.StatusUnauthorized, "unauthorized", err.Error(), requestID)
	case errors.Is(err, auth.ErrForbidden):
		Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	default:
		slog.Error("request failed", "err", err, "requestId", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

// Decode reads a JSON body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("body", "required")
		}
		return apperr.Validation("body", "invalid json")
	}
	return nil
}
