package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slok/hiretrack/internal/model"
)

// Error codes of the error envelope.
const (
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeValidation = "validation_error"
	codeInternal   = "internal_error"
)

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorEnvelope `json:"error"`
}

// badRequestError marks client errors that don't come from the domain,
// like malformed bodies.
type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps the error to an HTTP status and writes the error envelope.
// Unknown errors are hidden behind a generic message.
func writeError(w http.ResponseWriter, err error) {
	status, env := errorToEnvelope(err)
	writeJSON(w, status, errorResponse{Error: env})
}

func errorToEnvelope(err error) (int, errorEnvelope) {
	var bre badRequestError
	switch {
	case errors.As(err, &bre):
		return http.StatusBadRequest, errorEnvelope{Code: codeBadRequest, Message: err.Error()}
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, errorEnvelope{Code: codeNotFound, Message: err.Error()}
	case errors.Is(err, model.ErrNotValid):
		return http.StatusUnprocessableEntity, errorEnvelope{Code: codeValidation, Message: err.Error()}
	case errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict, errorEnvelope{Code: codeConflict, Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorEnvelope{Code: codeInternal, Message: "internal error"}
	}
}
