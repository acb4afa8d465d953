package http

import (
	"errors"
	"net/http"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps domain errors to a stable code and HTTP status.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		return "empty_selection", http.StatusNotFound
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found", http.StatusNotFound
	case errors.Is(err, domain.ErrNoSelection):
		return "no_selection", http.StatusConflict
	case errors.Is(err, domain.ErrSessionCompleted):
		return "session_completed", http.StatusConflict
	case errors.Is(err, domain.ErrSessionNotStarted):
		return "session_not_started", http.StatusConflict
	case errors.Is(err, domain.ErrOptionOutOfRange):
		return "option_out_of_range", http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidPayload):
		return "invalid_payload", http.StatusBadRequest
	case errors.Is(err, domain.ErrDataUnavailable):
		return "data_unavailable", http.StatusServiceUnavailable
	default:
		return "internal", http.StatusInternalServerError
	}
}

func toErrorPayload(err error) errorPayload {
	code, _ := classify(err)
	return errorPayload{Code: code, Message: err.Error()}
}
