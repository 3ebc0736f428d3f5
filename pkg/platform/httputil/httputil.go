package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "ninlookup/pkg/domain-errors"
)

// ErrorResponse is the body of every error answer: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError translates an error into {"error": message}.
//
// Domain codes with a definite HTTP meaning (not found, validation, provider rejection)
// pick their own status; everything else, including errors that carry no domain code,
// is answered with fallback. Uncoded errors never leak their text.
func WriteError(w http.ResponseWriter, err error, fallback int) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code, fallback), ErrorResponse{Error: domainErr.Error()})
		return
	}
	WriteJSON(w, fallback, ErrorResponse{Error: http.StatusText(fallback)})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code, fallback int) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeProviderRejected:
		return http.StatusBadRequest
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return fallback
	}
}
