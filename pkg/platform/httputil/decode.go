package httputil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	dErrors "ninlookup/pkg/domain-errors"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeForm decodes a url-encoded request body into the target type using its `form` tags.
// Returns the decoded value and true on success.
// On failure, writes a 400 (or 413 for oversized bodies) and returns nil, false.
//
// Usage:
//
//	form, ok := httputil.DecodeForm[models.LookupForm](w, r, h.logger, ctx, requestID)
//	if !ok {
//	    return
//	}
func DecodeForm[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "failed to parse request form",
			"error", err,
			"request_id", requestID,
		)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
			return nil, false
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid form body"), http.StatusBadRequest)
		return nil, false
	}

	var req T
	if err := formDecoder.Decode(&req, r.PostForm); err != nil {
		logger.WarnContext(ctx, "failed to decode request form",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid form body"), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// Validatable is implemented by request types that support validation.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request types that support normalization.
type Normalizable interface {
	Normalize()
}

// Sanitizable is implemented by request types that support sanitization.
type Sanitizable interface {
	Sanitize()
}

// PrepareRequest sanitizes, normalizes, and validates a request.
func PrepareRequest(req any) error {
	if s, ok := req.(Sanitizable); ok {
		s.Sanitize()
	}
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := req.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

// DecodeAndPrepare combines form decoding with request preparation.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, ok := DecodeForm[T](w, r, logger, ctx, requestID)
	if !ok {
		return nil, false
	}

	if err := PrepareRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid request",
			"error", err,
			"request_id", requestID,
		)
		var domainErr *dErrors.Error
		if errors.As(err, &domainErr) {
			WriteError(w, err, http.StatusBadRequest)
		} else {
			WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()), http.StatusBadRequest)
		}
		return nil, false
	}

	return req, true
}
