// Package handler exposes lookups over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/service"
	dErrors "ninlookup/pkg/domain-errors"
	"ninlookup/pkg/platform/httputil"
	"ninlookup/pkg/requestcontext"
)

type Service interface {
	Submit(ctx context.Context, form models.LookupForm) (*service.SubmitResult, error)
	Status(ctx context.Context, ref string) (*models.VerificationRequest, error)
	ListRecent(ctx context.Context) ([]*models.VerificationRequest, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/lookup", h.HandleSubmit)
	r.Get("/api/lookup/{ref}/status", h.HandleStatus)
}

// RegisterAdmin mounts the operator listing.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/api/admin/requests", h.HandleListRecent)
}

// HandleSubmit implements POST /api/lookup (form encoded).
// Every failure, including a provider rejection, answers 400 with the caller-facing message.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	form, ok := httputil.DecodeAndPrepare[models.LookupForm](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Submit(ctx, *form)
	if err != nil {
		h.logger.WarnContext(ctx, "lookup rejected",
			"error", err,
			"code", dErrors.CodeOf(err),
			"request_id", requestID,
		)
		httputil.WriteError(w, err, http.StatusBadRequest)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSubmitResponse(res))
}

// HandleStatus implements GET /api/lookup/{ref}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.service.Status(ctx, chi.URLParam(r, "ref"))
	if err != nil {
		httputil.WriteError(w, err, http.StatusInternalServerError)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dataEnvelope{Data: toStatusResponse(rec)})
}

// HandleListRecent implements GET /api/admin/requests.
func (h *Handler) HandleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recs, err := h.service.ListRecent(ctx)
	if err != nil {
		httputil.WriteError(w, err, http.StatusBadRequest)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dataEnvelope{Data: toSummaries(recs)})
}
