// Package service orchestrates a lookup: validate, persist pending, dispatch, complete once.
package service

import (
	"context"
	"errors"
	"log/slog"

	"ninlookup/internal/lookup/metrics"
	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
	"ninlookup/internal/lookup/validation"
	"ninlookup/internal/platform/privacy"
	id "ninlookup/pkg/domain"
	dErrors "ninlookup/pkg/domain-errors"
	"ninlookup/pkg/platform/sentinel"
	pv "ninlookup/pkg/platform/validation"
	"ninlookup/pkg/requestcontext"
)

// Store persists verification requests.
// Error Contract:
// - FindByRef returns sentinel.ErrNotFound when no record exists
// - Complete returns sentinel.ErrNotFound or sentinel.ErrInvalidState when the transition is refused
type Store interface {
	Create(ctx context.Context, r *models.VerificationRequest) error
	Complete(ctx context.Context, vid id.VerificationID, o models.Outcome) (*models.VerificationRequest, error)
	FindByRef(ctx context.Context, ref id.Reference) (*models.VerificationRequest, error)
	ListRecent(ctx context.Context, limit int) ([]*models.VerificationRequest, error)
	RecordStatusCheck(ctx context.Context, c *models.StatusCheck) error
}

// StatusCache holds completed records by reference. Get returns sentinel.ErrNotFound on a miss.
type StatusCache interface {
	Get(ctx context.Context, ref id.Reference) (*models.VerificationRequest, error)
	Put(ctx context.Context, r *models.VerificationRequest) error
}

type Dispatcher interface {
	Provider() string
	Lookup(ctx context.Context, input models.Input) providers.Result
}

type EventPublisher interface {
	Publish(ctx context.Context, e models.LookupCompleted) error
}

// Caller-facing messages for failures that are not provider or validation errors.
const (
	MsgNotFound      = "Not found"
	MsgPersistFailed = "Failed to record lookup"
	MsgStatusFailed  = "Failed to load lookup status"
	MsgListFailed    = "Failed to list lookups"
)

// SubmitResult is a completed lookup together with the provider's answer.
type SubmitResult struct {
	Record *models.VerificationRequest
	Result providers.Result
}

type Service struct {
	store      Store
	dispatcher Dispatcher
	cache      StatusCache
	events     EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

type Option func(*Service)

// WithStatusCache enables read-through caching of completed records.
func WithStatusCache(c StatusCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, dispatcher Dispatcher, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	svc := &Service{store: store, dispatcher: dispatcher, logger: logger}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Submit runs one lookup end to end. A provider failure is recorded on the request and
// returned as a CodeProviderRejected error carrying the provider's message.
// The form is expected to be sanitized by the transport layer.
func (s *Service) Submit(ctx context.Context, form models.LookupForm) (*SubmitResult, error) {
	if err := validation.RequireConsent(form); err != nil {
		return nil, err
	}
	method, err := validation.ResolveMethod(form)
	if err != nil {
		return nil, err
	}
	payload := form.Payload()
	if err := validation.ValidateFields(payload); err != nil {
		return nil, err
	}

	rec, err := models.NewVerificationRequest(
		id.NewVerificationID(),
		id.NewReference(),
		method,
		payload,
		s.dispatcher.Provider(),
		requestcontext.ClientIP(ctx),
		requestcontext.UserAgent(ctx),
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MsgPersistFailed)
	}
	if err := s.store.Create(ctx, rec); err != nil {
		s.logger.ErrorContext(ctx, "failed to create verification request",
			"ref", rec.Ref.String(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MsgPersistFailed)
	}

	result := s.dispatcher.Lookup(ctx, models.Input{Method: method, Payload: payload})

	completed, err := s.store.Complete(ctx, rec.ID, result.Outcome())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to complete verification request",
			"ref", rec.Ref.String(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MsgPersistFailed)
	}

	s.cacheRecord(ctx, completed)
	s.publishCompleted(ctx, completed)

	s.logger.InfoContext(ctx, "lookup completed",
		"ref", completed.Ref.String(),
		"provider", completed.Provider,
		"method", completed.Method.String(),
		"status", completed.Status,
		"client_ip", privacy.AnonymizeIP(completed.ClientIP),
		"client", privacy.DescribeUserAgent(completed.UserAgent),
		"request_id", requestcontext.RequestID(ctx),
	)

	if !result.OK() {
		return nil, dErrors.Wrap(result.Err(), dErrors.CodeProviderRejected, result.ErrorMessage())
	}
	return &SubmitResult{Record: completed, Result: result}, nil
}

// Status answers from the cache when possible, otherwise from the store. Every query,
// found or not, is recorded as a status check.
func (s *Service) Status(ctx context.Context, rawRef string) (*models.VerificationRequest, error) {
	ref, err := id.ParseReference(rawRef)
	if err != nil {
		// A malformed reference cannot exist, so it answers like an unknown one.
		return nil, dErrors.New(dErrors.CodeNotFound, MsgNotFound)
	}

	rec, err := s.lookupStatus(ctx, ref)
	found := err == nil
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.ErrorContext(ctx, "failed to load verification request",
			"ref", ref.String(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MsgStatusFailed)
	}

	check := &models.StatusCheck{
		ID:        id.NewStatusCheckID(),
		Ref:       ref,
		CheckedAt: requestcontext.Now(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		Found:     found,
	}
	if cerr := s.store.RecordStatusCheck(ctx, check); cerr != nil {
		s.logger.WarnContext(ctx, "failed to record status check",
			"ref", ref.String(),
			"error", cerr,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	if !found {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, MsgNotFound)
	}
	return rec, nil
}

func (s *Service) lookupStatus(ctx context.Context, ref id.Reference) (*models.VerificationRequest, error) {
	if s.cache != nil {
		rec, err := s.cache.Get(ctx, ref)
		switch {
		case err == nil:
			s.recordCache(true)
			return rec, nil
		case errors.Is(err, sentinel.ErrNotFound):
			s.recordCache(false)
		default:
			s.logger.WarnContext(ctx, "status cache read failed", "ref", ref.String(), "error", err)
		}
	}
	rec, err := s.store.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	s.cacheRecord(ctx, rec)
	return rec, nil
}

// ListRecent returns the newest requests first, capped at the admin listing size.
func (s *Service) ListRecent(ctx context.Context) ([]*models.VerificationRequest, error) {
	recs, err := s.store.ListRecent(ctx, pv.RecentRequestsLimit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list verification requests",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MsgListFailed)
	}
	if recs == nil {
		recs = []*models.VerificationRequest{}
	}
	return recs, nil
}

func (s *Service) cacheRecord(ctx context.Context, rec *models.VerificationRequest) {
	if s.cache == nil || rec.IsPending() {
		return
	}
	if err := s.cache.Put(ctx, rec); err != nil {
		s.logger.WarnContext(ctx, "status cache write failed", "ref", rec.Ref.String(), "error", err)
	}
}

func (s *Service) recordCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.RecordCacheHit()
	} else {
		s.metrics.RecordCacheMiss()
	}
}

// publishCompleted is best effort: a broker failure never fails the lookup.
func (s *Service) publishCompleted(ctx context.Context, rec *models.VerificationRequest) {
	if s.events == nil {
		return
	}
	event := models.LookupCompleted{
		Ref:        rec.Ref.String(),
		Provider:   rec.Provider,
		Method:     rec.Method.String(),
		Status:     rec.Status,
		Failed:     rec.Error != "",
		RequestID:  requestcontext.RequestID(ctx),
		OccurredAt: requestcontext.Now(ctx),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		if s.metrics != nil {
			s.metrics.RecordEventPublishFailure()
		}
		s.logger.WarnContext(ctx, "failed to publish lookup event",
			"ref", event.Ref,
			"error", err,
			"request_id", event.RequestID,
		)
	}
}
