package models

import (
	"errors"
	"time"

	id "ninlookup/pkg/domain"
)

// Record statuses. Successful lookups may carry any status their provider reports
// ("matched", "ipe", ...); these are the ones the service itself assigns.
const (
	StatusPending = "pending"
	StatusMatched = "matched"
	StatusIPE     = "ipe"
	StatusError   = "error"
)

var (
	ErrMissingID       = errors.New("verification id is required")
	ErrMissingRef      = errors.New("reference is required")
	ErrInvalidMethod   = errors.New("method is not supported")
	ErrMissingProvider = errors.New("provider is required")
	ErrNotPending      = errors.New("verification request already completed")
	ErrEmptyStatus     = errors.New("outcome status is required")
)

// VerificationRequest is one lookup attempt. It is created pending and completed exactly once.
type VerificationRequest struct {
	ID          id.VerificationID
	Ref         id.Reference
	CreatedAt   time.Time
	ClientIP    string
	UserAgent   string
	Method      Method
	Consent     bool
	Input       Payload
	Provider    string
	Status      string
	Result      map[string]any
	Error       string
	CompletedAt *time.Time
}

// NewVerificationRequest builds a pending record. Consent is recorded as given; callers
// only construct records after consent has been validated.
func NewVerificationRequest(
	vid id.VerificationID,
	ref id.Reference,
	method Method,
	input Payload,
	provider string,
	clientIP, userAgent string,
	now time.Time,
) (*VerificationRequest, error) {
	if vid.IsNil() {
		return nil, ErrMissingID
	}
	if ref.IsNil() {
		return nil, ErrMissingRef
	}
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	if provider == "" {
		return nil, ErrMissingProvider
	}
	if input == nil {
		input = Payload{}
	}
	return &VerificationRequest{
		ID:        vid,
		Ref:       ref,
		CreatedAt: now,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Method:    method,
		Consent:   true,
		Input:     input.Clone(),
		Provider:  provider,
		Status:    StatusPending,
		Result:    map[string]any{},
	}, nil
}

func (r *VerificationRequest) IsPending() bool {
	return r.Status == StatusPending
}

// Complete applies the terminal outcome. A record can only be completed once.
func (r *VerificationRequest) Complete(o Outcome, now time.Time) error {
	if !r.IsPending() {
		return ErrNotPending
	}
	if o.Status == "" {
		return ErrEmptyStatus
	}
	r.Status = o.Status
	r.Result = o.Result
	if r.Result == nil {
		r.Result = map[string]any{}
	}
	r.Error = o.Error
	completed := now
	r.CompletedAt = &completed
	return nil
}

// Outcome is the terminal state merged into a record once its provider answers.
type Outcome struct {
	Status string
	Result map[string]any
	Error  string
}

// Failed reports whether the outcome records a provider failure.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// SuccessOutcome takes the status from data["status"] when it is a non-empty string,
// otherwise "matched". The data becomes the stored result and the error is cleared.
func SuccessOutcome(data map[string]any) Outcome {
	status := StatusMatched
	if s, ok := data["status"].(string); ok && s != "" {
		status = s
	}
	if data == nil {
		data = map[string]any{}
	}
	return Outcome{Status: status, Result: data}
}

// FailureOutcome always records status "error" with an empty result.
func FailureOutcome(message string) Outcome {
	return Outcome{Status: StatusError, Result: map[string]any{}, Error: message}
}

// StatusCheck records one status query against a reference.
type StatusCheck struct {
	ID        id.StatusCheckID
	Ref       id.Reference
	CheckedAt time.Time
	ClientIP  string
	Found     bool
}

// LookupCompleted is published after a record reaches its terminal state.
// It deliberately carries no identity values.
type LookupCompleted struct {
	Ref        string    `json:"ref"`
	Provider   string    `json:"provider"`
	Method     string    `json:"method"`
	Status     string    `json:"status"`
	Failed     bool      `json:"failed"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
