// Package testutil holds builders and helpers shared by tests across packages.
package testutil

import (
	"time"

	"ninlookup/internal/lookup/models"
	id "ninlookup/pkg/domain"
)

// RequestBuilder builds pending verification requests with sensible defaults.
type RequestBuilder struct {
	req models.VerificationRequest
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{req: models.VerificationRequest{
		ID:        id.NewVerificationID(),
		Ref:       id.NewReference(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UserAgent: "testutil",
		Method:    models.MethodNIN,
		Consent:   true,
		Input:     models.Payload{models.FieldNIN: "12345678901"},
		Provider:  "mock",
		Status:    models.StatusPending,
		Result:    map[string]any{},
	}}
}

func (b *RequestBuilder) WithRef(ref id.Reference) *RequestBuilder {
	b.req.Ref = ref
	return b
}

func (b *RequestBuilder) WithMethod(m models.Method) *RequestBuilder {
	b.req.Method = m
	return b
}

func (b *RequestBuilder) WithInput(p models.Payload) *RequestBuilder {
	b.req.Input = p.Clone()
	return b
}

func (b *RequestBuilder) WithProvider(name string) *RequestBuilder {
	b.req.Provider = name
	return b
}

func (b *RequestBuilder) WithClientIP(ip string) *RequestBuilder {
	b.req.ClientIP = ip
	return b
}

func (b *RequestBuilder) CreatedAt(t time.Time) *RequestBuilder {
	b.req.CreatedAt = t
	return b
}

// Build returns a fresh copy so one builder can produce several records.
func (b *RequestBuilder) Build() *models.VerificationRequest {
	out := b.req
	out.ID = id.NewVerificationID()
	if b.req.Ref.IsNil() {
		out.Ref = id.NewReference()
	}
	out.Input = b.req.Input.Clone()
	out.Result = map[string]any{}
	return &out
}
