// Package metamap simulates the MetaMap identity API. Answers carry a metadata envelope
// with a provider reference in the shape MetaMap webhooks use.
package metamap

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
	"ninlookup/pkg/requestcontext"
)

// IPENIN is the NIN that MetaMap reports as an in-progress enquiry.
const IPENIN = "11111111111"

const referencePrefix = "mm_"

type Provider struct {
	newReference func() string
}

type Option func(*Provider)

// WithReferenceGenerator overrides how provider references are minted.
func WithReferenceGenerator(gen func() string) Option {
	return func(p *Provider) { p.newReference = gen }
}

func New(opts ...Option) *Provider {
	p := &Provider{newReference: uuid.NewString}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return providers.NameMetaMap }

func (p *Provider) Lookup(ctx context.Context, input models.Input) providers.Result {
	data := providers.CannedPerson(input.Payload)
	data["status"] = models.StatusMatched
	if input.Payload.Get(models.FieldNIN) == IPENIN {
		data["status"] = models.StatusIPE
	}
	data["metadata"] = map[string]any{
		"provider":    providers.NameMetaMap,
		"providerRef": referencePrefix + p.newReference(),
		"verifiedAt":  requestcontext.Now(ctx).UTC().Format(time.RFC3339),
	}
	return providers.Success(data)
}
