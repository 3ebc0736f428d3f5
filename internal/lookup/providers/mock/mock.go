// Package mock is the default provider: it answers every lookup with a canned identity.
package mock

import (
	"context"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
)

// IPENIN is the NIN that makes the mock answer with an in-progress enquiry.
const IPENIN = "00000000000"

type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return providers.NameMock }

func (p *Provider) Lookup(_ context.Context, input models.Input) providers.Result {
	data := providers.CannedPerson(input.Payload)
	data["method"] = input.Method.String()
	data["status"] = models.StatusMatched
	if input.Payload.Get(models.FieldNIN) == IPENIN {
		data["status"] = models.StatusIPE
	}
	return providers.Success(data)
}
