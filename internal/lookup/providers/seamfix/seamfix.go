// Package seamfix simulates the Seamfix verification service.
package seamfix

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
)

const MsgEmailRequired = "Email is required for Seamfix flow"

type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return providers.NameSeamfix }

func (p *Provider) Lookup(_ context.Context, input models.Input) providers.Result {
	if input.Method == models.MethodEmail && !input.Payload.Has(models.FieldEmail) {
		return providers.LogicFailure(p.Name(), MsgEmailRequired)
	}

	data := providers.CannedPerson(input.Payload)
	data["status"] = models.StatusMatched
	if nin := input.Payload.Get(models.FieldNIN); nin != "" {
		data["vnin"] = virtualNIN(nin)
	}
	return providers.Success(data)
}

// virtualNIN derives a stable 16 character token from the NIN, the shape of an NIMC vNIN.
func virtualNIN(nin string) string {
	sum := sha256.Sum256([]byte(nin))
	return "VN" + strings.ToUpper(hex.EncodeToString(sum[:])[:14])
}
