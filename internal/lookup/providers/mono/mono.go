// Package mono simulates the Mono identity lookup API.
package mono

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
)

const (
	MsgInvalidPhone = "Invalid phone number"

	// MinPhoneLength is the shortest phone number Mono accepts.
	MinPhoneLength = 8

	sessionPrefix = "MONO-"
)

type Provider struct {
	newSession func() string
}

func New() *Provider {
	return &Provider{newSession: generateSession}
}

func (p *Provider) Name() string { return providers.NameMono }

func (p *Provider) Lookup(_ context.Context, input models.Input) providers.Result {
	if input.Method == models.MethodPhone {
		if utf8.RuneCountInString(input.Payload.Get(models.FieldPhone)) < MinPhoneLength {
			return providers.LogicFailure(p.Name(), MsgInvalidPhone)
		}
	}

	session := input.Payload.Get(models.FieldTrackingID)
	if session == "" {
		session = p.newSession()
	}

	data := providers.CannedPerson(input.Payload)
	data["status"] = models.StatusMatched
	data["sessionReference"] = session
	return providers.Success(data)
}

func generateSession() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return sessionPrefix + strings.ToUpper(raw[:16])
}
