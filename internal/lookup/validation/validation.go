// Package validation holds the submission checks that run before anything is persisted.
package validation

import (
	"strings"

	"ninlookup/internal/lookup/models"
	dErrors "ninlookup/pkg/domain-errors"
	"ninlookup/pkg/validation"
)

const (
	MsgConsentRequired = "Consent is required"
	MsgInvalidMethod   = "Invalid method"
)

var falsyConsent = map[string]struct{}{
	"":      {},
	"false": {},
	"0":     {},
	"off":   {},
	"no":    {},
}

// RequireConsent fails unless the form carries a truthy consent value.
func RequireConsent(form models.LookupForm) error {
	if _, falsy := falsyConsent[strings.ToLower(strings.TrimSpace(form.Consent))]; falsy {
		return dErrors.New(dErrors.CodeValidation, MsgConsentRequired)
	}
	return nil
}

// ResolveMethod returns the submitted method, defaulting to nin when none was given.
func ResolveMethod(form models.LookupForm) (models.Method, error) {
	if strings.TrimSpace(form.Method) == "" {
		return models.DefaultMethod, nil
	}
	m, ok := models.ParseMethod(form.Method)
	if !ok {
		return "", dErrors.New(dErrors.CodeValidation, MsgInvalidMethod)
	}
	return m, nil
}

// Every field is capped in length only. Format rules (NIN shape, email syntax) are a
// provider's call: the simulated adapters accept any value.
type payloadFields struct {
	NIN        string `form:"nin" validate:"max=128"`
	Phone      string `form:"phone" validate:"max=128"`
	Email      string `form:"email" validate:"max=128"`
	TrackingID string `form:"trackingId" validate:"max=128"`
	FirstName  string `form:"firstName" validate:"max=128"`
	LastName   string `form:"lastName" validate:"max=128"`
	DOB        string `form:"dob" validate:"max=128"`
}

// ValidateFields rejects oversized fields. Presence and format rules belong to the
// provider adapters.
func ValidateFields(p models.Payload) error {
	return validation.Validate(payloadFields{
		NIN:        p.Get(models.FieldNIN),
		Phone:      p.Get(models.FieldPhone),
		Email:      p.Get(models.FieldEmail),
		TrackingID: p.Get(models.FieldTrackingID),
		FirstName:  p.Get(models.FieldFirstName),
		LastName:   p.Get(models.FieldLastName),
		DOB:        p.Get(models.FieldDOB),
	})
}
