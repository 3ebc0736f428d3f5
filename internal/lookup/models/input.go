package models

import (
	"strings"

	s "ninlookup/pkg/string"
)

// Payload field names as they arrive on the form and are stored.
const (
	FieldNIN        = "nin"
	FieldPhone      = "phone"
	FieldEmail      = "email"
	FieldTrackingID = "trackingId"
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldDOB        = "dob"
)

// Payload carries the method-specific identifiers of a lookup. Absent fields are not present as keys.
type Payload map[string]string

// Get returns the trimmed value for key, or "" when absent.
func (p Payload) Get(key string) string {
	return strings.TrimSpace(p[key])
}

// Has reports whether key is present with a non-blank value.
func (p Payload) Has(key string) bool {
	return p.Get(key) != ""
}

// Clone returns an independent copy.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Input is what a provider adapter receives. Method is always valid by the time it gets here.
type Input struct {
	Method  Method
	Payload Payload
}

// LookupForm is the url-encoded submission body.
type LookupForm struct {
	Method     string `form:"method"`
	Consent    string `form:"consent"`
	NIN        string `form:"nin"`
	Phone      string `form:"phone"`
	Email      string `form:"email"`
	TrackingID string `form:"trackingId"`
	FirstName  string `form:"firstName"`
	LastName   string `form:"lastName"`
	DOB        string `form:"dob"`
}

// Sanitize trims whitespace from every field.
func (f *LookupForm) Sanitize() {
	s.TrimStrings(&f.Method, &f.Consent, &f.NIN, &f.Phone, &f.Email, &f.TrackingID, &f.FirstName, &f.LastName, &f.DOB)
}

// Payload returns the identifying fields that were supplied. Method and consent are not part of it.
func (f LookupForm) Payload() Payload {
	p := Payload{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			p[key] = value
		}
	}
	set(FieldNIN, f.NIN)
	set(FieldPhone, f.Phone)
	set(FieldEmail, f.Email)
	set(FieldTrackingID, f.TrackingID)
	set(FieldFirstName, f.FirstName)
	set(FieldLastName, f.LastName)
	set(FieldDOB, f.DOB)
	return p
}
