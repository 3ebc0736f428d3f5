// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	dErrors "ninlookup/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a StatusCheckID where a VerificationID is expected.
type (
	VerificationID uuid.UUID
	StatusCheckID  uuid.UUID
)

// Reference is the shareable lookup reference handed back to callers (e.g. "NL-3F9A0C12B7DE").
// It is independent of the system ID so the ID never leaves the service.
type Reference string

const referencePrefix = "NL-"

var referencePattern = regexp.MustCompile(`^NL-[0-9A-F]{12}$`)

func NewVerificationID() VerificationID { return VerificationID(uuid.New()) }
func NewStatusCheckID() StatusCheckID   { return StatusCheckID(uuid.New()) }

// NewReference derives a fresh reference from random UUID bits.
func NewReference() Reference {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Reference(referencePrefix + strings.ToUpper(raw[:12]))
}

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseVerificationID(s string) (VerificationID, error) {
	id, err := parseUUID(s, "verification ID")
	return VerificationID(id), err
}

// ParseReference accepts references case-insensitively and returns the canonical form.
func ParseReference(s string) (Reference, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "reference cannot be empty")
	}
	if !referencePattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid reference format")
	}
	return Reference(s), nil
}

// String methods - for logging and debugging.

func (id VerificationID) String() string { return uuid.UUID(id).String() }
func (id StatusCheckID) String() string  { return uuid.UUID(id).String() }
func (r Reference) String() string       { return string(r) }

// IsNil checks - used for service-layer validation.

func (id VerificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id StatusCheckID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (r Reference) IsNil() bool       { return r == "" }

// parseUUID is the shared validation logic.
// Nil UUIDs are allowed here so store lookups can return proper "not found" errors.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
