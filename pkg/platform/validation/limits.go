package validation

import (
	"fmt"

	dErrors "ninlookup/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	MaxBodySize = 64 * 1024
)

// String element length limits
const (
	// MaxFieldLength is the maximum length of any single lookup form field.
	MaxFieldLength = 128
)

// List limits
const (
	// RecentRequestsLimit is how many requests the admin listing returns.
	RecentRequestsLimit = 50
)

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
