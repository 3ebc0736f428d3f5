package providers

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for provider errors.
type ErrorCategory string

const (
	// ErrorLogic is a provider business rule rejecting the input (e.g. missing email for seamfix).
	ErrorLogic ErrorCategory = "logic"

	// ErrorConfiguration means the adapter is missing something it needs, such as a credential.
	ErrorConfiguration ErrorCategory = "configuration"

	// ErrorUpstream is a non-2xx answer from a real provider.
	ErrorUpstream ErrorCategory = "upstream"

	// ErrorProviderOutage means the provider could not be reached.
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorTimeout indicates the provider took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the provider returned invalid/malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorUnsupported means the adapter does not handle the requested method.
	ErrorUnsupported ErrorCategory = "unsupported"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

const defaultFailureMessage = "Lookup failed"

// ProviderError is a categorized provider failure. Message is what the caller sees and
// what is persisted on the record; Underlying is for logs only.
type ProviderError struct {
	Category   ErrorCategory
	Provider   string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.Provider, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.Provider, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError builds a categorized error. An empty message becomes "Lookup failed".
func NewProviderError(category ErrorCategory, provider, message string, underlying error) *ProviderError {
	if message == "" {
		message = defaultFailureMessage
	}
	return &ProviderError{
		Category:   category,
		Provider:   provider,
		Message:    message,
		Underlying: underlying,
	}
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// LogicFailure is shorthand for a business rule rejection.
func LogicFailure(provider, message string) Result {
	return Failure(NewProviderError(ErrorLogic, provider, message, nil))
}
