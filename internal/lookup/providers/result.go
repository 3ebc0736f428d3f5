package providers

import (
	"encoding/json"

	"ninlookup/internal/lookup/models"
)

// Result is the normalized answer of a provider: either data or an error, never both.
// The zero value is not a valid result; build one with Success or Failure.
type Result struct {
	data map[string]any
	err  *ProviderError
}

// Success wraps provider data. A nil map is replaced with an empty one.
func Success(data map[string]any) Result {
	if data == nil {
		data = map[string]any{}
	}
	return Result{data: data}
}

// Failure wraps a provider error. A nil error becomes an internal failure so the
// result still carries exactly one side.
func Failure(err *ProviderError) Result {
	if err == nil {
		err = NewProviderError(ErrorInternal, "", "", nil)
	}
	return Result{err: err}
}

func (r Result) OK() bool { return r.err == nil }

// Data is nil for failures.
func (r Result) Data() map[string]any { return r.data }

// Err is nil for successes.
func (r Result) Err() *ProviderError { return r.err }

// ErrorMessage is the caller-facing failure message, or "" on success.
func (r Result) ErrorMessage() string {
	if r.err == nil {
		return ""
	}
	return r.err.Message
}

// Status is the status a successful result will be recorded with.
func (r Result) Status() string {
	return r.Outcome().Status
}

// Outcome applies the record merge rule to this result.
func (r Result) Outcome() models.Outcome {
	if r.OK() {
		return models.SuccessOutcome(r.data)
	}
	return models.FailureOutcome(r.err.Message)
}

type successJSON struct {
	OK   bool           `json:"ok"`
	Data map[string]any `json:"data"`
}

type failureJSON struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// MarshalJSON renders {"ok":true,"data":{...}} or {"ok":false,"error":"..."}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.OK() {
		data := r.data
		if data == nil {
			data = map[string]any{}
		}
		return json.Marshal(successJSON{OK: true, Data: data})
	}
	return json.Marshal(failureJSON{OK: false, Error: r.err.Message})
}
