package models

import "strings"

// Method is how the caller identifies the person being looked up.
type Method string

const (
	MethodPhone      Method = "phone"
	MethodEmail      Method = "email"
	MethodNIN        Method = "nin"
	MethodTrackingID Method = "tracking_id"
	MethodDemography Method = "demography"
)

// DefaultMethod is used when a submission names no method.
const DefaultMethod = MethodNIN

var methods = []Method{MethodPhone, MethodEmail, MethodNIN, MethodTrackingID, MethodDemography}

// Methods returns every supported lookup method.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

func (m Method) IsValid() bool {
	for _, known := range methods {
		if m == known {
			return true
		}
	}
	return false
}

func (m Method) String() string { return string(m) }

// ParseMethod matches s exactly against the enumeration after trimming whitespace.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.TrimSpace(s))
	return m, m.IsValid()
}
