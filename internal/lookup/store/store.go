// Package store persists verification requests and status checks.
//
// Every implementation enforces the one-shot completion: Complete moves a pending record
// to its terminal state once and answers sentinel.ErrInvalidState afterwards.
package store

import (
	"ninlookup/internal/lookup/models"
)

func cloneRecord(r *models.VerificationRequest) *models.VerificationRequest {
	if r == nil {
		return nil
	}
	out := *r
	out.Input = r.Input.Clone()
	out.Result = make(map[string]any, len(r.Result))
	for k, v := range r.Result {
		out.Result[k] = v
	}
	if r.CompletedAt != nil {
		completed := *r.CompletedAt
		out.CompletedAt = &completed
	}
	return &out
}
