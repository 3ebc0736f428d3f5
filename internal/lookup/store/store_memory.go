package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"ninlookup/internal/lookup/models"
	id "ninlookup/pkg/domain"
	"ninlookup/pkg/platform/sentinel"
	"ninlookup/pkg/requestcontext"
)

// InMemoryStore keeps records in process. Used for development and tests, and when no
// database is configured.
type InMemoryStore struct {
	mu     sync.RWMutex
	byID   map[id.VerificationID]*models.VerificationRequest
	byRef  map[id.Reference]id.VerificationID
	checks []models.StatusCheck
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:  make(map[id.VerificationID]*models.VerificationRequest),
		byRef: make(map[id.Reference]id.VerificationID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, r *models.VerificationRequest) error {
	if r == nil {
		return fmt.Errorf("verification request is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[r.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byRef[r.Ref]; exists {
		return sentinel.ErrConflict
	}
	s.byID[r.ID] = cloneRecord(r)
	s.byRef[r.Ref] = r.ID
	return nil
}

func (s *InMemoryStore) Complete(ctx context.Context, vid id.VerificationID, o models.Outcome) (*models.VerificationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[vid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := rec.Complete(o, requestcontext.Now(ctx)); err != nil {
		if errors.Is(err, models.ErrNotPending) {
			return nil, sentinel.ErrInvalidState
		}
		return nil, fmt.Errorf("complete verification request: %w", err)
	}
	return cloneRecord(rec), nil
}

func (s *InMemoryStore) FindByRef(_ context.Context, ref id.Reference) (*models.VerificationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vid, ok := s.byRef[ref]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRecord(s.byID[vid]), nil
}

// ListRecent returns up to limit records, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]*models.VerificationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*models.VerificationRequest, 0, len(s.byID))
	for _, rec := range s.byID {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].Ref > all[j].Ref
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]*models.VerificationRequest, len(all))
	for i, rec := range all {
		out[i] = cloneRecord(rec)
	}
	return out, nil
}

func (s *InMemoryStore) RecordStatusCheck(_ context.Context, c *models.StatusCheck) error {
	if c == nil {
		return fmt.Errorf("status check is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, *c)
	return nil
}

// StatusChecks returns the recorded status checks in insertion order.
func (s *InMemoryStore) StatusChecks() []models.StatusCheck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StatusCheck, len(s.checks))
	copy(out, s.checks)
	return out
}
