package store

import (
	"sync"

	"github.com/communitynav/navigator/models"
)

// ResourceStore holds the current resource list, the selection, and the
// browser view's loading/error slots.
//
// List mutations go through request tokens: Begin hands out a
// monotonically increasing token per fetch and Complete discards any
// response whose token is no longer the latest issued, so two racing
// fetches cannot leave a superseded result on screen. Selection is
// independent of the list; a refresh does not re-select.
type ResourceStore struct {
	mu        sync.RWMutex
	resources []models.Resource
	selected  *models.Resource
	loading   bool
	lastErr   string
	lastToken uint64
}

// NewResourceStore returns an empty container.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{}
}

// Begin registers a new list fetch and returns its token.
func (s *ResourceStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastToken++
	return s.lastToken
}

// Complete replaces the list wholesale if token is still the latest
// issued; stale completions are dropped and it returns false.
func (s *ResourceStore) Complete(token uint64, resources []models.Resource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.lastToken {
		return false
	}
	s.resources = append([]models.Resource(nil), resources...)
	return true
}

// SetResources replaces the list unconditionally.
func (s *ResourceStore) SetResources(resources []models.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = append([]models.Resource(nil), resources...)
}

// Resources returns a copy of the current list.
func (s *ResourceStore) Resources() []models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// Select records the current selection; nil clears it.
func (s *ResourceStore) Select(r *models.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == nil {
		s.selected = nil
		return
	}
	copied := *r
	s.selected = &copied
}

// Selected returns the current selection, nil when none.
func (s *ResourceStore) Selected() *models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	copied := *s.selected
	return &copied
}

// Clear empties the list and drops the selection.
func (s *ResourceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = nil
	s.selected = nil
}

// SetLoading flips the view's loading flag.
func (s *ResourceStore) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Loading reports the loading flag.
func (s *ResourceStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError stores the last error display string; empty clears it.
func (s *ResourceStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// Err returns the last error display string, empty when none.
func (s *ResourceStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
