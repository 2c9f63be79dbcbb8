package store

import (
	"sync"

	"github.com/communitynav/navigator/models"
)

// ProfileState is a read-only snapshot of the profile container.
type ProfileState struct {
	Location           string
	Latitude           *float64
	Longitude          *float64
	Needs              []string
	EligibilityInfo    map[string]any
	AccessibilityNeeds []string
}

// ProfileStore holds the session-scoped user context: location, needs,
// eligibility and accessibility tags. Everything starts empty and lives
// only in memory.
type ProfileStore struct {
	mu            sync.RWMutex
	location      string
	latitude      *float64
	longitude     *float64
	needs         []string
	eligibility   map[string]any
	accessibility []string
}

// NewProfileStore returns an empty container.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

// State returns a deep-copied snapshot.
func (s *ProfileStore) State() ProfileState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ProfileState{
		Location:           s.location,
		Latitude:           copyFloat(s.latitude),
		Longitude:          copyFloat(s.longitude),
		Needs:              append([]string(nil), s.needs...),
		EligibilityInfo:    copyMap(s.eligibility),
		AccessibilityNeeds: append([]string(nil), s.accessibility...),
	}
}

// Context renders the profile in wire form, carrying only fields that
// hold a value.
func (s *ProfileStore) Context() models.UserContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var uc models.UserContext
	if s.location != "" {
		loc := s.location
		uc.Location = &loc
	}
	uc.Latitude = copyFloat(s.latitude)
	uc.Longitude = copyFloat(s.longitude)
	if len(s.needs) > 0 {
		uc.Needs = append([]string(nil), s.needs...)
	}
	if len(s.eligibility) > 0 {
		uc.EligibilityInfo = copyMap(s.eligibility)
	}
	if len(s.accessibility) > 0 {
		uc.AccessibilityNeeds = append([]string(nil), s.accessibility...)
	}
	return uc
}

// Update merges a partial context: nil fields are left alone, non-nil
// fields overwrite even with zero/empty values.
func (s *ProfileStore) Update(u models.ContextUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Location != nil {
		s.location = *u.Location
	}
	if u.Latitude != nil {
		v := *u.Latitude
		s.latitude = &v
	}
	if u.Longitude != nil {
		v := *u.Longitude
		s.longitude = &v
	}
	if u.Needs != nil {
		s.needs = append([]string(nil), (*u.Needs)...)
	}
	if u.EligibilityInfo != nil {
		s.eligibility = copyMap(*u.EligibilityInfo)
	}
	if u.AccessibilityNeeds != nil {
		s.accessibility = append([]string(nil), (*u.AccessibilityNeeds)...)
	}
}

// SetLocation replaces the free-text location label.
func (s *ProfileStore) SetLocation(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = location
}

// SetCoordinates replaces both coordinates.
func (s *ProfileStore) SetCoordinates(latitude, longitude float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latitude = &latitude
	s.longitude = &longitude
}

// ClearCoordinates drops both coordinates.
func (s *ProfileStore) ClearCoordinates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latitude = nil
	s.longitude = nil
}

// SetNeeds replaces the need tags.
func (s *ProfileStore) SetNeeds(needs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.needs = append([]string(nil), needs...)
}

// ToggleNeed adds or removes one need tag and returns the new set.
func (s *ProfileStore) ToggleNeed(need string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.needs = toggle(s.needs, need)
	return append([]string(nil), s.needs...)
}

// SetEligibilityField sets one eligibility attribute.
func (s *ProfileStore) SetEligibilityField(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eligibility == nil {
		s.eligibility = make(map[string]any)
	}
	s.eligibility[key] = value
}

// SetEligibilityInfo replaces the eligibility map.
func (s *ProfileStore) SetEligibilityInfo(info map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eligibility = copyMap(info)
}

// SetAccessibilityNeeds replaces the accessibility tags.
func (s *ProfileStore) SetAccessibilityNeeds(needs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessibility = append([]string(nil), needs...)
}

// ToggleAccessibilityNeed adds or removes one accessibility tag and
// returns the new set.
func (s *ProfileStore) ToggleAccessibilityNeed(need string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessibility = toggle(s.accessibility, need)
	return append([]string(nil), s.accessibility...)
}

func toggle(set []string, item string) []string {
	for i, v := range set {
		if v == item {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, item)
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
