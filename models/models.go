// Package models holds the records shared between the service modules,
// the state containers and the views. They are plain data carriers; the
// backend is the authority on their contents.
package models

import "time"

// MessageState tracks the lifecycle of a chat entry on the client side.
// A message is created pending, becomes fulfilled once the agent reply
// lands, or is marked failed and rolled back when the send errors out.
type MessageState string

const (
	MessagePending   MessageState = "pending"
	MessageFulfilled MessageState = "fulfilled"
	MessageFailed    MessageState = "failed"
)

// ChatMessage is one user/agent exchange. The ID is client-generated
// (unix millis) for optimistic entries and server-assigned for entries
// loaded from history.
type ChatMessage struct {
	ID            int64        `json:"id"`
	UserMessage   string       `json:"user_message"`
	AgentResponse string       `json:"agent_response"`
	ToolsUsed     []string     `json:"tools_used"`
	Timestamp     string       `json:"timestamp"`
	State         MessageState `json:"-"`
}

// Pending reports whether the agent reply has not arrived yet.
func (m ChatMessage) Pending() bool { return m.State == MessagePending }

// UserContext is the wire form of the profile sent along with a chat
// message. Absent fields are omitted so the backend treats them as unset.
type UserContext struct {
	Location           *string        `json:"location,omitempty"`
	Latitude           *float64       `json:"latitude,omitempty"`
	Longitude          *float64       `json:"longitude,omitempty"`
	Needs              []string       `json:"needs,omitempty"`
	EligibilityInfo    map[string]any `json:"eligibility_info,omitempty"`
	AccessibilityNeeds []string       `json:"accessibility_needs,omitempty"`
}

// Empty reports whether no context field carries a value.
func (c UserContext) Empty() bool {
	return c.Location == nil && c.Latitude == nil && c.Longitude == nil &&
		len(c.Needs) == 0 && len(c.EligibilityInfo) == 0 && len(c.AccessibilityNeeds) == 0
}

// ContextUpdate is a partial profile update. Nil means "leave the field
// alone"; a non-nil pointer overwrites, even with a zero or empty value.
// This keeps "not provided" distinct from "explicitly cleared".
type ContextUpdate struct {
	Location           *string
	Latitude           *float64
	Longitude          *float64
	Needs              *[]string
	EligibilityInfo    *map[string]any
	AccessibilityNeeds *[]string
}

// Resource is a community service as returned by the backend. Read-only
// from the client's perspective.
type Resource struct {
	ID                  int64             `json:"id"`
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	Category            string            `json:"category"`
	Address             string            `json:"address"`
	Latitude            float64           `json:"latitude"`
	Longitude           float64           `json:"longitude"`
	Phone               string            `json:"phone,omitempty"`
	Website             string            `json:"website,omitempty"`
	OperatingHours      map[string]string `json:"operating_hours,omitempty"`
	EligibilityCriteria map[string]any    `json:"eligibility_criteria,omitempty"`
	ServicesProvided    []string          `json:"services_provided,omitempty"`
	IsActive            bool              `json:"is_active"`
	LastVerified        *time.Time        `json:"last_verified,omitempty"`
	CreatedAt           *time.Time        `json:"created_at,omitempty"`

	// DistanceMiles is only present on proximity-search results.
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// Location is one hit of the free-text city search, used only to
// populate a selection list.
type Location struct {
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ServiceCount int     `json:"service_count"`
}

// Service categories known to the backend.
const (
	CategoryShelter        = "shelter"
	CategoryFood           = "food"
	CategoryHealth         = "health"
	CategoryEmployment     = "employment"
	CategoryMentalHealth   = "mental_health"
	CategoryLegal          = "legal"
	CategorySubstanceAbuse = "substance_abuse"
	CategoryYouth          = "youth"
)

// Categories returns the browsable category filters, in display order.
func Categories() []string {
	return []string{
		CategoryShelter, CategoryFood, CategoryHealth, CategoryEmployment,
		CategoryMentalHealth, CategoryLegal, CategorySubstanceAbuse, CategoryYouth,
	}
}

// CommonNeeds returns the need tags offered by the profile editor.
func CommonNeeds() []string {
	return []string{
		CategoryShelter, CategoryFood, CategoryHealth, CategoryEmployment,
		CategoryMentalHealth, CategoryLegal, CategorySubstanceAbuse, "childcare",
	}
}

// IncomeLevels returns the eligibility income bands, lowest first.
func IncomeLevels() []string {
	return []string{"very_low", "low", "moderate", "medium", "moderate_high", "high"}
}

// AccessibilityOptions returns the accessibility need tags offered by
// the profile editor.
func AccessibilityOptions() []string {
	return []string{"mobility", "visual", "hearing", "cognitive", "language_barrier"}
}

// SuggestedCities are the quick-pick cities shown by the location search.
func SuggestedCities() []string {
	return []string{"Hyderabad", "Delhi", "New Delhi", "Secunderabad", "Begumpet", "Connaught Place"}
}
