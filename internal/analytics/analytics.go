// Package analytics talks to the backend analytics endpoints: read-only
// aggregates for the dashboard plus the one write, service-access
// logging.
package analytics

import (
	"context"
	"net/url"
	"strconv"

	"github.com/communitynav/navigator/internal/api"
)

// Lookback window bounds enforced by the backend, mirrored here.
const (
	DefaultWindowDays = 30
	MaxWindowDays     = 365
)

// Contact methods recorded on a service access.
const (
	ContactPhone    = "phone"
	ContactInPerson = "in_person"
	ContactOnline   = "online"
)

// Service-access outcomes recognised downstream.
const (
	OutcomeCompleted = "completed"
	OutcomePending   = "pending"
	OutcomeNoShow    = "no_show"
)

// Service exposes the analytics operations.
type Service struct {
	Client *api.Client
}

// ServiceCount ranks one service by access count.
type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// CategoryCount ranks one category by request count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DashboardStats is the aggregate the dashboard header renders.
type DashboardStats struct {
	TotalUsers              int             `json:"total_users"`
	TotalConversations      int             `json:"total_conversations"`
	TotalServicesAccessed   int             `json:"total_services_accessed"`
	UniqueServicesUsed      int             `json:"unique_services_used"`
	AverageMessagesPerUser  float64         `json:"average_messages_per_user"`
	MostAccessedServices    []ServiceCount  `json:"most_accessed_services"`
	MostRequestedCategories []CategoryCount `json:"most_requested_categories"`
	HelpfulResponseRate     float64         `json:"helpful_response_rate"`
}

// DateUsers is active-user count for one day.
type DateUsers struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

// DateCount is an event count for one day.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UserImpact breaks engagement down per day.
type UserImpact struct {
	DailyActiveUsers []DateUsers `json:"daily_active_users"`
	NewUsersDaily    []DateCount `json:"new_users_daily"`
}

// OutcomeCount tallies one service-access outcome.
type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}

// MethodCount tallies one contact method.
type MethodCount struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

// ServiceImpact breaks service utilisation down.
type ServiceImpact struct {
	DailyServiceAccesses []DateCount    `json:"daily_service_accesses"`
	Outcomes             []OutcomeCount `json:"outcomes"`
	ContactMethods       []MethodCount  `json:"contact_methods"`
}

// CategoryUsage is per-category reach.
type CategoryUsage struct {
	Category          string `json:"category"`
	TotalAccesses     int    `json:"total_accesses"`
	UniqueUsersServed int    `json:"unique_users_served"`
}

// CategoryImpact breaks impact down by service category.
type CategoryImpact struct {
	Categories []CategoryUsage `json:"categories"`
}

func windowQuery(days int) url.Values {
	if days < 1 {
		days = DefaultWindowDays
	}
	if days > MaxWindowDays {
		days = MaxWindowDays
	}
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	return q
}

// Stats fetches the dashboard aggregate over the last days.
func (s *Service) Stats(ctx context.Context, days int) (*DashboardStats, error) {
	var out DashboardStats
	if err := s.Client.Get(ctx, "/analytics/stats", windowQuery(days), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserImpact fetches the user engagement breakdown.
func (s *Service) UserImpact(ctx context.Context, days int) (*UserImpact, error) {
	var out UserImpact
	if err := s.Client.Get(ctx, "/analytics/impact/users", windowQuery(days), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServiceImpact fetches the service utilisation breakdown.
func (s *Service) ServiceImpact(ctx context.Context, days int) (*ServiceImpact, error) {
	var out ServiceImpact
	if err := s.Client.Get(ctx, "/analytics/impact/services", windowQuery(days), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CategoryImpact fetches the per-category breakdown.
func (s *Service) CategoryImpact(ctx context.Context, days int) (*CategoryImpact, error) {
	var out CategoryImpact
	if err := s.Client.Get(ctx, "/analytics/impact/categories", windowQuery(days), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServiceAccess records that a user connected with a service.
type ServiceAccess struct {
	UserID        string `json:"user_id"`
	ServiceID     int64  `json:"service_id"`
	ServiceName   string `json:"service_name"`
	ContactMethod string `json:"contact_method"`
	Outcome       string `json:"outcome,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// AccessReceipt confirms a logged service access.
type AccessReceipt struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	AccessID int64  `json:"access_id"`
}

// LogServiceAccess records a service connection for downstream impact
// attribution.
func (s *Service) LogServiceAccess(ctx context.Context, access ServiceAccess) (*AccessReceipt, error) {
	var out AccessReceipt
	if err := s.Client.Post(ctx, "/analytics/service-access", access, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
