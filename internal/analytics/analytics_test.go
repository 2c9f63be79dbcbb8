package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/communitynav/navigator/internal/api"
)

func newService(t *testing.T, e *echo.Echo) *Service {
	t.Helper()
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &Service{Client: api.New(srv.URL)}
}

func TestStatsDecodesAggregate(t *testing.T) {
	var gotDays string
	e := echo.New()
	e.GET("/analytics/stats", func(c echo.Context) error {
		gotDays = c.QueryParam("days")
		return c.JSON(http.StatusOK, map[string]any{
			"total_users":               12,
			"total_conversations":       80,
			"total_services_accessed":   34,
			"unique_services_used":      9,
			"average_messages_per_user": 6.67,
			"most_accessed_services": []map[string]any{
				{"service": "Night Shelter", "count": 11},
			},
			"most_requested_categories": []map[string]any{
				{"category": "shelter", "count": 20},
			},
			"helpful_response_rate": 87.5,
		})
	})
	svc := newService(t, e)

	stats, err := svc.Stats(context.Background(), 7)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if gotDays != "7" {
		t.Fatalf("expected days=7, got %q", gotDays)
	}
	if stats.TotalUsers != 12 || stats.TotalConversations != 80 {
		t.Fatalf("unexpected totals %+v", stats)
	}
	if stats.HelpfulResponseRate != 87.5 {
		t.Fatalf("unexpected helpful rate %v", stats.HelpfulResponseRate)
	}
	if len(stats.MostAccessedServices) != 1 || stats.MostAccessedServices[0].Service != "Night Shelter" {
		t.Fatalf("unexpected top services %+v", stats.MostAccessedServices)
	}
}

func TestWindowClamping(t *testing.T) {
	var gotDays string
	e := echo.New()
	e.GET("/analytics/impact/users", func(c echo.Context) error {
		gotDays = c.QueryParam("days")
		return c.JSON(http.StatusOK, UserImpact{})
	})
	svc := newService(t, e)

	if _, err := svc.UserImpact(context.Background(), 0); err != nil {
		t.Fatalf("UserImpact: %v", err)
	}
	if gotDays != "30" {
		t.Fatalf("expected default window 30, got %q", gotDays)
	}
	if _, err := svc.UserImpact(context.Background(), 1000); err != nil {
		t.Fatalf("UserImpact: %v", err)
	}
	if gotDays != "365" {
		t.Fatalf("expected window clamped to 365, got %q", gotDays)
	}
}

func TestImpactBreakdowns(t *testing.T) {
	e := echo.New()
	e.GET("/analytics/impact/services", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"daily_service_accesses": []map[string]any{{"date": "2026-08-27", "count": 4}},
			"outcomes":               []map[string]any{{"outcome": "completed", "count": 3}},
			"contact_methods":        []map[string]any{{"method": "phone", "count": 2}},
		})
	})
	e.GET("/analytics/impact/categories", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"categories": []map[string]any{
				{"category": "shelter", "total_accesses": 9, "unique_users_served": 5},
			},
		})
	})
	svc := newService(t, e)

	services, err := svc.ServiceImpact(context.Background(), 30)
	if err != nil {
		t.Fatalf("ServiceImpact: %v", err)
	}
	if len(services.Outcomes) != 1 || services.Outcomes[0].Outcome != OutcomeCompleted {
		t.Fatalf("unexpected outcomes %+v", services.Outcomes)
	}
	if len(services.ContactMethods) != 1 || services.ContactMethods[0].Method != ContactPhone {
		t.Fatalf("unexpected methods %+v", services.ContactMethods)
	}

	categories, err := svc.CategoryImpact(context.Background(), 30)
	if err != nil {
		t.Fatalf("CategoryImpact: %v", err)
	}
	if len(categories.Categories) != 1 || categories.Categories[0].UniqueUsersServed != 5 {
		t.Fatalf("unexpected categories %+v", categories.Categories)
	}
}

func TestLogServiceAccess(t *testing.T) {
	var got ServiceAccess
	e := echo.New()
	e.POST("/analytics/service-access", func(c echo.Context) error {
		if err := c.Bind(&got); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, AccessReceipt{Success: true, Message: "Service access logged", AccessID: 99})
	})
	svc := newService(t, e)

	receipt, err := svc.LogServiceAccess(context.Background(), ServiceAccess{
		UserID:        "user-123",
		ServiceID:     7,
		ServiceName:   "Community Kitchen",
		ContactMethod: ContactPhone,
		Outcome:       OutcomePending,
	})
	if err != nil {
		t.Fatalf("LogServiceAccess: %v", err)
	}
	if got.UserID != "user-123" || got.ServiceID != 7 || got.ContactMethod != "phone" {
		t.Fatalf("unexpected body %+v", got)
	}
	if receipt.AccessID != 99 {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
}
