package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/communitynav/navigator/internal/analytics"
	"github.com/communitynav/navigator/internal/api"
	"github.com/communitynav/navigator/internal/geo"
	"github.com/communitynav/navigator/internal/resources"
	"github.com/communitynav/navigator/internal/store"
	"github.com/communitynav/navigator/models"
)

func newBrowserController(t *testing.T, e *echo.Echo, locator geo.Locator) *Browser {
	t.Helper()
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL)
	return NewBrowser(
		store.NewResourceStore(),
		&resources.Service{Client: client},
		&analytics.Service{Client: client},
		locator,
		"user-123",
		0,
	)
}

func TestLoadFilterReplacesList(t *testing.T) {
	var queries []url.Values
	e := echo.New()
	e.GET("/resources/", func(c echo.Context) error {
		queries = append(queries, c.QueryParams())
		if c.QueryParam("category") == models.CategoryShelter {
			return c.JSON(http.StatusOK, []models.Resource{{ID: 2, Name: "Night Shelter", Category: "shelter"}})
		}
		return c.JSON(http.StatusOK, []models.Resource{
			{ID: 1, Name: "Community Kitchen", Category: "food"},
			{ID: 2, Name: "Night Shelter", Category: "shelter"},
		})
	})
	ctl := newBrowserController(t, e, geo.Unavailable{})

	if err := ctl.Load(context.Background(), FilterAll); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ctl.Store.Resources()) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(ctl.Store.Resources()))
	}
	if queries[0].Has("category") {
		t.Fatalf("the all filter must not send a category, got %v", queries[0])
	}

	if err := ctl.Load(context.Background(), models.CategoryShelter); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected exactly one fetch per filter change, got %d", len(queries))
	}
	if queries[1].Get("category") != "shelter" {
		t.Fatalf("expected category=shelter, got %v", queries[1])
	}
	got := ctl.Store.Resources()
	if len(got) != 1 || got[0].Name != "Night Shelter" {
		t.Fatalf("filter change must replace the list wholesale, got %+v", got)
	}
}

func TestSearchNearbyDeniedLeavesListUntouched(t *testing.T) {
	e := echo.New()
	e.GET("/resources/search/nearby", func(c echo.Context) error {
		t.Fatal("a denied position must not reach the backend")
		return nil
	})
	ctl := newBrowserController(t, e, geo.Unavailable{})
	ctl.Store.SetResources([]models.Resource{{ID: 1, Name: "Community Kitchen"}})

	if err := ctl.SearchNearby(context.Background(), FilterAll); err == nil {
		t.Fatal("expected error from denied position")
	}

	if got := ctl.Store.Resources(); len(got) != 1 || got[0].Name != "Community Kitchen" {
		t.Fatalf("list must stay as it was, got %+v", got)
	}
	if ctl.Store.Err() != LocationDeniedMessage {
		t.Fatalf("expected location denied message, got %q", ctl.Store.Err())
	}
	if ctl.Store.Loading() {
		t.Fatal("loading must drop after the denial")
	}
}

func TestSearchNearbyUsesCurrentPosition(t *testing.T) {
	var got url.Values
	e := echo.New()
	e.GET("/resources/search/nearby", func(c echo.Context) error {
		got = c.QueryParams()
		distance := 0.8
		return c.JSON(http.StatusOK, []models.Resource{
			{ID: 5, Name: "Night Shelter", Category: "shelter", DistanceMiles: &distance},
		})
	})
	locator := geo.Fixed{Position: geo.Position{Latitude: 17.385, Longitude: 78.4867}}
	ctl := newBrowserController(t, e, locator)
	ctl.Store.SetError(LocationDeniedMessage)

	if err := ctl.SearchNearby(context.Background(), models.CategoryShelter); err != nil {
		t.Fatalf("SearchNearby: %v", err)
	}

	if got.Get("latitude") != "17.385" || got.Get("longitude") != "78.4867" {
		t.Fatalf("expected locator coordinates, got %v", got)
	}
	if got.Get("radius_miles") != "5" {
		t.Fatalf("expected default radius, got %v", got)
	}
	list := ctl.Store.Resources()
	if len(list) != 1 || list[0].DistanceMiles == nil {
		t.Fatalf("expected distance-annotated results, got %+v", list)
	}
	if ctl.Store.Err() != "" {
		t.Fatalf("a successful search must clear the error, got %q", ctl.Store.Err())
	}
}

func TestSelectAndOpen(t *testing.T) {
	e := echo.New()
	e.GET("/resources/:id", func(c echo.Context) error {
		if c.Param("id") != "7" {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Service not found"})
		}
		return c.JSON(http.StatusOK, models.Resource{ID: 7, Name: "Counseling Center", Category: "mental_health"})
	})
	ctl := newBrowserController(t, e, geo.Unavailable{})
	ctl.Store.SetResources([]models.Resource{{ID: 1, Name: "Community Kitchen"}})

	if !ctl.Select(1) {
		t.Fatal("expected in-list selection to succeed")
	}
	if ctl.Select(99) {
		t.Fatal("unknown id must not select")
	}
	if sel := ctl.Store.Selected(); sel == nil || sel.ID != 1 {
		t.Fatalf("failed lookup must not clobber the selection, got %+v", sel)
	}

	r, err := ctl.Open(context.Background(), 7)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.Name != "Counseling Center" {
		t.Fatalf("unexpected resource %+v", r)
	}
	if sel := ctl.Store.Selected(); sel == nil || sel.ID != 7 {
		t.Fatalf("Open must select the fetched resource, got %+v", sel)
	}

	if _, err := ctl.Open(context.Background(), 404); err == nil {
		t.Fatal("expected error for missing resource")
	}
	if ctl.Store.Err() != "Service not found" {
		t.Fatalf("expected backend detail, got %q", ctl.Store.Err())
	}
}

func TestContactLogsServiceAccess(t *testing.T) {
	var got analytics.ServiceAccess
	e := echo.New()
	e.POST("/analytics/service-access", func(c echo.Context) error {
		if err := c.Bind(&got); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, analytics.AccessReceipt{Success: true, AccessID: 7})
	})
	ctl := newBrowserController(t, e, geo.Unavailable{})

	r := models.Resource{ID: 3, Name: "Night Shelter"}
	receipt, err := ctl.Contact(context.Background(), r, analytics.ContactPhone, analytics.OutcomeCompleted, "spoke to intake")
	if err != nil {
		t.Fatalf("Contact: %v", err)
	}
	if receipt.AccessID != 7 {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if got.UserID != "user-123" || got.ServiceID != 3 || got.ServiceName != "Night Shelter" {
		t.Fatalf("unexpected access record %+v", got)
	}
	if got.ContactMethod != "phone" || got.Outcome != "completed" || got.Notes != "spoke to intake" {
		t.Fatalf("unexpected access record %+v", got)
	}
}
