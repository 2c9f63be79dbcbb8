package app

import (
	"context"
	"log"

	"github.com/communitynav/navigator/internal/analytics"
	"github.com/communitynav/navigator/internal/api"
	"github.com/communitynav/navigator/internal/geo"
	"github.com/communitynav/navigator/internal/resources"
	"github.com/communitynav/navigator/internal/store"
	"github.com/communitynav/navigator/models"
)

const (
	listFallback   = "Failed to load resources"
	detailFallback = "Failed to load resource"
	nearbyFallback = "Failed to search nearby resources"
	verifyFallback = "Failed to verify resource"

	// LocationDeniedMessage is shown when the positioning capability
	// refuses or is absent.
	LocationDeniedMessage = "Unable to access your location. Please enable location services."
)

// FilterAll is the pseudo-category meaning "no filter".
const FilterAll = "all"

// Browser drives the resource browser view: category-filtered listing,
// proximity search, selection, verification and service-access logging.
type Browser struct {
	Store       *store.ResourceStore
	Service     *resources.Service
	Analytics   *analytics.Service
	Locator     geo.Locator
	UserID      string
	RadiusMiles float64

	logger *log.Logger
}

// NewBrowser wires a browser controller to its store and services.
func NewBrowser(st *store.ResourceStore, svc *resources.Service, an *analytics.Service, locator geo.Locator, userID string, radiusMiles float64) *Browser {
	if radiusMiles <= 0 {
		radiusMiles = resources.DefaultRadiusMiles
	}
	return &Browser{
		Store:       st,
		Service:     svc,
		Analytics:   an,
		Locator:     locator,
		UserID:      userID,
		RadiusMiles: radiusMiles,
		logger:      log.New(log.Writer(), "[RES] ", log.LstdFlags),
	}
}

// Load fetches the listing for a category ("" or "all" for no filter)
// and replaces the store's list wholesale. A stale response, one
// superseded by a newer Load or SearchNearby, is discarded.
func (b *Browser) Load(ctx context.Context, category string) error {
	if category == FilterAll {
		category = ""
	}

	token := b.Store.Begin()
	b.Store.SetLoading(true)
	b.Store.SetError("")

	list, err := b.Service.List(ctx, resources.ListOptions{Category: category})
	if err != nil {
		b.Store.SetError(api.ErrorMessage(err, listFallback))
		b.Store.SetLoading(false)
		return err
	}

	b.Store.Complete(token, list)
	b.Store.SetLoading(false)
	return nil
}

// SearchNearby asks the positioning capability for the current point
// and fetches resources around it. A denied or absent capability leaves
// the list untouched and sets the location error message; the request
// is never retried automatically.
func (b *Browser) SearchNearby(ctx context.Context, category string) error {
	b.Store.SetLoading(true)

	pos, err := b.Locator.CurrentPosition(ctx)
	if err != nil {
		b.Store.SetError(LocationDeniedMessage)
		b.Store.SetLoading(false)
		return err
	}

	if category == FilterAll {
		category = ""
	}
	token := b.Store.Begin()
	list, err := b.Service.SearchNearby(ctx, pos.Latitude, pos.Longitude, b.RadiusMiles, category)
	if err != nil {
		b.Store.SetError(api.ErrorMessage(err, nearbyFallback))
		b.Store.SetLoading(false)
		return err
	}

	b.Store.Complete(token, list)
	b.Store.SetError("")
	b.Store.SetLoading(false)
	return nil
}

// Select marks the resource with the given id in the current list as
// selected. Returns false when it is not in the list.
func (b *Browser) Select(id int64) bool {
	for _, r := range b.Store.Resources() {
		if r.ID == id {
			b.Store.Select(&r)
			return true
		}
	}
	return false
}

// Open fetches one resource by id and selects it, whether or not it is
// in the current list.
func (b *Browser) Open(ctx context.Context, id int64) (*models.Resource, error) {
	r, err := b.Service.Get(ctx, id)
	if err != nil {
		b.Store.SetError(api.ErrorMessage(err, detailFallback))
		return nil, err
	}
	b.Store.Select(r)
	return r, nil
}

// Verify marks a resource as recently verified.
func (b *Browser) Verify(ctx context.Context, id int64) (*resources.VerifyResult, error) {
	res, err := b.Service.Verify(ctx, id)
	if err != nil {
		b.Store.SetError(api.ErrorMessage(err, verifyFallback))
		return nil, err
	}
	return res, nil
}

// Contact records that the user connected with a resource, for impact
// attribution.
func (b *Browser) Contact(ctx context.Context, r models.Resource, method, outcome, notes string) (*analytics.AccessReceipt, error) {
	receipt, err := b.Analytics.LogServiceAccess(ctx, analytics.ServiceAccess{
		UserID:        b.UserID,
		ServiceID:     r.ID,
		ServiceName:   r.Name,
		ContactMethod: method,
		Outcome:       outcome,
		Notes:         notes,
	})
	if err != nil {
		return nil, err
	}
	b.logger.Printf("logged %s access to %q (id %d)", method, r.Name, r.ID)
	return receipt, nil
}
