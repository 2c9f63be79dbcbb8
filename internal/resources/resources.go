// Package resources talks to the backend resource endpoints. Every call
// re-fetches; nothing is cached client-side.
package resources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/communitynav/navigator/internal/api"
	"github.com/communitynav/navigator/models"
)

// Pagination and radius bounds enforced by the backend, mirrored here.
const (
	DefaultLimit = 50
	MaxLimit     = 100

	DefaultRadiusMiles = 5.0
	MinRadiusMiles     = 0.1
	MaxRadiusMiles     = 50.0
)

// Service exposes the resource operations.
type Service struct {
	Client *api.Client
}

// ListOptions filter and paginate a resource listing. Empty Category
// means no filter; Limit <= 0 takes the default.
type ListOptions struct {
	Category string
	Skip     int
	Limit    int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	skip := o.Skip
	if skip < 0 {
		skip = 0
	}
	limit := o.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// List fetches resources with an optional category filter.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]models.Resource, error) {
	var out []models.Resource
	if err := s.Client.Get(ctx, "/resources/", opts.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one resource by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Resource, error) {
	var out models.Resource
	if err := s.Client.Get(ctx, fmt.Sprintf("/resources/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchNearby fetches resources within radiusMiles of a point, closest
// first, each annotated with its distance. Radius is clamped to the
// backend's accepted range; zero takes the default.
func (s *Service) SearchNearby(ctx context.Context, latitude, longitude, radiusMiles float64, category string) ([]models.Resource, error) {
	if radiusMiles <= 0 {
		radiusMiles = DefaultRadiusMiles
	}
	if radiusMiles < MinRadiusMiles {
		radiusMiles = MinRadiusMiles
	}
	if radiusMiles > MaxRadiusMiles {
		radiusMiles = MaxRadiusMiles
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("radius_miles", strconv.FormatFloat(radiusMiles, 'f', -1, 64))
	if category != "" {
		q.Set("category", category)
	}

	var out []models.Resource
	if err := s.Client.Get(ctx, "/resources/search/nearby", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchLocations finds cities with services matching a free-text query.
// The backend answers an empty search with a placeholder entry carrying
// only a message; those are dropped here.
func (s *Service) SearchLocations(ctx context.Context, query string) ([]models.Location, error) {
	q := url.Values{}
	q.Set("query", query)
	var raw []models.Location
	if err := s.Client.Get(ctx, "/resources/search/locations", q, &raw); err != nil {
		return nil, err
	}
	out := raw[:0]
	for _, loc := range raw {
		if loc.City != "" {
			out = append(out, loc)
		}
	}
	return out, nil
}

// ByCategory fetches resources in one category.
func (s *Service) ByCategory(ctx context.Context, category string, skip, limit int) ([]models.Resource, error) {
	opts := ListOptions{Skip: skip, Limit: limit}
	q := opts.query()
	var out []models.Resource
	if err := s.Client.Get(ctx, "/resources/category/"+url.PathEscape(category), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyResult confirms a verification mark.
type VerifyResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	LastVerified string `json:"last_verified"`
}

// Verify marks a resource as recently verified.
func (s *Service) Verify(ctx context.Context, id int64) (*VerifyResult, error) {
	var out VerifyResult
	if err := s.Client.Post(ctx, fmt.Sprintf("/resources/%d/verify", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
