package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/communitynav/navigator/internal/analytics"
)

// DashboardFallback is the display string when an analytics fetch
// fails without a backend detail.
const DashboardFallback = "Failed to load analytics"

// Overview bundles the three aggregates the dashboard renders together.
type Overview struct {
	Stats    *analytics.DashboardStats
	Users    *analytics.UserImpact
	Services *analytics.ServiceImpact
}

// Dashboard drives the analytics view.
type Dashboard struct {
	Service *analytics.Service
}

// NewDashboard wires a dashboard controller to the analytics service.
func NewDashboard(svc *analytics.Service) *Dashboard {
	return &Dashboard{Service: svc}
}

// Load fetches stats, user impact and service impact for the lookback
// window in parallel; the first failure wins and cancels the rest.
func (d *Dashboard) Load(ctx context.Context, days int) (*Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := d.Service.Stats(ctx, days)
		if err != nil {
			return err
		}
		ov.Stats = stats
		return nil
	})
	g.Go(func() error {
		users, err := d.Service.UserImpact(ctx, days)
		if err != nil {
			return err
		}
		ov.Users = users
		return nil
	})
	g.Go(func() error {
		services, err := d.Service.ServiceImpact(ctx, days)
		if err != nil {
			return err
		}
		ov.Services = services
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}

// Categories fetches the per-category impact breakdown.
func (d *Dashboard) Categories(ctx context.Context, days int) (*analytics.CategoryImpact, error) {
	return d.Service.CategoryImpact(ctx, days)
}
