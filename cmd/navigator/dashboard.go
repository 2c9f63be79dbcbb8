package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communitynav/navigator/internal/api"
	"github.com/communitynav/navigator/internal/app"
)

func dashboardCMD(cfgPath *string) *cobra.Command {
	var (
		days           int
		withCategories bool
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the community impact dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := buildNavigator(*cfgPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = nav.Config.Dashboard.Days
			}

			ctrl := app.NewDashboard(nav.AnalyticsService)
			out := cmd.OutOrStdout()

			overview, err := ctrl.Load(cmd.Context(), days)
			if err != nil {
				fmt.Fprintf(out, "! %s\n", api.ErrorMessage(err, app.DashboardFallback))
				return err
			}
			renderOverview(out, days, overview)

			if withCategories {
				impact, err := ctrl.Categories(cmd.Context(), days)
				if err != nil {
					fmt.Fprintf(out, "! %s\n", api.ErrorMessage(err, app.DashboardFallback))
					return err
				}
				renderCategoryImpact(out, impact)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "lookback window in days (1-365)")
	cmd.Flags().BoolVar(&withCategories, "categories", false, "include the per-category breakdown")
	return cmd
}
