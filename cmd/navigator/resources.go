package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/communitynav/navigator/internal/app"
)

func resourcesCMD(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Browse and search community resources",
	}
	cmd.AddCommand(
		resourcesListCMD(cfgPath),
		resourcesNearbyCMD(cfgPath),
		resourcesShowCMD(cfgPath),
		resourcesLocationsCMD(cfgPath),
		resourcesVerifyCMD(cfgPath),
		resourcesContactCMD(cfgPath),
	)
	return cmd
}

func newBrowser(cfgPath string) (*app.Browser, error) {
	nav, err := buildNavigator(cfgPath)
	if err != nil {
		return nil, err
	}
	browser := app.NewBrowser(
		nav.Resources, nav.ResourceService, nav.AnalyticsService,
		nav.Locator, nav.Chat.UserID(), nav.Config.Search.RadiusMiles,
	)
	return browser, nil
}

func resourcesListCMD(cfgPath *string) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources, optionally filtered by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			browser, err := newBrowser(*cfgPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := browser.Load(cmd.Context(), category); err != nil {
				fmt.Fprintf(out, "! %s\n", browser.Store.Err())
				return err
			}
			renderResourceList(out, browser.Store.Resources())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", app.FilterAll, "category filter (shelter, food, health, ...)")
	return cmd
}

func resourcesNearbyCMD(cfgPath *string) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Search resources near the configured location",
		RunE: func(cmd *cobra.Command, args []string) error {
			browser, err := newBrowser(*cfgPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := browser.SearchNearby(cmd.Context(), category); err != nil {
				fmt.Fprintf(out, "! %s\n", browser.Store.Err())
				return err
			}
			renderResourceList(out, browser.Store.Resources())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", app.FilterAll, "category filter")
	return cmd
}

func resourcesShowCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one resource in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid resource id %q", args[0])
			}
			browser, err := newBrowser(*cfgPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r, err := browser.Open(cmd.Context(), id)
			if err != nil {
				fmt.Fprintf(out, "! %s\n", browser.Store.Err())
				return err
			}
			renderResource(out, r)
			return nil
		},
	}
}

func resourcesLocationsCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "locations <query>",
		Short: "Search cities where services are available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := buildNavigator(*cfgPath)
			if err != nil {
				return err
			}
			locations, err := nav.ResourceService.SearchLocations(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(locations) == 0 {
				fmt.Fprintln(out, "No locations found matching your search.")
				return nil
			}
			for _, loc := range locations {
				fmt.Fprintf(out, "%s (%.4f, %.4f) - %d services available\n",
					loc.City, loc.Latitude, loc.Longitude, loc.ServiceCount)
			}
			return nil
		},
	}
}

func resourcesVerifyCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Mark a resource as recently verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid resource id %q", args[0])
			}
			browser, err := newBrowser(*cfgPath)
			if err != nil {
				return err
			}
			res, err := browser.Verify(cmd.Context(), id)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "! %s\n", browser.Store.Err())
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func resourcesContactCMD(cfgPath *string) *cobra.Command {
	var method, outcome, notes string
	cmd := &cobra.Command{
		Use:   "contact <id>",
		Short: "Record that you contacted a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid resource id %q", args[0])
			}
			browser, err := newBrowser(*cfgPath)
			if err != nil {
				return err
			}
			r, err := browser.Open(cmd.Context(), id)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "! %s\n", browser.Store.Err())
				return err
			}
			receipt, err := browser.Contact(cmd.Context(), *r, method, outcome, notes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), receipt.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", "phone", "contact method: phone, in_person, online")
	cmd.Flags().StringVar(&outcome, "outcome", "", "outcome: completed, pending, no_show")
	cmd.Flags().StringVar(&notes, "notes", "", "additional notes")
	return cmd
}
