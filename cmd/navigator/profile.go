package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communitynav/navigator/models"
)

func profileCMD(cfgPath *string) *cobra.Command {
	var (
		location      string
		needs         []string
		income        string
		accessibility []string
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit the session profile",
		Long: "The profile is session-scoped: it shapes the context sent with chat\n" +
			"messages during one run and is never persisted or shared.",
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := buildNavigator(*cfgPath)
			if err != nil {
				return err
			}
			profile := nav.Profile

			if cmd.Flags().Changed("location") {
				profile.SetLocation(location)
			}
			if cmd.Flags().Changed("need") {
				for _, need := range needs {
					profile.ToggleNeed(need)
				}
			}
			if cmd.Flags().Changed("income") {
				if !contains(models.IncomeLevels(), income) {
					return fmt.Errorf("unknown income level %q (one of %v)", income, models.IncomeLevels())
				}
				profile.SetEligibilityField("income_level", income)
			}
			if cmd.Flags().Changed("accessibility") {
				for _, need := range accessibility {
					profile.ToggleAccessibilityNeed(need)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User ID: %s\n", nav.Chat.UserID())
			renderProfile(out, profile.State())
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Common needs:", models.CommonNeeds())
			fmt.Fprintln(out, "Income levels:", models.IncomeLevels())
			fmt.Fprintln(out, "Accessibility options:", models.AccessibilityOptions())
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "location label")
	cmd.Flags().StringSliceVar(&needs, "need", nil, "toggle a need tag (repeatable)")
	cmd.Flags().StringVar(&income, "income", "", "income level for eligibility")
	cmd.Flags().StringSliceVar(&accessibility, "accessibility", nil, "toggle an accessibility tag (repeatable)")
	return cmd
}

func contains(set []string, item string) bool {
	for _, v := range set {
		if v == item {
			return true
		}
	}
	return false
}
