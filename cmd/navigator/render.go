package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/communitynav/navigator/internal/analytics"
	"github.com/communitynav/navigator/internal/app"
	"github.com/communitynav/navigator/internal/store"
	"github.com/communitynav/navigator/models"
)

func renderResourceList(out io.Writer, list []models.Resource) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No resources found. Try adjusting your filters.")
		return
	}
	fmt.Fprintf(out, "%d services found\n", len(list))
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDISTANCE")
	for _, r := range list {
		distance := "-"
		if r.DistanceMiles != nil {
			distance = fmt.Sprintf("%.1f mi", *r.DistanceMiles)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Category, distance)
	}
	w.Flush()
}

func renderResource(out io.Writer, r *models.Resource) {
	fmt.Fprintf(out, "%s [%s]\n", r.Name, r.Category)
	fmt.Fprintln(out, r.Description)
	if r.Address != "" {
		fmt.Fprintf(out, "Address: %s\n", r.Address)
	}
	if r.Phone != "" {
		fmt.Fprintf(out, "Phone: %s\n", r.Phone)
	}
	if r.Website != "" {
		fmt.Fprintf(out, "Website: %s\n", r.Website)
	}
	if len(r.OperatingHours) > 0 {
		fmt.Fprintln(out, "Hours:")
		for _, day := range sortedKeys(r.OperatingHours) {
			fmt.Fprintf(out, "  %s: %s\n", day, r.OperatingHours[day])
		}
	}
	if len(r.EligibilityCriteria) > 0 {
		fmt.Fprintln(out, "Eligibility requirements:")
		for _, key := range sortedKeysAny(r.EligibilityCriteria) {
			fmt.Fprintf(out, "  %s: %v\n", key, r.EligibilityCriteria[key])
		}
	}
	if len(r.ServicesProvided) > 0 {
		fmt.Fprintf(out, "Services provided: %s\n", strings.Join(r.ServicesProvided, ", "))
	}
	if r.LastVerified != nil {
		fmt.Fprintf(out, "Last verified: %s\n", r.LastVerified.Format("2006-01-02"))
	}
}

func renderProfile(out io.Writer, p store.ProfileState) {
	fmt.Fprintln(out, "Profile:")
	if p.Location != "" {
		fmt.Fprintf(out, "  Location: %s\n", p.Location)
	} else {
		fmt.Fprintln(out, "  Location: (not set)")
	}
	if p.Latitude != nil && p.Longitude != nil {
		fmt.Fprintf(out, "  Coordinates: %.4f, %.4f\n", *p.Latitude, *p.Longitude)
	}
	fmt.Fprintf(out, "  Needs: %s\n", orNone(p.Needs))
	if level, ok := p.EligibilityInfo["income_level"]; ok {
		fmt.Fprintf(out, "  Income level: %v\n", level)
	}
	fmt.Fprintf(out, "  Accessibility needs: %s\n", orNone(p.AccessibilityNeeds))
}

func renderOverview(out io.Writer, days int, ov *app.Overview) {
	fmt.Fprintf(out, "Impact over the last %d days\n\n", days)

	s := ov.Stats
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total users\t%d\n", s.TotalUsers)
	fmt.Fprintf(w, "Total conversations\t%d\n", s.TotalConversations)
	fmt.Fprintf(w, "Services accessed\t%d\n", s.TotalServicesAccessed)
	fmt.Fprintf(w, "Unique services used\t%d\n", s.UniqueServicesUsed)
	fmt.Fprintf(w, "Avg messages per user\t%.2f\n", s.AverageMessagesPerUser)
	fmt.Fprintf(w, "Helpful response rate\t%.1f%%\n", s.HelpfulResponseRate)
	w.Flush()

	if len(s.MostAccessedServices) > 0 {
		fmt.Fprintln(out, "\nTop services:")
		top := s.MostAccessedServices[0].Count
		for i, svc := range s.MostAccessedServices {
			if i >= 5 {
				break
			}
			fmt.Fprintf(out, "  %-30s %s %d\n", svc.Service, bar(svc.Count, top), svc.Count)
		}
	}
	if len(s.MostRequestedCategories) > 0 {
		fmt.Fprintln(out, "\nTop categories:")
		top := s.MostRequestedCategories[0].Count
		for i, cat := range s.MostRequestedCategories {
			if i >= 5 {
				break
			}
			fmt.Fprintf(out, "  %-30s %s %d\n", cat.Category, bar(cat.Count, top), cat.Count)
		}
	}

	if ov.Users != nil && len(ov.Users.DailyActiveUsers) > 0 {
		fmt.Fprintln(out, "\nDaily active users:")
		for _, day := range ov.Users.DailyActiveUsers {
			fmt.Fprintf(out, "  %s  %d\n", day.Date, day.Users)
		}
	}

	if ov.Services != nil {
		if len(ov.Services.Outcomes) > 0 {
			fmt.Fprintln(out, "\nOutcomes:")
			for _, o := range ov.Services.Outcomes {
				fmt.Fprintf(out, "  %-12s %d\n", o.Outcome, o.Count)
			}
		}
		if len(ov.Services.ContactMethods) > 0 {
			fmt.Fprintln(out, "\nContact methods:")
			for _, m := range ov.Services.ContactMethods {
				fmt.Fprintf(out, "  %-12s %d\n", m.Method, m.Count)
			}
		}
	}
}

func renderCategoryImpact(out io.Writer, impact *analytics.CategoryImpact) {
	fmt.Fprintln(out, "\nBy category:")
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tACCESSES\tUNIQUE USERS")
	for _, c := range impact.Categories {
		fmt.Fprintf(w, "%s\t%d\t%d\n", c.Category, c.TotalAccesses, c.UniqueUsersServed)
	}
	w.Flush()
}

// bar draws a proportional block for dashboard rankings.
func bar(count, top int) string {
	if top <= 0 {
		return ""
	}
	width := count * 20 / top
	if width < 1 {
		width = 1
	}
	return strings.Repeat("#", width)
}

func orNone(set []string) string {
	if len(set) == 0 {
		return "(none)"
	}
	return strings.Join(set, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysAny(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
