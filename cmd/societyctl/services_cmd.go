package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"societyBack/internal/facet"
	"societyBack/internal/models"
)

func newServicesCmd(run runner) *cobra.Command {
	var (
		f        facet.Filters
		sort     string
		minPrice float64
		maxPrice float64
	)
	cmd := &cobra.Command{
		Use:   "services [search text]",
		Short: "List offerings matching the facet filters",
		Args:  cobra.ArbitraryArgs,
	}
	cmd.Flags().StringVar(&f.Category, "category", "", "Service category (All for any)")
	cmd.Flags().StringVar(&f.Subcategory, "subcategory", "", "Subcategory (All for any)")
	cmd.Flags().StringVar(&f.Keyword, "keyword", "", "Keyword (All for any)")
	cmd.Flags().Float64Var(&f.MinRating, "min-rating", 0, "Minimum average rating")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Lowest price, clamped to the data")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Highest price, clamped to the data")
	cmd.Flags().StringVar(&sort, "sort", "none", "Price order: none, asc or desc")

	cmd.RunE = run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
		f.SearchText = strings.Join(args, " ")
		f.Sort = facet.ParseSort(sort)

		browser := facet.NewBrowser()
		browser.SetProviders(s.providers())
		minSet, maxSet := cmd.Flags().Changed("min-price"), cmd.Flags().Changed("max-price")
		if minSet || maxSet {
			r := browser.Bounds()
			if minSet {
				r.Min = minPrice
			}
			if maxSet {
				r.Max = maxPrice
			}
			browser.SetPriceRange(r)
		}

		results := browser.Results(f)
		bounds := browser.Bounds()
		fmt.Fprintf(s.out, "%d services (prices %s to %s)\n", len(results), formatAmount(bounds.Min), formatAmount(bounds.Max))
		printListings(s, results)
		return nil
	})
	return cmd
}

func printListings(s *session, listings []facet.Listing) {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tPROVIDER")
	for _, l := range listings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.ServiceCategory, formatPrice(l.Price), formatRating(l.Rating, l.ReviewsCount), l.ProviderName())
	}
	tw.Flush()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPrice(p models.Price) string {
	switch {
	case p.Numeric:
		return formatAmount(p.Amount)
	case p.Raw != "":
		return p.Raw
	}
	return "-"
}

func formatRating(r *float64, count int) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d)", *r, count)
}
