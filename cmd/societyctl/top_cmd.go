package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTopCmd(run runner) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most reviewed categories and services",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "How many rows to show (server default when 0)")

	cmd.RunE = run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
		categories, err := s.api.TopCategories(ctx, limit)
		if err != nil {
			return err
		}
		services, err := s.api.TopServices(ctx, limit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tREVIEWS\tAVG")
		for _, c := range categories {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", c.Category, c.ReviewsCount, c.AvgRating)
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "SERVICE\tNAME\tPROVIDER\tREVIEWS\tAVG")
		for _, sv := range services {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\n", sv.ServiceID, sv.Name, sv.ProviderName, sv.ReviewsCount, sv.AvgRating)
		}
		return tw.Flush()
	})
	return cmd
}
