package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"societyBack/internal/facet"
	"societyBack/internal/store"
)

func newWishlistCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "List your saved services",
		Args:  cobra.NoArgs,
		RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
			if _, err := s.requireViewer(); err != nil {
				return err
			}
			saved, err := s.api.Wishlist(ctx)
			if err != nil {
				return err
			}
			ids := make([]int, len(saved))
			for i, o := range saved {
				ids[i] = o.ID
			}
			s.store.Dispatch(store.WishlistLoaded{ServiceIDs: ids})

			// Attach providers from the roster so the table can name them.
			all := facet.Flatten(s.providers())
			var listings []facet.Listing
			for _, l := range all {
				if s.store.State().InWishlist(l.ID) {
					listings = append(listings, l)
				}
			}
			fmt.Fprintf(s.out, "%d saved services\n", len(listings))
			printListings(s, listings)
			return nil
		}),
	}

	toggle := func(use, short string, add bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " SERVICE_ID",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
				if _, err := s.requireViewer(); err != nil {
					return err
				}
				id, err := intArg(args, 0, "service id")
				if err != nil {
					return err
				}
				if add {
					err = s.api.AddToWishlist(ctx, id)
				} else {
					err = s.api.RemoveFromWishlist(ctx, id)
				}
				if err != nil {
					return err
				}
				if add {
					s.store.Dispatch(store.WishlistAdded{ServiceID: id})
					fmt.Fprintf(s.out, "service %d saved\n", id)
				} else {
					s.store.Dispatch(store.WishlistRemoved{ServiceID: id})
					fmt.Fprintf(s.out, "service %d removed\n", id)
				}
				return nil
			}),
		}
	}
	cmd.AddCommand(toggle("add", "Save a service", true), toggle("remove", "Remove a saved service", false))
	return cmd
}
