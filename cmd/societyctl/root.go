package main

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:4001"

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "societyctl",
		Short:         "Browse services and manage reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&o.baseURL, "server", defaultBaseURL, "Backend base URL")
	root.PersistentFlags().StringVar(&o.email, "email", "", "Sign in as this user (or set SOCIETY_EMAIL)")
	root.PersistentFlags().StringVar(&o.password, "password", "", "Password (or set SOCIETY_PASSWORD)")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Log requests and reconciliation")

	// run opens a session and hands it to fn with a bounded context.
	run := func(timeout time.Duration, fn func(context.Context, *session, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			s, err := openSession(ctx, o, out, errOut)
			if err != nil {
				return err
			}
			return fn(ctx, s, args)
		}
	}

	root.AddCommand(
		newServicesCmd(run),
		newReviewsCmd(run),
		newReviewCmd(run),
		newReplyCmd(run),
		newTopCmd(run),
		newWishlistCmd(run),
		newFollowCmd(run),
	)
	return root
}

type runner func(time.Duration, func(context.Context, *session, []string) error) func(*cobra.Command, []string) error

const requestTimeout = 30 * time.Second
