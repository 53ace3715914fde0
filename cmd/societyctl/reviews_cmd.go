package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"societyBack/internal/models"
	"societyBack/internal/thread"
)

func intArg(args []string, i int, name string) (int, error) {
	id, err := strconv.Atoi(args[i])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, args[i])
	}
	return id, nil
}

func newReviewsCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "reviews SERVICE_ID",
		Short: "Show the reviews of a service",
		Args:  cobra.ExactArgs(1),
		RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
			serviceID, err := intArg(args, 0, "service id")
			if err != nil {
				return err
			}
			comments, err := s.threads.LoadForService(ctx, serviceID)
			if err != nil {
				return err
			}
			printComments(s, serviceID, comments)
			return nil
		}),
	}
}

func printComments(s *session, serviceID int, comments []models.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(s.out, "No reviews yet.")
	}
	for _, c := range comments {
		name := "customer #" + strconv.Itoa(c.Customer.ID)
		if c.Customer.IsPopulated() && c.Customer.User.Name != "" {
			name = c.Customer.User.Name
		}
		fmt.Fprintf(s.out, "#%d %s %s  %s\n", c.ID, strings.Repeat("*", c.Rating), name, c.CreatedAt.Format("2006-01-02"))
		fmt.Fprintf(s.out, "    %s\n", c.Comment)
		if c.HasReply() {
			fmt.Fprintf(s.out, "    > %s\n", *c.Reply)
		}
		if p := s.threads.PermissionsFor(c); p != (thread.Permissions{}) {
			fmt.Fprintf(s.out, "    [%s]\n", strings.Join(actions(p), " "))
		}
	}
	if s.store.State().Viewer != nil && s.threads.CanCreateReview(serviceID) {
		fmt.Fprintln(s.out, "You can review this service.")
	}
}

func actions(p thread.Permissions) []string {
	var out []string
	if p.CanEdit {
		out = append(out, "edit")
	}
	if p.CanDelete {
		out = append(out, "delete")
	}
	if p.CanReply {
		out = append(out, "reply")
	}
	if p.CanEditReply {
		out = append(out, "edit-reply")
	}
	if p.CanDeleteReply {
		out = append(out, "delete-reply")
	}
	return out
}

func newReviewCmd(run runner) *cobra.Command {
	var (
		rating    int
		text      string
		serviceID int
	)
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Write, edit or delete your review",
	}

	create := &cobra.Command{
		Use:   "create SERVICE_ID",
		Short: "Review a service",
		Args:  cobra.ExactArgs(1),
		RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
			if _, err := s.requireViewer(); err != nil {
				return err
			}
			id, err := intArg(args, 0, "service id")
			if err != nil {
				return err
			}
			if _, err := s.threads.LoadForService(ctx, id); err != nil {
				return err
			}
			if !s.threads.CanCreateReview(id) {
				return errors.New("you already reviewed this service")
			}
			c, err := s.threads.Create(ctx, id, text, rating)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "review #%d posted\n", c.ID)
			return nil
		}),
	}
	create.Flags().IntVar(&rating, "rating", 0, "Rating from 1 to 5")
	create.Flags().StringVar(&text, "text", "", "Review text")

	edit := &cobra.Command{
		Use:   "edit COMMENT_ID",
		Short: "Edit your review",
		Args:  cobra.ExactArgs(1),
		RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
			commentID, err := intArg(args, 0, "comment id")
			if err != nil {
				return err
			}
			if err := s.loadOwning(ctx, serviceID, commentID, func(p thread.Permissions) bool { return p.CanEdit }); err != nil {
				return err
			}
			c, err := s.threads.Update(ctx, commentID, text, rating)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "review #%d updated\n", c.ID)
			return nil
		}),
	}
	edit.Flags().IntVar(&rating, "rating", 0, "Rating from 1 to 5")
	edit.Flags().StringVar(&text, "text", "", "Review text")

	del := &cobra.Command{
		Use:   "delete COMMENT_ID",
		Short: "Delete your review",
		Args:  cobra.ExactArgs(1),
		RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
			commentID, err := intArg(args, 0, "comment id")
			if err != nil {
				return err
			}
			if err := s.loadOwning(ctx, serviceID, commentID, func(p thread.Permissions) bool { return p.CanDelete }); err != nil {
				return err
			}
			if err := s.threads.Delete(ctx, commentID); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "review #%d deleted\n", commentID)
			return nil
		}),
	}

	for _, c := range []*cobra.Command{edit, del} {
		c.Flags().IntVar(&serviceID, "service", 0, "Service the review belongs to")
		c.MarkFlagRequired("service")
	}
	cmd.AddCommand(create, edit, del)
	return cmd
}

// loadOwning loads the service's reviews and checks the viewer may act on
// commentID.
func (s *session) loadOwning(ctx context.Context, serviceID, commentID int, allowed func(thread.Permissions) bool) error {
	if _, err := s.requireViewer(); err != nil {
		return err
	}
	if _, err := s.threads.LoadForService(ctx, serviceID); err != nil {
		return err
	}
	c, _, ok := s.store.State().FindComment(commentID)
	if !ok {
		return fmt.Errorf("review #%d is not on service %d", commentID, serviceID)
	}
	if !allowed(s.threads.PermissionsFor(c)) {
		return errors.New("not allowed for this review")
	}
	return nil
}

func newReplyCmd(run runner) *cobra.Command {
	var (
		text      string
		serviceID int
	)
	cmd := &cobra.Command{
		Use:   "reply",
		Short: "Answer reviews of your services",
	}

	add := &cobra.Command{
		Use:  "add COMMENT_ID",
		Args: cobra.ExactArgs(1),
		RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
			commentID, err := intArg(args, 0, "comment id")
			if err != nil {
				return err
			}
			if err := s.loadOwning(ctx, serviceID, commentID, func(p thread.Permissions) bool { return p.CanReply }); err != nil {
				return err
			}
			if err := s.threads.AddReply(ctx, commentID, text); err != nil {
				return err
			}
			return s.printReply(commentID)
		}),
	}
	edit := &cobra.Command{
		Use:  "edit COMMENT_ID",
		Args: cobra.ExactArgs(1),
		RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
			commentID, err := intArg(args, 0, "comment id")
			if err != nil {
				return err
			}
			if err := s.loadOwning(ctx, serviceID, commentID, func(p thread.Permissions) bool { return p.CanEditReply }); err != nil {
				return err
			}
			if err := s.threads.UpdateReply(ctx, commentID, text); err != nil {
				return err
			}
			return s.printReply(commentID)
		}),
	}
	del := &cobra.Command{
		Use:  "delete COMMENT_ID",
		Args: cobra.ExactArgs(1),
		RunE: run(requestTimeout, func(ctx context.Context, s *session, args []string) error {
			commentID, err := intArg(args, 0, "comment id")
			if err != nil {
				return err
			}
			if err := s.loadOwning(ctx, serviceID, commentID, func(p thread.Permissions) bool { return p.CanDeleteReply }); err != nil {
				return err
			}
			if err := s.threads.DeleteReply(ctx, commentID); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "reply on #%d deleted\n", commentID)
			return nil
		}),
	}

	add.Short, edit.Short, del.Short = "Reply to a review", "Edit your reply", "Delete your reply"
	for _, c := range []*cobra.Command{add, edit, del} {
		c.Flags().IntVar(&serviceID, "service", 0, "Service the review belongs to")
		c.MarkFlagRequired("service")
	}
	add.Flags().StringVar(&text, "text", "", "Reply text")
	edit.Flags().StringVar(&text, "text", "", "Reply text")
	cmd.AddCommand(add, edit, del)
	return cmd
}

func (s *session) printReply(commentID int) error {
	c, _, ok := s.store.State().FindComment(commentID)
	if !ok || !c.HasReply() {
		return nil
	}
	state := "saved"
	if c.Provisional {
		state = "saved, not yet confirmed"
	}
	fmt.Fprintf(s.out, "reply on #%d %s: %s\n", commentID, state, *c.Reply)
	return nil
}

func newFollowCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "follow SERVICE_ID",
		Short: "Print the reviews again whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: run(0, func(ctx context.Context, s *session, args []string) error {
			serviceID, err := intArg(args, 0, "service id")
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			comments, err := s.threads.LoadForService(ctx, serviceID)
			if err != nil {
				return err
			}
			printComments(s, serviceID, comments)

			return s.follow(ctx, serviceID)
		}),
	}
}

// follow reprints the list after every reload triggered by a pushed event.
func (s *session) follow(ctx context.Context, serviceID int) error {
	changed, cancel := s.store.Subscribe()
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.threads.Follow(ctx, serviceID) }()

	last := s.store.State().CommentsFor(serviceID)
	for {
		select {
		case err := <-done:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-changed:
			current := s.store.State().CommentsFor(serviceID)
			if sameComments(last, current) {
				continue
			}
			last = current
			fmt.Fprintln(s.out, "---")
			printComments(s, serviceID, current)
		}
	}
}

func sameComments(a, b []models.Comment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Comment != b[i].Comment || a[i].Rating != b[i].Rating || a[i].HasReply() != b[i].HasReply() {
			return false
		}
		if a[i].HasReply() && *a[i].Reply != *b[i].Reply {
			return false
		}
	}
	return true
}
