package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"societyBack/internal/models"
)

var (
	asel  = models.UserSummary{ID: 1, Name: "Asel"}
	marat = models.UserSummary{ID: 2, Name: "Marat"}
	bolat = models.UserSummary{ID: 3, Name: "Bolat"}
)

// newCommentFixture: provider 7 (user Marat) owns offering 50.
func newCommentFixture() (*CommentService, *recordingEvents, chanPusher) {
	catalog := newStubCatalog()
	catalog.addProvider(7, marat)
	catalog.addOffering(50, 7, "Plumbing")

	events := &recordingEvents{}
	pusher := make(chanPusher, 8)
	svc := &CommentService{
		Comments:  newStubComments(catalog, asel, marat, bolat),
		Offerings: catalog,
		Events:    events,
		Pusher:    pusher,
		Log:       testLogger{},
	}
	return svc, events, pusher
}

func waitPush(t *testing.T, p chanPusher) pushed {
	t.Helper()
	select {
	case got := <-p:
		return got
	case <-time.After(time.Second):
		t.Fatal("expected a push notification")
		return pushed{}
	}
}

func TestCreateCommentRules(t *testing.T) {
	svc, events, pusher := newCommentFixture()
	ctx := context.Background()

	tests := []struct {
		name      string
		userID    int
		serviceID int
		req       models.CommentRequest
		wantErr   error
	}{
		{"rating too low", asel.ID, 50, models.CommentRequest{Comment: "ok", Rating: 0}, models.ErrInvalidRating},
		{"blank text", asel.ID, 50, models.CommentRequest{Comment: "  ", Rating: 4}, models.ErrEmptyText},
		{"unknown service", asel.ID, 99, models.CommentRequest{Comment: "ok", Rating: 4}, models.ErrServiceNotFound},
		{"own offering", marat.ID, 50, models.CommentRequest{Comment: "mine", Rating: 5}, models.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateComment(ctx, tt.userID, tt.serviceID, tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	c, err := svc.CreateComment(ctx, asel.ID, 50, models.CommentRequest{Comment: " great work ", Rating: 5})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if c.Comment != "great work" || !c.Customer.IsPopulated() || c.Customer.User.Name != "Asel" {
		t.Fatalf("unexpected comment %#v", c)
	}
	if got := waitPush(t, pusher); got.userID != marat.ID {
		t.Fatalf("expected the provider notified, got %+v", got)
	}

	if _, err := svc.CreateComment(ctx, asel.ID, 50, models.CommentRequest{Comment: "again", Rating: 1}); !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
	if diff := cmp.Diff([]string{models.CommentEventCreated}, events.kinds()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestOnlyAuthorEditsReview(t *testing.T) {
	svc, _, _ := newCommentFixture()
	svc.Pusher = nil
	ctx := context.Background()

	c, err := svc.CreateComment(ctx, asel.ID, 50, models.CommentRequest{Comment: "ok", Rating: 3})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if _, err := svc.UpdateComment(ctx, bolat.ID, c.ID, models.CommentRequest{Comment: "hijack", Rating: 1}); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	updated, err := svc.UpdateComment(ctx, asel.ID, c.ID, models.CommentRequest{Comment: "better", Rating: 5})
	if err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	if updated.Comment != "better" || updated.Rating != 5 {
		t.Fatalf("unexpected update %#v", updated)
	}

	if err := svc.DeleteComment(ctx, bolat.ID, models.RoleCustomer, c.ID); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteComment(ctx, bolat.ID, models.RoleAdmin, c.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.UpdateComment(ctx, asel.ID, c.ID, models.CommentRequest{Comment: "gone", Rating: 2}); !errors.Is(err, models.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestReplyLifecycle(t *testing.T) {
	svc, events, pusher := newCommentFixture()
	ctx := context.Background()

	c, err := svc.CreateComment(ctx, asel.ID, 50, models.CommentRequest{Comment: "nice", Rating: 5})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	waitPush(t, pusher)

	if _, err := svc.AddReply(ctx, bolat.ID, c.ID, "not mine"); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a non-owner, got %v", err)
	}
	if _, err := svc.UpdateReply(ctx, marat.ID, c.ID, "early"); !errors.Is(err, models.ErrNoReply) {
		t.Fatalf("expected ErrNoReply, got %v", err)
	}

	replied, err := svc.AddReply(ctx, marat.ID, c.ID, "Thanks!")
	if err != nil {
		t.Fatalf("AddReply: %v", err)
	}
	if replied.Reply == nil || *replied.Reply != "Thanks!" || replied.ReplyBy.User.ID != marat.ID {
		t.Fatalf("unexpected reply %#v", replied)
	}
	if got := waitPush(t, pusher); got.userID != asel.ID {
		t.Fatalf("expected the customer notified, got %+v", got)
	}

	if _, err := svc.AddReply(ctx, marat.ID, c.ID, "second"); !errors.Is(err, models.ErrAlreadyReplied) {
		t.Fatalf("expected ErrAlreadyReplied, got %v", err)
	}
	if _, err := svc.UpdateReply(ctx, marat.ID, c.ID, "Thank you!"); err != nil {
		t.Fatalf("UpdateReply: %v", err)
	}
	waitPush(t, pusher)

	cleared, err := svc.DeleteReply(ctx, marat.ID, c.ID)
	if err != nil {
		t.Fatalf("DeleteReply: %v", err)
	}
	if cleared.HasReply() {
		t.Fatal("expected reply removed")
	}
	if _, err := svc.DeleteReply(ctx, marat.ID, c.ID); !errors.Is(err, models.ErrNoReply) {
		t.Fatalf("expected ErrNoReply, got %v", err)
	}

	want := []string{
		models.CommentEventCreated,
		models.CommentEventReplyChanged,
		models.CommentEventReplyChanged,
		models.CommentEventReplyChanged,
	}
	if diff := cmp.Diff(want, events.kinds()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestGetCommentsUnknownService(t *testing.T) {
	svc, _, _ := newCommentFixture()
	if _, err := svc.GetComments(context.Background(), 404); !errors.Is(err, models.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	list, err := svc.GetComments(context.Background(), 50)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %#v %v", list, err)
	}
}
