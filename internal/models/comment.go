package models

import (
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Comment is a customer review of one service offering, with at most one
// reply from the provider that owns the offering.
type Comment struct {
	ID             int          `json:"id"`
	ServiceID      int          `json:"serviceRef"`
	Customer       CustomerRef  `json:"customer"`
	Comment        string       `json:"comment"`
	Rating         int          `json:"rating"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      *time.Time   `json:"updatedAt,omitempty"`
	Reply          *string      `json:"reply"`
	ReplyBy        *ReplyAuthor `json:"replyBy,omitempty"`
	ReplyCreatedAt *time.Time   `json:"replyCreatedAt,omitempty"`
	Provider       *UserSummary `json:"provider,omitempty"`

	// Provisional marks a locally patched reply that has not been reconciled
	// with the server yet.
	Provisional bool `json:"-"`
}

type ReplyAuthor struct {
	User UserSummary `json:"user"`
}

// HasReply reports whether the comment carries a provider reply.
func (c Comment) HasReply() bool {
	return c.Reply != nil && strings.TrimSpace(*c.Reply) != ""
}

// CommentRequest is the body of the create and update comment endpoints.
type CommentRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type ReplyRequest struct {
	Reply string `json:"reply"`
}

type CommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type CommentResponse struct {
	Comment Comment `json:"comment"`
}

const (
	CommentEventCreated      = "comment_created"
	CommentEventUpdated      = "comment_updated"
	CommentEventDeleted      = "comment_deleted"
	CommentEventReplyChanged = "reply_changed"
)

// CommentEvent is pushed to websocket subscribers of a service.
type CommentEvent struct {
	ServiceID int       `json:"serviceId"`
	CommentID int       `json:"commentId"`
	Kind      string    `json:"kind"`
	At        time.Time `json:"at"`
}

// ValidateReview checks the text and rating of a review before it is sent or
// stored.
func ValidateReview(text string, rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

func ValidateReply(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}
