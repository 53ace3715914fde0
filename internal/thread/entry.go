package thread

import (
	"context"
	"errors"
	"fmt"

	"societyBack/internal/models"
)

// Mode is the editing state of one review entry. A single mode per entry
// keeps the review and its reply from being edited at the same time.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
	ModeReplying
	ModeEditingReply
)

func (m Mode) String() string {
	switch m {
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	case ModeReplying:
		return "replying"
	case ModeEditingReply:
		return "editing-reply"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

var ErrInvalidTransition = errors.New("thread: invalid entry transition")

// Entry is the UI state of one review: its mode and the draft being edited.
type Entry struct {
	CommentID int
	Mode      Mode
	Text      string
	Rating    int
}

func NewEntry(commentID int) *Entry {
	return &Entry{CommentID: commentID}
}

// BeginEdit opens the review editor, seeded with the current text and rating.
func (e *Entry) BeginEdit(c models.Comment, p Permissions) error {
	if e.Mode != ModeViewing || !p.CanEdit {
		return ErrInvalidTransition
	}
	e.Mode, e.Text, e.Rating = ModeEditing, c.Comment, c.Rating
	return nil
}

// BeginReply opens the reply form. Only offered on reviews without a reply.
func (e *Entry) BeginReply(c models.Comment, p Permissions) error {
	if e.Mode != ModeViewing || !p.CanReply || c.HasReply() {
		return ErrInvalidTransition
	}
	e.Mode, e.Text, e.Rating = ModeReplying, "", 0
	return nil
}

func (e *Entry) BeginEditReply(c models.Comment, p Permissions) error {
	if e.Mode != ModeViewing || !p.CanEditReply || !c.HasReply() {
		return ErrInvalidTransition
	}
	e.Mode, e.Text, e.Rating = ModeEditingReply, *c.Reply, 0
	return nil
}

// Cancel drops the draft.
func (e *Entry) Cancel() {
	e.Mode, e.Text, e.Rating = ModeViewing, "", 0
}

// Submit sends the draft for the entry's current mode. On success the entry
// returns to viewing; on failure it keeps its mode and draft.
func (m *Manager) Submit(ctx context.Context, e *Entry) error {
	var err error
	switch e.Mode {
	case ModeEditing:
		_, err = m.Update(ctx, e.CommentID, e.Text, e.Rating)
	case ModeReplying:
		err = m.AddReply(ctx, e.CommentID, e.Text)
	case ModeEditingReply:
		err = m.UpdateReply(ctx, e.CommentID, e.Text)
	default:
		return ErrInvalidTransition
	}
	if err != nil {
		return err
	}
	e.Cancel()
	return nil
}

// Begin opens the mode on the cached comment, checking the viewer's
// permissions.
func (m *Manager) Begin(e *Entry, mode Mode) error {
	c, _, ok := m.store.State().FindComment(e.CommentID)
	if !ok {
		return ErrUnknownComment
	}
	p := m.PermissionsFor(c)
	switch mode {
	case ModeEditing:
		return e.BeginEdit(c, p)
	case ModeReplying:
		return e.BeginReply(c, p)
	case ModeEditingReply:
		return e.BeginEditReply(c, p)
	default:
		return ErrInvalidTransition
	}
}
