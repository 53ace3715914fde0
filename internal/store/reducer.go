package store

import (
	"time"

	"societyBack/internal/models"
)

// Action is a state transition. The set is closed: only types in this package
// implement it.
type Action interface {
	action()
}

type ViewerSet struct{ Viewer Viewer }
type ViewerCleared struct{}

type ProvidersLoaded struct{ Providers []models.Provider }

// CommentsLoaded replaces a service's list. A ticket older than the newest one
// already applied to that service marks a stale response and is dropped.
type CommentsLoaded struct {
	ServiceID int
	Ticket    uint64
	Comments  []models.Comment
}

// CommentCreated prepends a comment to its service's list. It is applied
// whatever its ticket, since the server has already stored the comment. A
// ticket newer than the last applied load also retires loads issued before
// it, which could not contain the comment.
type CommentCreated struct {
	ServiceID int
	Ticket    uint64
	Comment   models.Comment
}

// CommentReplaced swaps the comment with the same id in every cached list.
type CommentReplaced struct{ Comment models.Comment }

// CommentRemoved drops the comment, and with it its reply, from every list.
type CommentRemoved struct{ CommentID int }

// ReplyPatched is the provisional phase of a reply mutation. A nil Reply
// removes the reply.
type ReplyPatched struct {
	CommentID int
	Reply     *string
	By        *models.UserSummary
	At        time.Time
}

type WishlistLoaded struct{ ServiceIDs []int }
type WishlistAdded struct{ ServiceID int }
type WishlistRemoved struct{ ServiceID int }

func (ViewerSet) action()       {}
func (ViewerCleared) action()   {}
func (ProvidersLoaded) action() {}
func (CommentsLoaded) action()  {}
func (CommentCreated) action()  {}
func (CommentReplaced) action() {}
func (CommentRemoved) action()  {}
func (ReplyPatched) action()    {}
func (WishlistLoaded) action()  {}
func (WishlistAdded) action()   {}
func (WishlistRemoved) action() {}

// Reduce is pure: s is left untouched.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ViewerSet:
		v := a.Viewer
		s.Viewer = &v
	case ViewerCleared:
		s.Viewer = nil
		s.Wishlist = nil
	case ProvidersLoaded:
		s.Providers = append([]models.Provider(nil), a.Providers...)
	case CommentsLoaded:
		if a.Ticket < s.applied[a.ServiceID] {
			return s
		}
		s.Comments = withList(s.Comments, a.ServiceID, append([]models.Comment{}, a.Comments...))
		s.applied = withTicket(s.applied, a.ServiceID, a.Ticket)
	case CommentCreated:
		current := s.Comments[a.ServiceID]
		if indexOf(current, a.Comment.ID) < 0 {
			list := make([]models.Comment, 0, len(current)+1)
			list = append(list, a.Comment)
			list = append(list, current...)
			s.Comments = withList(s.Comments, a.ServiceID, list)
		}
		if a.Ticket > s.applied[a.ServiceID] {
			s.applied = withTicket(s.applied, a.ServiceID, a.Ticket)
		}
	case CommentReplaced:
		s.Comments = mapComments(s.Comments, a.Comment.ID, func(models.Comment) (models.Comment, bool) {
			return a.Comment, true
		})
	case CommentRemoved:
		s.Comments = mapComments(s.Comments, a.CommentID, func(models.Comment) (models.Comment, bool) {
			return models.Comment{}, false
		})
	case ReplyPatched:
		s.Comments = mapComments(s.Comments, a.CommentID, func(c models.Comment) (models.Comment, bool) {
			return patchReply(c, a), true
		})
	case WishlistLoaded:
		set := make(map[int]struct{}, len(a.ServiceIDs))
		for _, id := range a.ServiceIDs {
			set[id] = struct{}{}
		}
		s.Wishlist = set
	case WishlistAdded:
		set := cloneSet(s.Wishlist)
		set[a.ServiceID] = struct{}{}
		s.Wishlist = set
	case WishlistRemoved:
		set := cloneSet(s.Wishlist)
		delete(set, a.ServiceID)
		s.Wishlist = set
	}
	return s
}

func patchReply(c models.Comment, a ReplyPatched) models.Comment {
	c.Provisional = true
	if a.Reply == nil {
		c.Reply = nil
		c.ReplyBy = nil
		c.ReplyCreatedAt = nil
		return c
	}
	text := *a.Reply
	c.Reply = &text
	if a.By != nil {
		c.ReplyBy = &models.ReplyAuthor{User: *a.By}
	}
	if c.ReplyCreatedAt == nil {
		at := a.At
		c.ReplyCreatedAt = &at
	}
	return c
}

// mapComments rebuilds only the lists containing id. fn returns the
// replacement and whether to keep it.
func mapComments(all map[int][]models.Comment, id int, fn func(models.Comment) (models.Comment, bool)) map[int][]models.Comment {
	var out map[int][]models.Comment
	for serviceID, list := range all {
		idx := indexOf(list, id)
		if idx < 0 {
			continue
		}
		if out == nil {
			out = cloneComments(all)
		}
		next := make([]models.Comment, 0, len(list))
		next = append(next, list[:idx]...)
		if c, keep := fn(list[idx]); keep {
			next = append(next, c)
		}
		next = append(next, list[idx+1:]...)
		out[serviceID] = next
	}
	if out == nil {
		return all
	}
	return out
}

func indexOf(list []models.Comment, id int) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func withList(all map[int][]models.Comment, serviceID int, list []models.Comment) map[int][]models.Comment {
	out := cloneComments(all)
	out[serviceID] = list
	return out
}

func withTicket(applied map[int]uint64, serviceID int, ticket uint64) map[int]uint64 {
	out := make(map[int]uint64, len(applied)+1)
	for k, v := range applied {
		out[k] = v
	}
	out[serviceID] = ticket
	return out
}

func cloneComments(all map[int][]models.Comment) map[int][]models.Comment {
	out := make(map[int][]models.Comment, len(all)+1)
	for k, v := range all {
		out[k] = v
	}
	return out
}

func cloneSet(set map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(set)+1)
	for k := range set {
		out[k] = struct{}{}
	}
	return out
}
