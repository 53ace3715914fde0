// Package thread manages the review thread of a service page: the cached
// review list, the viewer's permissions on each review and the provider reply
// attached to it.
package thread

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"societyBack/internal/client"
	"societyBack/internal/models"
	"societyBack/internal/store"
)

// API is the part of the backend client the manager needs.
type API interface {
	Comments(ctx context.Context, serviceID int) ([]models.Comment, error)
	CreateComment(ctx context.Context, serviceID int, text string, rating int) (models.Comment, error)
	UpdateComment(ctx context.Context, commentID int, text string, rating int) (models.Comment, error)
	DeleteComment(ctx context.Context, commentID int) error
	AddReply(ctx context.Context, commentID int, text string) (models.Comment, error)
	UpdateReply(ctx context.Context, commentID int, text string) (models.Comment, error)
	DeleteReply(ctx context.Context, commentID int) error
	SubscribeComments(ctx context.Context, serviceID int) (<-chan models.CommentEvent, error)
}

// Logger provides minimal logging required by the manager.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(message string)
}

const (
	msgLoadFailed        = "Failed to load reviews"
	msgCreateFailed      = "Failed to submit review"
	msgUpdateFailed      = "Failed to update review"
	msgDeleteFailed      = "Failed to delete review"
	msgAddReplyFailed    = "Failed to add reply"
	msgUpdateReplyFailed = "Failed to update reply"
	msgDeleteReplyFailed = "Failed to delete reply"
)

var ErrUnknownComment = errors.New("comment is not loaded")

type Manager struct {
	api      API
	store    *store.Store
	notifier Notifier
	log      Logger
	now      func() time.Time
}

func NewManager(api API, st *store.Store, notifier Notifier, log Logger) *Manager {
	return &Manager{api: api, store: st, notifier: notifier, log: log, now: time.Now}
}

// Comments returns the cached list for serviceID.
func (m *Manager) Comments(serviceID int) []models.Comment {
	return m.store.State().CommentsFor(serviceID)
}

// LoadForService replaces the cached list with the server's.
func (m *Manager) LoadForService(ctx context.Context, serviceID int) ([]models.Comment, error) {
	ticket := m.store.Ticket()
	comments, err := m.api.Comments(ctx, serviceID)
	if err != nil {
		m.fail(err, msgLoadFailed)
		return nil, err
	}
	state := m.store.Dispatch(store.CommentsLoaded{ServiceID: serviceID, Ticket: ticket, Comments: comments})
	return state.CommentsFor(serviceID), nil
}

// Create posts a review and prepends it to the cached list.
func (m *Manager) Create(ctx context.Context, serviceID int, text string, rating int) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if err := models.ValidateReview(text, rating); err != nil {
		m.invalid(err)
		return models.Comment{}, err
	}

	created, err := m.api.CreateComment(ctx, serviceID, text, rating)
	if err != nil {
		m.fail(err, msgCreateFailed)
		return models.Comment{}, err
	}

	if created.ServiceID == 0 {
		created.ServiceID = serviceID
	}
	if !created.Customer.IsPopulated() {
		if v := m.store.State().Viewer; v != nil {
			created.Customer = models.PopulatedCustomer(v.User)
		}
	}
	// Loads issued before this point may predate the insert.
	m.store.Dispatch(store.CommentCreated{ServiceID: serviceID, Ticket: m.store.Ticket(), Comment: created})
	return created, nil
}

// Update edits a review, patches it in every cached list and then re-fetches
// the owning service's list to pick up server-populated fields.
func (m *Manager) Update(ctx context.Context, commentID int, text string, rating int) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if err := models.ValidateReview(text, rating); err != nil {
		m.invalid(err)
		return models.Comment{}, err
	}

	updated, err := m.api.UpdateComment(ctx, commentID, text, rating)
	if err != nil {
		m.fail(err, msgUpdateFailed)
		return models.Comment{}, err
	}

	state := m.store.State()
	current, serviceID, found := state.FindComment(commentID)
	if found {
		updated = mergeUpdate(current, updated, text, rating)
	}
	if updated.ID == 0 {
		updated.ID = commentID
	}
	m.store.Dispatch(store.CommentReplaced{Comment: updated})

	m.reconcile(ctx, commentID, owningService(updated, serviceID))
	if c, _, ok := m.store.State().FindComment(commentID); ok {
		return c, nil
	}
	return updated, nil
}

// mergeUpdate keeps the cached display fields the update endpoint may leave
// unpopulated.
func mergeUpdate(current, updated models.Comment, text string, rating int) models.Comment {
	merged := current
	merged.Comment = text
	merged.Rating = rating
	if updated.UpdatedAt != nil {
		merged.UpdatedAt = updated.UpdatedAt
	}
	if updated.Customer.IsPopulated() {
		merged.Customer = updated.Customer
	}
	if updated.ServiceID != 0 {
		merged.ServiceID = updated.ServiceID
	}
	return merged
}

// Delete removes a review, and its reply, from every cached list.
func (m *Manager) Delete(ctx context.Context, commentID int) error {
	if err := m.api.DeleteComment(ctx, commentID); err != nil {
		m.fail(err, msgDeleteFailed)
		return err
	}
	m.store.Dispatch(store.CommentRemoved{CommentID: commentID})
	return nil
}

// AddReply attaches the provider reply. Only comments without a reply accept
// one.
func (m *Manager) AddReply(ctx context.Context, commentID int, text string) error {
	text = strings.TrimSpace(text)
	if err := models.ValidateReply(text); err != nil {
		m.invalid(err)
		return err
	}
	if c, _, ok := m.store.State().FindComment(commentID); ok && c.HasReply() {
		m.invalid(models.ErrAlreadyReplied)
		return models.ErrAlreadyReplied
	}

	if _, err := m.api.AddReply(ctx, commentID, text); err != nil {
		m.fail(err, msgAddReplyFailed)
		return err
	}
	m.patchThenReconcile(ctx, commentID, &text)
	return nil
}

func (m *Manager) UpdateReply(ctx context.Context, commentID int, text string) error {
	text = strings.TrimSpace(text)
	if err := models.ValidateReply(text); err != nil {
		m.invalid(err)
		return err
	}

	if _, err := m.api.UpdateReply(ctx, commentID, text); err != nil {
		m.fail(err, msgUpdateReplyFailed)
		return err
	}
	m.patchThenReconcile(ctx, commentID, &text)
	return nil
}

func (m *Manager) DeleteReply(ctx context.Context, commentID int) error {
	if err := m.api.DeleteReply(ctx, commentID); err != nil {
		m.fail(err, msgDeleteReplyFailed)
		return err
	}
	m.patchThenReconcile(ctx, commentID, nil)
	return nil
}

// patchThenReconcile is the two-phase reply update. The provisional patch is
// visible until the re-fetch lands; if the re-fetch fails the patch stays and
// the comment remains Provisional until the next load.
func (m *Manager) patchThenReconcile(ctx context.Context, commentID int, reply *string) {
	state := m.store.State()
	c, serviceID, _ := state.FindComment(commentID)

	var by *models.UserSummary
	if v := state.Viewer; v != nil && reply != nil {
		u := v.User
		by = &u
	}
	m.store.Dispatch(store.ReplyPatched{CommentID: commentID, Reply: reply, By: by, At: m.now()})

	m.reconcile(ctx, commentID, owningService(c, serviceID))
}

// owningService prefers the comment's own service reference over the id of
// the cached list it was found in.
func owningService(c models.Comment, listID int) int {
	if c.ServiceID != 0 {
		return c.ServiceID
	}
	return listID
}

// reconcile re-fetches the service lists holding commentID. Candidate ids of 0
// are skipped; without any candidate every list holding the comment is used.
func (m *Manager) reconcile(ctx context.Context, commentID int, candidates ...int) {
	seen := make(map[int]bool)
	var targets []int
	for _, id := range candidates {
		if id != 0 && !seen[id] {
			seen[id] = true
			targets = append(targets, id)
		}
	}
	if len(targets) == 0 {
		targets = m.store.State().ServicesContaining(commentID)
	}

	for _, serviceID := range targets {
		ticket := m.store.Ticket()
		comments, err := m.api.Comments(ctx, serviceID)
		if err != nil {
			if m.log != nil {
				m.log.Errorf("thread: refresh service %d after change to comment %d: %v", serviceID, commentID, err)
			}
			continue
		}
		m.store.Dispatch(store.CommentsLoaded{ServiceID: serviceID, Ticket: ticket, Comments: comments})
	}
}

// HasUserReviewed reports whether userID authored a cached review of serviceID.
func (m *Manager) HasUserReviewed(serviceID, userID int) bool {
	for _, c := range m.store.State().CommentsFor(serviceID) {
		if c.Customer.ID == userID {
			return true
		}
	}
	return false
}

// CanCreateReview is true for a signed-in viewer without a review on serviceID.
func (m *Manager) CanCreateReview(serviceID int) bool {
	v := m.store.State().Viewer
	return v != nil && !m.HasUserReviewed(serviceID, v.ID)
}

// Follow reloads the service's list on every pushed comment event until ctx
// ends or the event stream closes.
func (m *Manager) Follow(ctx context.Context, serviceID int) error {
	events, err := m.api.SubscribeComments(ctx, serviceID)
	if err != nil {
		return fmt.Errorf("subscribe to service %d: %w", serviceID, err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if m.log != nil {
				m.log.Infof("thread: %s on comment %d of service %d", ev.Kind, ev.CommentID, serviceID)
			}
			if _, err := m.LoadForService(ctx, serviceID); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

func (m *Manager) fail(err error, fallback string) {
	if m.log != nil {
		m.log.Errorf("thread: %s: %v", fallback, err)
	}
	if m.notifier != nil {
		m.notifier.Notify(client.MessageOf(err, fallback))
	}
}

func (m *Manager) invalid(err error) {
	if m.notifier != nil {
		m.notifier.Notify(validationMessage(err))
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidRating):
		return "Please select a rating between 1 and 5"
	case errors.Is(err, models.ErrEmptyText):
		return "Please write something before submitting"
	case errors.Is(err, models.ErrAlreadyReplied):
		return "This review already has a reply"
	default:
		return err.Error()
	}
}
