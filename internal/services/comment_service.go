package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"societyBack/internal/models"
)

const pushTimeout = 10 * time.Second

// CommentService enforces who may write reviews and replies. Events and Pusher
// are optional.
type CommentService struct {
	Comments  CommentStore
	Offerings OfferingStore
	Events    EventPublisher
	Pusher    Pusher
	Log       Logger
}

func (s *CommentService) GetComments(ctx context.Context, serviceID int) ([]models.Comment, error) {
	if _, err := s.Offerings.OwnerUserID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.Comments.ListByService(ctx, serviceID)
}

// CreateComment stores the caller's review of serviceID. Providers cannot
// review their own offerings.
func (s *CommentService) CreateComment(ctx context.Context, userID, serviceID int, req models.CommentRequest) (models.Comment, error) {
	text := strings.TrimSpace(req.Comment)
	if err := models.ValidateReview(text, req.Rating); err != nil {
		return models.Comment{}, err
	}
	ownerID, err := s.Offerings.OwnerUserID(ctx, serviceID)
	if err != nil {
		return models.Comment{}, err
	}
	if ownerID == userID {
		return models.Comment{}, models.ErrForbidden
	}

	id, err := s.Comments.Create(ctx, serviceID, userID, text, req.Rating)
	if err != nil {
		return models.Comment{}, err
	}
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		return models.Comment{}, err
	}

	s.publish(c, models.CommentEventCreated)
	s.push(ownerID, "New review", fmt.Sprintf("%s rated your service %d/5", customerName(c), c.Rating), c)
	return c, nil
}

// UpdateComment edits a review. Only its author may do so.
func (s *CommentService) UpdateComment(ctx context.Context, userID, commentID int, req models.CommentRequest) (models.Comment, error) {
	text := strings.TrimSpace(req.Comment)
	if err := models.ValidateReview(text, req.Rating); err != nil {
		return models.Comment{}, err
	}
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if c.Customer.ID != userID {
		return models.Comment{}, models.ErrForbidden
	}

	if err := s.Comments.Update(ctx, commentID, text, req.Rating); err != nil {
		return models.Comment{}, err
	}
	c, err = s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	s.publish(c, models.CommentEventUpdated)
	return c, nil
}

// DeleteComment removes a review and its reply. Authors and admins may.
func (s *CommentService) DeleteComment(ctx context.Context, userID int, role string, commentID int) error {
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.Customer.ID != userID && role != models.RoleAdmin {
		return models.ErrForbidden
	}
	if err := s.Comments.Delete(ctx, commentID); err != nil {
		return err
	}
	s.publish(c, models.CommentEventDeleted)
	return nil
}

// replyTarget loads the comment and checks that userID is the provider owning
// the reviewed offering.
func (s *CommentService) replyTarget(ctx context.Context, userID, commentID int) (models.Comment, error) {
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	ownerID := 0
	if c.Provider != nil {
		ownerID = c.Provider.ID
	} else if ownerID, err = s.Offerings.OwnerUserID(ctx, c.ServiceID); err != nil {
		return models.Comment{}, err
	}
	if ownerID != userID {
		return models.Comment{}, models.ErrForbidden
	}
	return c, nil
}

func (s *CommentService) AddReply(ctx context.Context, userID, commentID int, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if err := models.ValidateReply(text); err != nil {
		return models.Comment{}, err
	}
	c, err := s.replyTarget(ctx, userID, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if c.HasReply() {
		return models.Comment{}, models.ErrAlreadyReplied
	}
	return s.writeReply(ctx, userID, commentID, text, "New reply")
}

func (s *CommentService) UpdateReply(ctx context.Context, userID, commentID int, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if err := models.ValidateReply(text); err != nil {
		return models.Comment{}, err
	}
	c, err := s.replyTarget(ctx, userID, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if !c.HasReply() {
		return models.Comment{}, models.ErrNoReply
	}
	return s.writeReply(ctx, userID, commentID, text, "Reply updated")
}

func (s *CommentService) writeReply(ctx context.Context, userID, commentID int, text, title string) (models.Comment, error) {
	if err := s.Comments.SetReply(ctx, commentID, userID, text); err != nil {
		return models.Comment{}, err
	}
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	s.publish(c, models.CommentEventReplyChanged)
	s.push(c.Customer.ID, title, "The provider answered your review", c)
	return c, nil
}

func (s *CommentService) DeleteReply(ctx context.Context, userID, commentID int) (models.Comment, error) {
	c, err := s.replyTarget(ctx, userID, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if !c.HasReply() {
		return models.Comment{}, models.ErrNoReply
	}
	if err := s.Comments.ClearReply(ctx, commentID); err != nil {
		return models.Comment{}, err
	}
	c, err = s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	s.publish(c, models.CommentEventReplyChanged)
	return c, nil
}

func (s *CommentService) publish(c models.Comment, kind string) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(models.CommentEvent{ServiceID: c.ServiceID, CommentID: c.ID, Kind: kind, At: time.Now().UTC()})
}

// push notifies userID in the background; failures are only logged.
func (s *CommentService) push(userID int, title, body string, c models.Comment) {
	if s.Pusher == nil || userID == 0 {
		return
	}
	data := map[string]string{
		"serviceId": strconv.Itoa(c.ServiceID),
		"commentId": strconv.Itoa(c.ID),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := s.Pusher.Push(ctx, userID, title, body, data); err != nil && s.Log != nil {
			s.Log.Errorf("comment push to user %d: %v", userID, err)
		}
	}()
}

func customerName(c models.Comment) string {
	if c.Customer.IsPopulated() && c.Customer.User.Name != "" {
		return c.Customer.User.Name
	}
	return "A customer"
}
