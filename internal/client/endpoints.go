package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"societyBack/internal/models"
)

func (c *Client) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/user/sign_up", nil, req, &resp)
	return resp.User, err
}

// SignIn stores the session cookies in the jar and returns the signed-in user.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/user/sign_in", nil, models.SignInRequest{Email: email, Password: password}, &resp)
	return resp.User, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/user/logout", nil, nil, nil)
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/user/me", nil, nil, &resp)
	return resp.User, err
}

func (c *Client) Providers(ctx context.Context) ([]models.Provider, error) {
	var resp models.ProvidersResponse
	if err := c.do(ctx, http.MethodGet, "/provider-profile", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Providers, nil
}

func (c *Client) Provider(ctx context.Context, id int) (models.Provider, error) {
	var resp models.ProviderResponse
	err := c.do(ctx, http.MethodGet, "/provider-profile/"+strconv.Itoa(id), nil, nil, &resp)
	return resp.Provider, err
}

func (c *Client) Comments(ctx context.Context, serviceID int) ([]models.Comment, error) {
	var resp models.CommentsResponse
	if err := c.do(ctx, http.MethodGet, "/comments/get-comments/"+strconv.Itoa(serviceID), nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Comments == nil {
		resp.Comments = []models.Comment{}
	}
	return resp.Comments, nil
}

func (c *Client) CreateComment(ctx context.Context, serviceID int, text string, rating int) (models.Comment, error) {
	var resp models.CommentResponse
	err := c.do(ctx, http.MethodPost, "/comments/create-comment/"+strconv.Itoa(serviceID), nil,
		models.CommentRequest{Comment: text, Rating: rating}, &resp)
	return resp.Comment, err
}

func (c *Client) UpdateComment(ctx context.Context, commentID int, text string, rating int) (models.Comment, error) {
	var resp models.CommentResponse
	err := c.do(ctx, http.MethodPut, "/comments/update-comment/"+strconv.Itoa(commentID), nil,
		models.CommentRequest{Comment: text, Rating: rating}, &resp)
	return resp.Comment, err
}

func (c *Client) DeleteComment(ctx context.Context, commentID int) error {
	return c.do(ctx, http.MethodDelete, "/comments/delete/"+strconv.Itoa(commentID), nil, nil, nil)
}

func replyPath(commentID int) string {
	return fmt.Sprintf("/comments/%d/reply", commentID)
}

func (c *Client) AddReply(ctx context.Context, commentID int, text string) (models.Comment, error) {
	var resp models.CommentResponse
	err := c.do(ctx, http.MethodPost, replyPath(commentID), nil, models.ReplyRequest{Reply: text}, &resp)
	return resp.Comment, err
}

func (c *Client) UpdateReply(ctx context.Context, commentID int, text string) (models.Comment, error) {
	var resp models.CommentResponse
	err := c.do(ctx, http.MethodPut, replyPath(commentID), nil, models.ReplyRequest{Reply: text}, &resp)
	return resp.Comment, err
}

func (c *Client) DeleteReply(ctx context.Context, commentID int) error {
	return c.do(ctx, http.MethodDelete, replyPath(commentID), nil, nil, nil)
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}

func (c *Client) TopCategories(ctx context.Context, limit int) ([]models.TopCategory, error) {
	var resp models.TopCategoriesResponse
	err := c.do(ctx, http.MethodGet, "/comments/top-categories", limitQuery(limit), nil, &resp)
	return resp.Categories, err
}

func (c *Client) TopServices(ctx context.Context, limit int) ([]models.TopService, error) {
	var resp models.TopServicesResponse
	err := c.do(ctx, http.MethodGet, "/comments/top-services", limitQuery(limit), nil, &resp)
	return resp.Services, err
}

func (c *Client) Wishlist(ctx context.Context) ([]models.ServiceOffering, error) {
	var resp models.WishlistResponse
	err := c.do(ctx, http.MethodGet, "/user/wishlist", nil, nil, &resp)
	return resp.Wishlist, err
}

func (c *Client) InWishlist(ctx context.Context, serviceID int) (bool, error) {
	var resp models.WishlistStatus
	err := c.do(ctx, http.MethodGet, "/user/wishlist/"+strconv.Itoa(serviceID), nil, nil, &resp)
	return resp.InWishlist, err
}

func (c *Client) AddToWishlist(ctx context.Context, serviceID int) error {
	return c.do(ctx, http.MethodPost, "/user/wishlist/"+strconv.Itoa(serviceID), nil, nil, nil)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, serviceID int) error {
	return c.do(ctx, http.MethodDelete, "/user/wishlist/"+strconv.Itoa(serviceID), nil, nil, nil)
}

// SubscribeComments streams comment events for serviceID until ctx ends or the
// server closes the socket. The returned channel is closed in both cases.
func (c *Client) SubscribeComments(ctx context.Context, serviceID int) (<-chan models.CommentEvent, error) {
	conn, resp, err := c.dialer.DialContext(ctx, c.wsURL("/ws/comments/"+strconv.Itoa(serviceID)), nil)
	if err != nil {
		if resp != nil {
			return nil, &APIError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("dial comment events: %w", err)
	}

	events := make(chan models.CommentEvent)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()
	go func() {
		defer close(events)
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev models.CommentEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}
