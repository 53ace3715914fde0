package services

import (
	"context"

	"societyBack/internal/models"
)

// Logger is the minimal logging interface the services need.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateFCMToken(ctx context.Context, userID int, token string) error
	SetSession(ctx context.Context, userID int, session models.Session) error
	GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error)
	ClearSession(ctx context.Context, userID int) error
}

type ProviderStore interface {
	ListProviders(ctx context.Context) ([]models.Provider, error)
	GetProviderByID(ctx context.Context, id int) (models.Provider, error)
	GetProviderByUserID(ctx context.Context, userID int) (models.Provider, error)
	UpsertProfile(ctx context.Context, userID int, req models.ProviderProfileRequest) (int, error)
}

type OfferingStore interface {
	ListAll(ctx context.Context) ([]models.ServiceOffering, error)
	ListByProvider(ctx context.Context, providerID int) ([]models.ServiceOffering, error)
	ListWishlist(ctx context.Context, userID int) ([]models.ServiceOffering, error)
	GetByID(ctx context.Context, id int) (models.ServiceOffering, error)
	Create(ctx context.Context, providerID int, req models.OfferingRequest) (int, error)
	Update(ctx context.Context, id int, req models.OfferingRequest) error
	Delete(ctx context.Context, id int) error
	AddImage(ctx context.Context, id int, url string) error
	OwnerUserID(ctx context.Context, serviceID int) (int, error)
}

type CommentStore interface {
	ListByService(ctx context.Context, serviceID int) ([]models.Comment, error)
	GetByID(ctx context.Context, id int) (models.Comment, error)
	Create(ctx context.Context, serviceID, customerID int, text string, rating int) (int, error)
	Update(ctx context.Context, id int, text string, rating int) error
	Delete(ctx context.Context, id int) error
	SetReply(ctx context.Context, id, userID int, text string) error
	ClearReply(ctx context.Context, id int) error
}

type WishlistStore interface {
	Contains(ctx context.Context, userID, serviceID int) (bool, error)
	Add(ctx context.Context, userID, serviceID int) error
	Remove(ctx context.Context, userID, serviceID int) error
}

type TopStore interface {
	TopCategories(ctx context.Context, limit int) ([]models.TopCategory, error)
	TopServices(ctx context.Context, limit int) ([]models.TopService, error)
}

// ImageStorage stores uploaded portfolio images and returns their URL.
type ImageStorage interface {
	Upload(ctx context.Context, folder, contentType string, data []byte) (string, error)
}

// EventPublisher fans comment events out to websocket subscribers.
type EventPublisher interface {
	Publish(event models.CommentEvent)
}

type Pusher interface {
	Push(ctx context.Context, userID int, title, body string, data map[string]string) error
}
