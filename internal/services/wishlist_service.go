package services

import (
	"context"

	"societyBack/internal/models"
)

type WishlistService struct {
	Wishlist  WishlistStore
	Offerings OfferingStore
}

func (s *WishlistService) List(ctx context.Context, userID int) ([]models.ServiceOffering, error) {
	return s.Offerings.ListWishlist(ctx, userID)
}

func (s *WishlistService) Contains(ctx context.Context, userID, serviceID int) (bool, error) {
	return s.Wishlist.Contains(ctx, userID, serviceID)
}

// Add saves serviceID for the user. Adding twice is not an error.
func (s *WishlistService) Add(ctx context.Context, userID, serviceID int) error {
	if _, err := s.Offerings.GetByID(ctx, serviceID); err != nil {
		return err
	}
	return s.Wishlist.Add(ctx, userID, serviceID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, serviceID int) error {
	return s.Wishlist.Remove(ctx, userID, serviceID)
}
