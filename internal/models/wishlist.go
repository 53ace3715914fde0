package models

type WishlistResponse struct {
	Wishlist []ServiceOffering `json:"wishlist"`
}

type WishlistStatus struct {
	InWishlist bool `json:"inWishlist"`
}
