package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Password     string     `json:"password,omitempty"`
	Role         string     `json:"role"`
	ProfileImage *string    `json:"profileImage,omitempty"`
	Address      string     `json:"address,omitempty"`
	FCMToken     string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Summary is the public projection used inside comments and provider profiles.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage, Address: u.Address}
}

// UserSummary is the display identity embedded in other resources.
type UserSummary struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Address      string  `json:"address,omitempty"`
}

type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type Session struct {
	UserID       int       `json:"userId"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Address  string `json:"address"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
