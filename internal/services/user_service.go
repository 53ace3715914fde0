package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"societyBack/internal/models"
	"societyBack/utils"
)

var ErrInvalidSignUp = errors.New("name, a valid email and a password of at least 6 characters are required")

const minPasswordLength = 6

type UserService struct {
	UserRepo     UserStore
	TokenManager *utils.Manager
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// SignUp registers a customer or a provider. Admins are not created here.
func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || len(req.Password) < minPasswordLength {
		return models.User{}, ErrInvalidSignUp
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return models.User{}, ErrInvalidSignUp
	}

	role := req.Role
	switch role {
	case "":
		role = models.RoleCustomer
	case models.RoleCustomer, models.RoleProvider:
	default:
		return models.User{}, fmt.Errorf("%w: role %q", ErrInvalidSignUp, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
		Address:  strings.TrimSpace(req.Address),
	})
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// SignIn checks the credentials and opens a new session.
func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}

	tokens, err := s.CreateSession(ctx, user)
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	user.Password = ""
	return user, tokens, nil
}

func (s *UserService) CreateSession(ctx context.Context, user models.User) (models.Tokens, error) {
	var (
		res models.Tokens
		err error
	)

	res.AccessToken, err = s.TokenManager.NewJWT(user.ID, user.Role, s.AccessTTL)
	if err != nil {
		return res, err
	}
	res.RefreshToken, err = s.TokenManager.NewRefreshToken()
	if err != nil {
		return res, err
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: res.RefreshToken,
		ExpiresAt:    time.Now().Add(s.RefreshTTL),
	}
	if err := s.UserRepo.SetSession(ctx, user.ID, session); err != nil {
		return res, err
	}
	return res, nil
}

// Refresh issues a new access token for a live refresh token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.Session, string, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.Session{}, "", err
	}
	if session.RefreshToken != refreshToken || session.ExpiresAt.Before(time.Now()) {
		return models.Session{}, "", models.ErrInvalidSession
	}

	access, err := s.TokenManager.NewJWT(session.UserID, session.Role, s.AccessTTL)
	if err != nil {
		return models.Session{}, "", err
	}
	return session, access, nil
}

func (s *UserService) Logout(ctx context.Context, userID int) error {
	return s.UserRepo.ClearSession(ctx, userID)
}

func (s *UserService) Me(ctx context.Context, userID int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) RegisterDevice(ctx context.Context, userID int, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.ErrEmptyText
	}
	return s.UserRepo.UpdateFCMToken(ctx, userID, token)
}
