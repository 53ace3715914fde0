package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"societyBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (name, email, password, role, address, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	user.CreatedAt = time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Email, user.Password, user.Role, user.Address, user.CreatedAt,
	)
	if err != nil {
		if isMySQLError(err, mysqlDuplicateEntry) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	return user, nil
}

const userColumns = `id, name, email, password, role, profile_image, address, fcm_token, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var (
		u            models.User
		profileImage sql.NullString
		updatedAt    sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &profileImage, &u.Address, &u.FCMToken, &u.CreatedAt, &updatedAt)
	if err != nil {
		return models.User{}, err
	}
	if profileImage.Valid && profileImage.String != "" {
		u.ProfileImage = &profileImage.String
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepository) UpdateFCMToken(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET fcm_token = ?, updated_at = NOW() WHERE id = ?`, token, userID)
	return err
}

// GetFCMToken returns the push token of userID, empty when none is registered.
func (r *UserRepository) GetFCMToken(ctx context.Context, userID int) (string, error) {
	var token string
	err := r.DB.QueryRowContext(ctx, `SELECT fcm_token FROM users WHERE id = ?`, userID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrUserNotFound
	}
	return token, err
}

func (r *UserRepository) SetSession(ctx context.Context, userID int, session models.Session) error {
	query := `
		UPDATE users
		SET refresh_token = ?, expires_at = ?
		WHERE id = ?
	`

	result, err := r.DB.ExecContext(ctx, query, session.RefreshToken, session.ExpiresAt, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// GetSessionByToken finds the session owning refreshToken.
func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	if refreshToken == "" {
		return models.Session{}, models.ErrInvalidSession
	}
	query := `
		SELECT id, role, refresh_token, expires_at
		FROM users
		WHERE refresh_token = ?
	`

	var (
		session   models.Session
		expiresAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(&session.UserID, &session.Role, &session.RefreshToken, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, models.ErrInvalidSession
		}
		return models.Session{}, err
	}
	if !expiresAt.Valid {
		return models.Session{}, models.ErrInvalidSession
	}
	session.ExpiresAt = expiresAt.Time

	return session, nil
}

func (r *UserRepository) ClearSession(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET refresh_token = '', expires_at = NULL WHERE id = ?`, userID)
	return err
}
