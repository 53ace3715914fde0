package repositories

import (
	"context"
	"database/sql"
	"errors"

	"societyBack/internal/models"
)

type ProviderRepository struct {
	DB *sql.DB
}

const providerSelect = `
	SELECT p.id, p.bio, p.experience, p.created_at, p.updated_at,
	       u.id, u.name, u.profile_image, u.address
	FROM providers p
	JOIN users u ON u.id = p.user_id
`

func scanProvider(row interface{ Scan(...any) error }) (models.Provider, error) {
	var (
		p            models.Provider
		updatedAt    sql.NullTime
		profileImage sql.NullString
	)
	err := row.Scan(&p.ID, &p.Bio, &p.Experience, &p.CreatedAt, &updatedAt,
		&p.User.ID, &p.User.Name, &profileImage, &p.User.Address)
	if err != nil {
		return models.Provider{}, err
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	if profileImage.Valid && profileImage.String != "" {
		p.User.ProfileImage = &profileImage.String
	}
	p.ServiceOfferings = []models.ServiceOffering{}
	return p, nil
}

// ListProviders returns the roster without offerings.
func (r *ProviderRepository) ListProviders(ctx context.Context) ([]models.Provider, error) {
	rows, err := r.DB.QueryContext(ctx, providerSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []models.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func (r *ProviderRepository) GetProviderByID(ctx context.Context, id int) (models.Provider, error) {
	p, err := scanProvider(r.DB.QueryRowContext(ctx, providerSelect+` WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Provider{}, models.ErrProviderNotFound
	}
	return p, err
}

func (r *ProviderRepository) GetProviderByUserID(ctx context.Context, userID int) (models.Provider, error) {
	p, err := scanProvider(r.DB.QueryRowContext(ctx, providerSelect+` WHERE p.user_id = ?`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Provider{}, models.ErrProviderNotFound
	}
	return p, err
}

// UpsertProfile creates or updates the profile of userID and returns its id.
func (r *ProviderRepository) UpsertProfile(ctx context.Context, userID int, req models.ProviderProfileRequest) (int, error) {
	query := `
		INSERT INTO providers (user_id, bio, experience, created_at)
		VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE bio = VALUES(bio), experience = VALUES(experience), updated_at = NOW()
	`
	if _, err := r.DB.ExecContext(ctx, query, userID, req.Bio, req.Experience); err != nil {
		return 0, err
	}

	var id int
	if err := r.DB.QueryRowContext(ctx, `SELECT id FROM providers WHERE user_id = ?`, userID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
