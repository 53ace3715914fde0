package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"societyBack/internal/models"
)

type OfferingRepository struct {
	DB *sql.DB
}

const offeringSelect = `
	SELECT o.id, o.provider_id, o.name, o.service_category, o.sub_categories, o.keywords,
	       o.description, o.price, o.portfolio_images, o.created_at, o.updated_at,
	       COUNT(c.id), AVG(c.rating)
	FROM service_offerings o
	LEFT JOIN comments c ON c.service_id = o.id
`

const offeringGroup = ` GROUP BY o.id ORDER BY o.created_at DESC, o.id DESC`

func scanOffering(row interface{ Scan(...any) error }) (models.ServiceOffering, error) {
	var (
		o                       models.ServiceOffering
		subCategories, keywords sql.NullString
		images                  sql.NullString
		price, avg              sql.NullFloat64
		updatedAt               sql.NullTime
	)
	err := row.Scan(&o.ID, &o.ProviderID, &o.Name, &o.ServiceCategory, &subCategories, &keywords,
		&o.Description, &price, &images, &o.CreatedAt, &updatedAt,
		&o.ReviewsCount, &avg)
	if err != nil {
		return models.ServiceOffering{}, err
	}
	if o.SubCategories, err = decodeStrings(subCategories); err != nil {
		return models.ServiceOffering{}, err
	}
	if o.Keywords, err = decodeStrings(keywords); err != nil {
		return models.ServiceOffering{}, err
	}
	if o.PortfolioImages, err = decodeImages(images); err != nil {
		return models.ServiceOffering{}, err
	}
	if price.Valid {
		o.Price = models.NewPrice(price.Float64)
	}
	if updatedAt.Valid {
		o.UpdatedAt = &updatedAt.Time
	}
	o.Rating = averageRating(avg)
	return o, nil
}

func (r *OfferingRepository) query(ctx context.Context, query string, args ...any) ([]models.ServiceOffering, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offerings := []models.ServiceOffering{}
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}
	return offerings, rows.Err()
}

// ListAll returns every offering, newest first.
func (r *OfferingRepository) ListAll(ctx context.Context) ([]models.ServiceOffering, error) {
	return r.query(ctx, offeringSelect+offeringGroup)
}

func (r *OfferingRepository) ListByProvider(ctx context.Context, providerID int) ([]models.ServiceOffering, error) {
	return r.query(ctx, offeringSelect+` WHERE o.provider_id = ?`+offeringGroup, providerID)
}

// ListWishlist returns the offerings userID saved.
func (r *OfferingRepository) ListWishlist(ctx context.Context, userID int) ([]models.ServiceOffering, error) {
	return r.query(ctx, offeringSelect+` JOIN wishlist w ON w.service_id = o.id WHERE w.user_id = ?`+offeringGroup, userID)
}

func (r *OfferingRepository) GetByID(ctx context.Context, id int) (models.ServiceOffering, error) {
	o, err := scanOffering(r.DB.QueryRowContext(ctx, offeringSelect+` WHERE o.id = ? GROUP BY o.id`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServiceOffering{}, models.ErrServiceNotFound
	}
	return o, err
}

func (r *OfferingRepository) Create(ctx context.Context, providerID int, req models.OfferingRequest) (int, error) {
	subCategories, err := encodeStrings(req.SubCategories)
	if err != nil {
		return 0, err
	}
	keywords, err := encodeStrings(req.Keywords)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO service_offerings (provider_id, name, service_category, sub_categories, keywords, description, price, portfolio_images, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, JSON_ARRAY(), ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		providerID, req.Name, req.ServiceCategory, subCategories, keywords, req.Description, nullablePrice(req.Price), time.Now(),
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *OfferingRepository) Update(ctx context.Context, id int, req models.OfferingRequest) error {
	subCategories, err := encodeStrings(req.SubCategories)
	if err != nil {
		return err
	}
	keywords, err := encodeStrings(req.Keywords)
	if err != nil {
		return err
	}

	query := `
		UPDATE service_offerings
		SET name = ?, service_category = ?, sub_categories = ?, keywords = ?, description = ?, price = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err = r.DB.ExecContext(ctx, query,
		req.Name, req.ServiceCategory, subCategories, keywords, req.Description, nullablePrice(req.Price), id,
	)
	return err
}

func (r *OfferingRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM service_offerings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, models.ErrServiceNotFound)
}

// AddImage appends url to the offering's portfolio.
func (r *OfferingRepository) AddImage(ctx context.Context, id int, url string) error {
	query := `
		UPDATE service_offerings
		SET portfolio_images = JSON_ARRAY_APPEND(COALESCE(portfolio_images, JSON_ARRAY()), '$', JSON_OBJECT('url', ?)),
		    updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query, url, id)
	return err
}

// OwnerUserID returns the user id of the provider owning serviceID.
func (r *OfferingRepository) OwnerUserID(ctx context.Context, serviceID int) (int, error) {
	query := `
		SELECT p.user_id
		FROM service_offerings o
		JOIN providers p ON p.id = o.provider_id
		WHERE o.id = ?
	`
	var ownerID int
	err := r.DB.QueryRowContext(ctx, query, serviceID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrServiceNotFound
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}

func nullablePrice(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
