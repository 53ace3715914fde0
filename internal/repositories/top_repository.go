package repositories

import (
	"context"
	"database/sql"

	"societyBack/internal/models"
)

// TopRepository aggregates review activity for the landing page.
type TopRepository struct {
	DB *sql.DB
}

func NewTopRepository(db *sql.DB) *TopRepository {
	return &TopRepository{DB: db}
}

// TopCategories ranks categories by review count, then by average rating.
func (r *TopRepository) TopCategories(ctx context.Context, limit int) ([]models.TopCategory, error) {
	query := `
		SELECT o.service_category, COUNT(c.id) AS reviews, COALESCE(AVG(c.rating), 0) AS avg_rating
		FROM comments c
		JOIN service_offerings o ON o.id = c.service_id
		WHERE o.service_category <> ''
		GROUP BY o.service_category
		ORDER BY reviews DESC, avg_rating DESC, o.service_category ASC
		LIMIT ?
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.TopCategory{}
	for rows.Next() {
		var t models.TopCategory
		if err := rows.Scan(&t.Category, &t.ReviewsCount, &t.AvgRating); err != nil {
			return nil, err
		}
		t.AvgRating = roundRating(t.AvgRating)
		categories = append(categories, t)
	}
	return categories, rows.Err()
}

// TopServices ranks offerings by average rating, then by review count. Only
// reviewed offerings take part.
func (r *TopRepository) TopServices(ctx context.Context, limit int) ([]models.TopService, error) {
	query := `
		SELECT o.id, o.name, o.service_category, u.name, COUNT(c.id) AS reviews, AVG(c.rating) AS avg_rating
		FROM comments c
		JOIN service_offerings o ON o.id = c.service_id
		JOIN providers p ON p.id = o.provider_id
		JOIN users u ON u.id = p.user_id
		GROUP BY o.id, o.name, o.service_category, u.name
		ORDER BY avg_rating DESC, reviews DESC, o.id ASC
		LIMIT ?
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []models.TopService{}
	for rows.Next() {
		var t models.TopService
		if err := rows.Scan(&t.ServiceID, &t.Name, &t.ServiceCategory, &t.ProviderName, &t.ReviewsCount, &t.AvgRating); err != nil {
			return nil, err
		}
		t.AvgRating = roundRating(t.AvgRating)
		services = append(services, t)
	}
	return services, rows.Err()
}
