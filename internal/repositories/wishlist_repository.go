package repositories

import (
	"context"
	"database/sql"

	"societyBack/internal/models"
)

type WishlistRepository struct {
	DB *sql.DB
}

func (r *WishlistRepository) Contains(ctx context.Context, userID, serviceID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM wishlist WHERE user_id = ? AND service_id = ?)`, userID, serviceID).Scan(&exists)
	return exists, err
}

// Add is idempotent.
func (r *WishlistRepository) Add(ctx context.Context, userID, serviceID int) error {
	_, err := r.DB.ExecContext(ctx, `INSERT IGNORE INTO wishlist (user_id, service_id, created_at) VALUES (?, ?, NOW())`, userID, serviceID)
	if isMySQLError(err, mysqlForeignKey) {
		return models.ErrServiceNotFound
	}
	return err
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, serviceID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM wishlist WHERE user_id = ? AND service_id = ?`, userID, serviceID)
	return err
}
