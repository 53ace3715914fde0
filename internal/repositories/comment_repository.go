package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"societyBack/internal/models"
)

type CommentRepository struct {
	DB *sql.DB
}

// commentSelect populates the customer, the reply author and the provider of
// the reviewed offering.
const commentSelect = `
	SELECT c.id, c.service_id, c.comment, c.rating, c.created_at, c.updated_at,
	       cu.id, cu.name, cu.profile_image,
	       c.reply, c.reply_created_at, ru.id, ru.name, ru.profile_image,
	       pu.id, pu.name, pu.profile_image
	FROM comments c
	JOIN users cu ON cu.id = c.customer_id
	JOIN service_offerings o ON o.id = c.service_id
	JOIN providers p ON p.id = o.provider_id
	JOIN users pu ON pu.id = p.user_id
	LEFT JOIN users ru ON ru.id = c.reply_by
`

func scanComment(row interface{ Scan(...any) error }) (models.Comment, error) {
	var (
		c                                    models.Comment
		customer, provider                   models.UserSummary
		updatedAt, replyCreatedAt            sql.NullTime
		customerImage, replyImage, provImage sql.NullString
		reply, replyName                     sql.NullString
		replyID                              sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.ServiceID, &c.Comment, &c.Rating, &c.CreatedAt, &updatedAt,
		&customer.ID, &customer.Name, &customerImage,
		&reply, &replyCreatedAt, &replyID, &replyName, &replyImage,
		&provider.ID, &provider.Name, &provImage)
	if err != nil {
		return models.Comment{}, err
	}

	customer.ProfileImage = nullableString(customerImage)
	c.Customer = models.PopulatedCustomer(customer)
	provider.ProfileImage = nullableString(provImage)
	c.Provider = &provider

	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}
	if reply.Valid {
		c.Reply = &reply.String
		if replyCreatedAt.Valid {
			c.ReplyCreatedAt = &replyCreatedAt.Time
		}
		if replyID.Valid {
			c.ReplyBy = &models.ReplyAuthor{User: models.UserSummary{
				ID:           int(replyID.Int64),
				Name:         replyName.String,
				ProfileImage: nullableString(replyImage),
			}}
		}
	}
	return c, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	return &s.String
}

// ListByService returns the reviews of serviceID, newest first.
func (r *CommentRepository) ListByService(ctx context.Context, serviceID int) ([]models.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, commentSelect+` WHERE c.service_id = ? ORDER BY c.created_at DESC, c.id DESC`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) GetByID(ctx context.Context, id int) (models.Comment, error) {
	c, err := scanComment(r.DB.QueryRowContext(ctx, commentSelect+` WHERE c.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, models.ErrCommentNotFound
	}
	return c, err
}

// Create stores a review. A second review of the same service by the same
// customer yields models.ErrAlreadyReviewed.
func (r *CommentRepository) Create(ctx context.Context, serviceID, customerID int, text string, rating int) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE customer_id = ? AND service_id = ?`, customerID, serviceID).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, models.ErrAlreadyReviewed
	}

	query := `
		INSERT INTO comments (service_id, customer_id, comment, rating, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query, serviceID, customerID, text, rating, time.Now())
	if err != nil {
		switch {
		case isMySQLError(err, mysqlDuplicateEntry):
			return 0, models.ErrAlreadyReviewed
		case isMySQLError(err, mysqlForeignKey):
			return 0, models.ErrServiceNotFound
		}
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// Update leaves the existence check to the caller. MySQL reports changed rows,
// so saving identical values affects none.
func (r *CommentRepository) Update(ctx context.Context, id int, text string, rating int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE comments SET comment = ?, rating = ?, updated_at = NOW() WHERE id = ?`, text, rating, id)
	return err
}

func (r *CommentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, models.ErrCommentNotFound)
}

// SetReply writes the reply text. The first write stamps reply_created_at;
// later edits keep it.
func (r *CommentRepository) SetReply(ctx context.Context, id, userID int, text string) error {
	query := `
		UPDATE comments
		SET reply = ?, reply_by = ?, reply_created_at = COALESCE(reply_created_at, NOW()), updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query, text, userID, id)
	return err
}

func (r *CommentRepository) ClearReply(ctx context.Context, id int) error {
	query := `
		UPDATE comments
		SET reply = NULL, reply_by = NULL, reply_created_at = NULL, updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}
