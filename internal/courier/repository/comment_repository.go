package repository

import (
	"context"
	"fmt"

	"couriertrack/internal/domain"
	"couriertrack/internal/infrastructure/mysql"
)

type MySQLCommentRepository struct {
	db mysql.Querier
}

func NewMySQLCommentRepository(db mysql.Querier) *MySQLCommentRepository {
	return &MySQLCommentRepository{db: db}
}

func (r *MySQLCommentRepository) Insert(ctx context.Context, comment domain.Comment) (uint, error) {
	query := `INSERT INTO Comments (courier_id, user_id, comment_text, created_at) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, comment.CourierID, comment.UserID, comment.Text, comment.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting comment: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// ListByCourier includes system comments, which have no author row.
func (r *MySQLCommentRepository) ListByCourier(ctx context.Context, courierID uint) ([]domain.Comment, error) {
	query := `
		SELECT c.comment_id, c.courier_id, c.user_id, c.comment_text, c.created_at, u.name, u.email
		FROM Comments c
		LEFT JOIN Users u ON c.user_id = u.user_id
		WHERE c.courier_id = ?
		ORDER BY c.created_at DESC, c.comment_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courierID)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.CourierID, &c.UserID, &c.Text, &c.CreatedAt, &c.UserName, &c.UserEmail); err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comment rows: %w", err)
	}

	return comments, nil
}

func (r *MySQLCommentRepository) DeleteByCourier(ctx context.Context, courierID uint) (int64, error) {
	return deleteByCourier(ctx, r.db, "Comments", courierID)
}
