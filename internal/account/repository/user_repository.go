package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"couriertrack/internal/domain"
	apperrors "couriertrack/internal/errors"
	"couriertrack/internal/infrastructure/mysql"
)

type MySQLUserRepository struct {
	db mysql.Querier
}

func NewMySQLUserRepository(db mysql.Querier) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

const userColumns = `user_id, name, email, phone, address, created_at`

func (r *MySQLUserRepository) Insert(ctx context.Context, user domain.User) (uint, error) {
	query := `INSERT INTO Users (name, email, phone, address, created_at) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Phone, user.Address, user.CreatedAt)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("user with email %s already exists", user.Email))
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM Users WHERE user_id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return user, nil
}

func (r *MySQLUserRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM Users ORDER BY created_at DESC, user_id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Address, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
