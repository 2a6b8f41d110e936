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

type MySQLAdminRepository struct {
	db mysql.Querier
}

func NewMySQLAdminRepository(db mysql.Querier) *MySQLAdminRepository {
	return &MySQLAdminRepository{db: db}
}

const adminColumns = `admin_id, name, email, phone, role, created_at`

func (r *MySQLAdminRepository) Insert(ctx context.Context, admin domain.Admin) (uint, error) {
	query := `INSERT INTO Admins (name, email, phone, role, created_at) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, admin.Name, admin.Email, admin.Phone, admin.Role, admin.CreatedAt)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("admin with email %s already exists", admin.Email))
		}
		return 0, fmt.Errorf("inserting admin: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLAdminRepository) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM Admins WHERE admin_id = ?`

	admin, err := scanAdmin(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("admin with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin by id: %w", err)
	}

	return admin, nil
}

func (r *MySQLAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM Admins WHERE email = ?`

	admin, err := scanAdmin(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("admin with email %s not found", email))
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin by email: %w", err)
	}

	return admin, nil
}

func (r *MySQLAdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM Admins ORDER BY created_at DESC, admin_id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying admins: %w", err)
	}
	defer rows.Close()

	admins := []domain.Admin{}
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning admin row: %w", err)
		}
		admins = append(admins, *admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating admin rows: %w", err)
	}

	return admins, nil
}

func scanAdmin(row rowScanner) (*domain.Admin, error) {
	var admin domain.Admin
	err := row.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Phone, &admin.Role, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
