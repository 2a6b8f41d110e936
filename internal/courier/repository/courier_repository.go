package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"couriertrack/internal/domain"
	apperrors "couriertrack/internal/errors"
	"couriertrack/internal/infrastructure/mysql"
)

type MySQLCourierRepository struct {
	db mysql.Querier
}

func NewMySQLCourierRepository(db mysql.Querier) *MySQLCourierRepository {
	return &MySQLCourierRepository{db: db}
}

const courierSelect = `
	SELECT c.courier_id, c.customer_id, c.managed_by_admin_id, c.bill_number,
	       c.pickup_address, c.delivery_address, c.status, c.created_at, c.updated_at,
	       u.name, u.email, a.name, a.email
	FROM Couriers c
	JOIN Users u ON c.customer_id = u.user_id
	LEFT JOIN Admins a ON c.managed_by_admin_id = a.admin_id`

func (r *MySQLCourierRepository) Insert(ctx context.Context, courier domain.Courier) (uint, error) {
	query := `
		INSERT INTO Couriers (customer_id, managed_by_admin_id, bill_number, pickup_address,
		                      delivery_address, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		courier.CustomerID, courier.AdminID, courier.BillNumber, courier.PickupAddress,
		courier.DeliveryAddress, string(courier.Status), courier.CreatedAt, courier.UpdatedAt,
	)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("courier with bill number %s already exists", courier.BillNumber))
		}
		if mysql.IsForeignKeyViolation(err) {
			return 0, apperrors.NewNotFoundError("customer or admin not found")
		}
		return 0, fmt.Errorf("inserting courier: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLCourierRepository) FindByID(ctx context.Context, id uint) (*domain.Courier, error) {
	return r.findOne(ctx, courierSelect+` WHERE c.courier_id = ?`, id)
}

func (r *MySQLCourierRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Courier, error) {
	// Lock only the courier row; the joined rows stay unlocked.
	query := courierSelect + ` WHERE c.courier_id = ? FOR UPDATE OF c`
	return r.findOne(ctx, query, id)
}

func (r *MySQLCourierRepository) findOne(ctx context.Context, query string, id uint) (*domain.Courier, error) {
	courier, err := scanCourier(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("courier with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying courier by id: %w", err)
	}

	return courier, nil
}

func (r *MySQLCourierRepository) FindByBillAndCustomerName(ctx context.Context, billNumber, namePattern string) (*domain.Courier, error) {
	query := courierSelect + `
		WHERE c.bill_number = ?
		  AND LOWER(u.name) LIKE CONCAT('%', LOWER(?), '%') ESCAPE '!'
		ORDER BY c.courier_id
		LIMIT 1`

	courier, err := scanCourier(r.db.QueryRowContext(ctx, query, billNumber, escapeLike(namePattern)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("no courier found with this bill number and name")
	}
	if err != nil {
		return nil, fmt.Errorf("querying courier by bill and name: %w", err)
	}

	return courier, nil
}

func (r *MySQLCourierRepository) ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM Couriers WHERE bill_number = ?)`, billNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking bill number: %w", err)
	}
	return exists, nil
}

func (r *MySQLCourierRepository) List(ctx context.Context) ([]domain.Courier, error) {
	rows, err := r.db.QueryContext(ctx, courierSelect+` ORDER BY c.created_at DESC, c.courier_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying couriers: %w", err)
	}
	defer rows.Close()

	couriers := []domain.Courier{}
	for rows.Next() {
		courier, err := scanCourier(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning courier row: %w", err)
		}
		couriers = append(couriers, *courier)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courier rows: %w", err)
	}

	return couriers, nil
}

func (r *MySQLCourierRepository) CountByCustomer(ctx context.Context, customerID uint) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Couriers WHERE customer_id = ?`, customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting couriers by customer: %w", err)
	}
	return count, nil
}

func (r *MySQLCourierRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status, updatedAt time.Time) error {
	query := `UPDATE Couriers SET status = ?, updated_at = ? WHERE courier_id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), updatedAt, id)
	if err != nil {
		return fmt.Errorf("updating courier status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	// MySQL reports 0 affected rows when nothing changed, so only a missing
	// row is treated as not found.
	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (r *MySQLCourierRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Couriers WHERE courier_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting courier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("courier with id %d not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCourier(row rowScanner) (*domain.Courier, error) {
	var c domain.Courier
	var status string
	err := row.Scan(
		&c.ID, &c.CustomerID, &c.AdminID, &c.BillNumber,
		&c.PickupAddress, &c.DeliveryAddress, &status, &c.CreatedAt, &c.UpdatedAt,
		&c.CustomerName, &c.CustomerEmail, &c.AdminName, &c.AdminEmail,
	)
	if err != nil {
		return nil, err
	}
	c.Status = domain.Status(status)
	return &c, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
