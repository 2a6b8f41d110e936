package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/sqlscan"

	"couriertrack/internal/domain"
)

type MySQLReportRepository struct {
	db sqlscan.Querier
}

func NewMySQLReportRepository(db sqlscan.Querier) *MySQLReportRepository {
	return &MySQLReportRepository{db: db}
}

func (r *MySQLReportRepository) CourierDetails(ctx context.Context) ([]domain.CourierDetail, error) {
	query := `
		SELECT
			c.courier_id,
			c.bill_number,
			c.status,
			c.pickup_address,
			c.delivery_address,
			c.created_at,
			u.name AS customer_name,
			u.email AS customer_email,
			a.name AS admin_name,
			a.email AS admin_email
		FROM Couriers c
		JOIN Users u ON c.customer_id = u.user_id
		LEFT JOIN Admins a ON c.managed_by_admin_id = a.admin_id
		ORDER BY c.created_at DESC, c.courier_id DESC`

	rows := []domain.CourierDetail{}
	if err := sqlscan.Select(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("querying courier details: %w", err)
	}
	return rows, nil
}

func (r *MySQLReportRepository) DeliveredCustomers(ctx context.Context) ([]domain.DeliveredCustomer, error) {
	query := `
		SELECT user_id, name, email, phone
		FROM Users
		WHERE user_id IN (
			SELECT customer_id FROM Couriers WHERE status = 'Delivered'
		)
		ORDER BY name, user_id`

	rows := []domain.DeliveredCustomer{}
	if err := sqlscan.Select(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("querying delivered customers: %w", err)
	}
	return rows, nil
}

func (r *MySQLReportRepository) StatusSummary(ctx context.Context) ([]domain.StatusSummary, error) {
	query := `
		SELECT
			status,
			COUNT(*) AS count,
			COUNT(DISTINCT customer_id) AS unique_customers,
			MIN(created_at) AS earliest_order,
			MAX(created_at) AS latest_order
		FROM Couriers
		GROUP BY status
		ORDER BY count DESC, status`

	rows := []domain.StatusSummary{}
	if err := sqlscan.Select(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("querying status summary: %w", err)
	}
	return rows, nil
}

func (r *MySQLReportRepository) AdminPerformance(ctx context.Context) ([]domain.AdminPerformance, error) {
	query := `
		SELECT
			a.admin_id,
			a.name AS admin_name,
			a.email AS admin_email,
			COUNT(c.courier_id) AS total_couriers_managed,
			CAST(COALESCE(SUM(c.status = 'Delivered'), 0) AS SIGNED) AS delivered_count,
			CAST(COALESCE(SUM(c.status = 'In Transit'), 0) AS SIGNED) AS in_transit_count,
			CAST(COALESCE(SUM(c.status = 'Pending'), 0) AS SIGNED) AS pending_count,
			CAST(COALESCE(SUM(c.status = 'Cancelled'), 0) AS SIGNED) AS cancelled_count
		FROM Admins a
		LEFT JOIN Couriers c ON a.admin_id = c.managed_by_admin_id
		GROUP BY a.admin_id, a.name, a.email
		ORDER BY total_couriers_managed DESC, a.admin_id`

	rows := []domain.AdminPerformance{}
	if err := sqlscan.Select(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("querying admin performance: %w", err)
	}
	return rows, nil
}

func (r *MySQLReportRepository) CustomerActivity(ctx context.Context) ([]domain.CustomerActivity, error) {
	query := `
		SELECT
			u.user_id,
			u.name AS customer_name,
			u.email,
			COUNT(c.courier_id) AS total_orders,
			GROUP_CONCAT(DISTINCT c.status ORDER BY c.status) AS order_statuses
		FROM Users u
		JOIN Couriers c ON u.user_id = c.customer_id
		GROUP BY u.user_id, u.name, u.email
		ORDER BY total_orders DESC, u.user_id`

	rows := []domain.CustomerActivity{}
	if err := sqlscan.Select(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("querying customer activity: %w", err)
	}
	return rows, nil
}

func (r *MySQLReportRepository) CountCouriers(ctx context.Context) (int64, error) {
	var total int64
	if err := sqlscan.Get(ctx, r.db, &total, `SELECT COUNT(*) FROM Couriers`); err != nil {
		return 0, fmt.Errorf("counting couriers: %w", err)
	}
	return total, nil
}
