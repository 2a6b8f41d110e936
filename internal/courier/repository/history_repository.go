package repository

import (
	"context"
	"fmt"

	"couriertrack/internal/domain"
	"couriertrack/internal/infrastructure/mysql"
)

type MySQLHistoryRepository struct {
	db mysql.Querier
}

func NewMySQLHistoryRepository(db mysql.Querier) *MySQLHistoryRepository {
	return &MySQLHistoryRepository{db: db}
}

func (r *MySQLHistoryRepository) Insert(ctx context.Context, entry domain.DeliveryHistoryEntry) (uint, error) {
	query := `
		INSERT INTO Delivery_History (courier_id, old_status, new_status, changed_by_admin_id,
		                              changed_by_admin_email, changed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.CourierID, string(entry.OldStatus), string(entry.NewStatus),
		entry.AdminID, entry.AdminEmail, entry.ChangedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting delivery history: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLHistoryRepository) ListByCourier(ctx context.Context, courierID uint) ([]domain.DeliveryHistoryEntry, error) {
	query := `
		SELECT history_id, courier_id, old_status, new_status, changed_by_admin_id,
		       changed_by_admin_email, changed_at
		FROM Delivery_History
		WHERE courier_id = ?
		ORDER BY changed_at DESC, history_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courierID)
	if err != nil {
		return nil, fmt.Errorf("querying delivery history: %w", err)
	}
	defer rows.Close()

	entries := []domain.DeliveryHistoryEntry{}
	for rows.Next() {
		var e domain.DeliveryHistoryEntry
		var oldStatus, newStatus string
		if err := rows.Scan(&e.ID, &e.CourierID, &oldStatus, &newStatus, &e.AdminID, &e.AdminEmail, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning delivery history row: %w", err)
		}
		e.OldStatus = domain.Status(oldStatus)
		e.NewStatus = domain.Status(newStatus)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating delivery history rows: %w", err)
	}

	return entries, nil
}

func (r *MySQLHistoryRepository) DeleteByCourier(ctx context.Context, courierID uint) (int64, error) {
	return deleteByCourier(ctx, r.db, "Delivery_History", courierID)
}

func deleteByCourier(ctx context.Context, db mysql.Querier, table string, courierID uint) (int64, error) {
	result, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE courier_id = ?", table), courierID)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}
