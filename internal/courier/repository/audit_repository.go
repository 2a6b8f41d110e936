package repository

import (
	"context"
	"fmt"

	"couriertrack/internal/domain"
	"couriertrack/internal/infrastructure/mysql"
)

type MySQLAuditRepository struct {
	db mysql.Querier
}

func NewMySQLAuditRepository(db mysql.Querier) *MySQLAuditRepository {
	return &MySQLAuditRepository{db: db}
}

func (r *MySQLAuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) (uint, error) {
	query := `
		INSERT INTO Courier_Audit (courier_id, action_type, old_status, new_status, admin_id, admin_email, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.CourierID, entry.ActionType, string(entry.OldStatus), string(entry.NewStatus),
		entry.AdminID, entry.AdminEmail, entry.ChangedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting courier audit: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLAuditRepository) ListByCourier(ctx context.Context, courierID uint) ([]domain.AuditEntry, error) {
	query := `
		SELECT audit_id, courier_id, action_type, old_status, new_status, admin_id, admin_email, changed_at
		FROM Courier_Audit
		WHERE courier_id = ?
		ORDER BY changed_at DESC, audit_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courierID)
	if err != nil {
		return nil, fmt.Errorf("querying courier audit: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		var oldStatus, newStatus string
		err := rows.Scan(&e.ID, &e.CourierID, &e.ActionType, &oldStatus, &newStatus, &e.AdminID, &e.AdminEmail, &e.ChangedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning courier audit row: %w", err)
		}
		e.OldStatus = domain.Status(oldStatus)
		e.NewStatus = domain.Status(newStatus)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courier audit rows: %w", err)
	}

	return entries, nil
}

func (r *MySQLAuditRepository) DeleteByCourier(ctx context.Context, courierID uint) (int64, error) {
	return deleteByCourier(ctx, r.db, "Courier_Audit", courierID)
}
