package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names in creation order; children come after their parents.
var Tables = []string{"Users", "Admins", "Couriers", "Delivery_History", "Courier_Audit", "Comments"}

var schema = []struct {
	name  string
	query string
}{
	{"Users", `
	CREATE TABLE IF NOT EXISTS Users (
		user_id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(150) NOT NULL,
		phone VARCHAR(30),
		address VARCHAR(255),
		created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		UNIQUE KEY uq_users_email (email)
	)`},
	{"Admins", `
	CREATE TABLE IF NOT EXISTS Admins (
		admin_id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(150) NOT NULL,
		phone VARCHAR(30),
		role VARCHAR(50) NOT NULL DEFAULT 'Manager',
		created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		UNIQUE KEY uq_admins_email (email)
	)`},
	{"Couriers", `
	CREATE TABLE IF NOT EXISTS Couriers (
		courier_id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customer_id INT UNSIGNED NOT NULL,
		managed_by_admin_id INT UNSIGNED NOT NULL,
		bill_number VARCHAR(50) NOT NULL,
		pickup_address VARCHAR(255) NOT NULL,
		delivery_address VARCHAR(255) NOT NULL,
		status ENUM('Pending', 'In Transit', 'Delivered', 'Cancelled') NOT NULL DEFAULT 'Pending',
		created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		UNIQUE KEY uq_couriers_bill (bill_number),
		INDEX idx_couriers_customer (customer_id),
		INDEX idx_couriers_admin (managed_by_admin_id),
		FOREIGN KEY (customer_id) REFERENCES Users(user_id),
		FOREIGN KEY (managed_by_admin_id) REFERENCES Admins(admin_id)
	)`},
	{"Delivery_History", `
	CREATE TABLE IF NOT EXISTS Delivery_History (
		history_id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		courier_id INT UNSIGNED NOT NULL,
		old_status VARCHAR(20) NOT NULL,
		new_status VARCHAR(20) NOT NULL,
		changed_by_admin_id INT UNSIGNED NOT NULL,
		changed_by_admin_email VARCHAR(150) NOT NULL,
		changed_at DATETIME(6) NOT NULL,
		INDEX idx_history_courier (courier_id, changed_at),
		FOREIGN KEY (courier_id) REFERENCES Couriers(courier_id) ON DELETE CASCADE
	)`},
	{"Courier_Audit", `
	CREATE TABLE IF NOT EXISTS Courier_Audit (
		audit_id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		courier_id INT UNSIGNED NOT NULL,
		action_type VARCHAR(30) NOT NULL,
		old_status VARCHAR(20) NOT NULL,
		new_status VARCHAR(20) NOT NULL,
		admin_id INT UNSIGNED NOT NULL,
		admin_email VARCHAR(150) NOT NULL,
		changed_at DATETIME(6) NOT NULL,
		INDEX idx_audit_courier (courier_id, changed_at),
		FOREIGN KEY (courier_id) REFERENCES Couriers(courier_id) ON DELETE CASCADE
	)`},
	{"Comments", `
	CREATE TABLE IF NOT EXISTS Comments (
		comment_id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		courier_id INT UNSIGNED NOT NULL,
		user_id INT UNSIGNED NULL,
		comment_text VARCHAR(1000) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_comments_courier (courier_id, created_at),
		FOREIGN KEY (courier_id) REFERENCES Couriers(courier_id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES Users(user_id) ON DELETE SET NULL
	)`},
}

// EnsureSchema creates any missing tables. It never alters existing ones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, tbl := range schema {
		if _, err := db.ExecContext(ctx, tbl.query); err != nil {
			return fmt.Errorf("creating table %s: %w", tbl.name, err)
		}
	}
	return nil
}
