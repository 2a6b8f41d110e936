package domain

import "time"

// Read models for the reporting endpoints. Column names come from the db
// tags and are mapped by scany.

type CourierDetail struct {
	CourierID       uint      `db:"courier_id" json:"courier_id"`
	BillNumber      string    `db:"bill_number" json:"bill_number"`
	Status          string    `db:"status" json:"status"`
	PickupAddress   string    `db:"pickup_address" json:"pickup_address"`
	DeliveryAddress string    `db:"delivery_address" json:"delivery_address"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	CustomerName    string    `db:"customer_name" json:"customer_name"`
	CustomerEmail   string    `db:"customer_email" json:"customer_email"`
	AdminName       *string   `db:"admin_name" json:"admin_name"`
	AdminEmail      *string   `db:"admin_email" json:"admin_email"`
}

type DeliveredCustomer struct {
	UserID uint    `db:"user_id" json:"user_id"`
	Name   string  `db:"name" json:"name"`
	Email  string  `db:"email" json:"email"`
	Phone  *string `db:"phone" json:"phone"`
}

type StatusSummary struct {
	Status          string    `db:"status" json:"status"`
	Count           int64     `db:"count" json:"count"`
	UniqueCustomers int64     `db:"unique_customers" json:"unique_customers"`
	EarliestOrder   time.Time `db:"earliest_order" json:"earliest_order"`
	LatestOrder     time.Time `db:"latest_order" json:"latest_order"`
}

type AdminPerformance struct {
	AdminID              uint   `db:"admin_id" json:"admin_id"`
	AdminName            string `db:"admin_name" json:"admin_name"`
	AdminEmail           string `db:"admin_email" json:"admin_email"`
	TotalCouriersManaged int64  `db:"total_couriers_managed" json:"total_couriers_managed"`
	DeliveredCount       int64  `db:"delivered_count" json:"delivered_count"`
	InTransitCount       int64  `db:"in_transit_count" json:"in_transit_count"`
	PendingCount         int64  `db:"pending_count" json:"pending_count"`
	CancelledCount       int64  `db:"cancelled_count" json:"cancelled_count"`
}

type CustomerActivity struct {
	UserID        uint   `db:"user_id" json:"user_id"`
	CustomerName  string `db:"customer_name" json:"customer_name"`
	Email         string `db:"email" json:"email"`
	TotalOrders   int64  `db:"total_orders" json:"total_orders"`
	OrderStatuses string `db:"order_statuses" json:"order_statuses"`
}

type Overview struct {
	TotalCouriers    int64              `json:"total_couriers"`
	StatusSummary    []StatusSummary    `json:"status_summary"`
	AdminPerformance []AdminPerformance `json:"admin_performance"`
}
