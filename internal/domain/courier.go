package domain

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusInTransit Status = "In Transit"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

var statuses = []Status{StatusPending, StatusInTransit, StatusDelivered, StatusCancelled}

// Statuses returns every valid courier status in lifecycle order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	for _, st := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

// ParseStatus matches a status name case-insensitively, ignoring
// surrounding whitespace.
func ParseStatus(raw string) (Status, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, st := range statuses {
		if strings.EqualFold(trimmed, string(st)) {
			return st, true
		}
	}
	return "", false
}

type Courier struct {
	ID              uint
	CustomerID      uint
	AdminID         uint
	BillNumber      string
	PickupAddress   string
	DeliveryAddress string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time

	CustomerName  string
	CustomerEmail string
	AdminName     *string
	AdminEmail    *string
}

type DeletedSummary struct {
	CourierID       uint
	BillNumber      string
	HistoryDeleted  int64
	AuditDeleted    int64
	CommentsDeleted int64
}
