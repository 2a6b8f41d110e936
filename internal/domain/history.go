package domain

import "time"

const AuditActionStatusUpdate = "STATUS_UPDATE"

type DeliveryHistoryEntry struct {
	ID         uint
	CourierID  uint
	OldStatus  Status
	NewStatus  Status
	AdminID    uint
	AdminEmail string
	ChangedAt  time.Time
}

type AuditEntry struct {
	ID         uint
	CourierID  uint
	ActionType string
	OldStatus  Status
	NewStatus  Status
	AdminID    uint
	AdminEmail string
	ChangedAt  time.Time
}

type CourierLogs struct {
	CourierID uint
	History   []DeliveryHistoryEntry
	Audit     []AuditEntry
	Comments  []Comment
}

type StatusChangedEvent struct {
	EventID    string    `json:"eventId"`
	CourierID  uint      `json:"courierId"`
	BillNumber string    `json:"billNumber"`
	OldStatus  Status    `json:"oldStatus"`
	NewStatus  Status    `json:"newStatus"`
	AdminEmail string    `json:"adminEmail"`
	OccurredAt time.Time `json:"occurredAt"`
}
