package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		valid  bool
	}{
		{name: "pending", status: StatusPending, valid: true},
		{name: "in transit", status: StatusInTransit, valid: true},
		{name: "delivered", status: StatusDelivered, valid: true},
		{name: "cancelled", status: StatusCancelled, valid: true},
		{name: "empty", status: "", valid: false},
		{name: "lowercase is not canonical", status: "delivered", valid: false},
		{name: "unknown", status: "Lost", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected Status
		ok       bool
	}{
		{raw: "Pending", expected: StatusPending, ok: true},
		{raw: "in transit", expected: StatusInTransit, ok: true},
		{raw: "  DELIVERED ", expected: StatusDelivered, ok: true},
		{raw: "Cancelled", expected: StatusCancelled, ok: true},
		{raw: "InTransit", ok: false},
		{raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			status, ok := ParseStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestStatuses_ReturnsCopy(t *testing.T) {
	all := Statuses()
	assert.Equal(t, []Status{StatusPending, StatusInTransit, StatusDelivered, StatusCancelled}, all)

	all[0] = "Mutated"
	assert.Equal(t, StatusPending, Statuses()[0])
}

func TestCourier_Creation(t *testing.T) {
	now := time.Now()
	adminEmail := "a@x.com"

	courier := Courier{
		ID:              1,
		CustomerID:      10,
		AdminID:         2,
		BillNumber:      "BILL-2001",
		PickupAddress:   "1 Pickup Rd",
		DeliveryAddress: "2 Delivery Ave",
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		CustomerName:    "John Doe",
		AdminEmail:      &adminEmail,
	}

	assert.Equal(t, uint(1), courier.ID)
	assert.Equal(t, "BILL-2001", courier.BillNumber)
	assert.Equal(t, StatusPending, courier.Status)
	assert.Nil(t, courier.AdminName)
	assert.Equal(t, "a@x.com", *courier.AdminEmail)
}

func TestComment_IsSystem(t *testing.T) {
	userID := uint(5)

	assert.True(t, Comment{Text: DeliveredCommentText}.IsSystem())
	assert.False(t, Comment{UserID: &userID, Text: "where is my parcel?"}.IsSystem())
}
