package dto

import (
	"time"

	"couriertrack/internal/domain"
)

type CourierResponse struct {
	CourierID       uint      `json:"courier_id"`
	CustomerID      uint      `json:"customer_id"`
	AdminID         uint      `json:"managed_by_admin_id"`
	BillNumber      string    `json:"bill_number"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	AdminName       *string   `json:"admin_name"`
	AdminEmail      *string   `json:"admin_email"`
}

type StatusResponse struct {
	CourierID uint   `json:"courier_id"`
	Status    string `json:"status"`
}

type HistoryResponse struct {
	HistoryID  uint      `json:"history_id"`
	CourierID  uint      `json:"courier_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	AdminID    uint      `json:"changed_by_admin_id"`
	AdminEmail string    `json:"changed_by_admin_email"`
	ChangedAt  time.Time `json:"changed_at"`
}

type AuditResponse struct {
	AuditID    uint      `json:"audit_id"`
	CourierID  uint      `json:"courier_id"`
	ActionType string    `json:"action_type"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	AdminID    uint      `json:"admin_id"`
	AdminEmail string    `json:"admin_email"`
	ChangedAt  time.Time `json:"changed_at"`
}

type CommentResponse struct {
	CommentID   uint      `json:"comment_id"`
	CourierID   uint      `json:"courier_id"`
	UserID      *uint     `json:"user_id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	UserName    *string   `json:"user_name"`
	UserEmail   *string   `json:"user_email"`
	System      bool      `json:"system"`
}

type LogsResponse struct {
	CourierID       uint              `json:"courier_id"`
	DeliveryHistory []HistoryResponse `json:"delivery_history"`
	AuditLogs       []AuditResponse   `json:"audit_logs"`
	Comments        []CommentResponse `json:"comments"`
}

type DeletedCourierResponse struct {
	CourierID       uint   `json:"courier_id"`
	BillNumber      string `json:"bill_number"`
	HistoryDeleted  int64  `json:"history_deleted"`
	AuditDeleted    int64  `json:"audit_deleted"`
	CommentsDeleted int64  `json:"comments_deleted"`
}

type CourierCountResponse struct {
	CustomerID   uint `json:"customer_id"`
	CourierCount int  `json:"courier_count"`
}

func NewCourierResponse(c domain.Courier) CourierResponse {
	return CourierResponse{
		CourierID:       c.ID,
		CustomerID:      c.CustomerID,
		AdminID:         c.AdminID,
		BillNumber:      c.BillNumber,
		PickupAddress:   c.PickupAddress,
		DeliveryAddress: c.DeliveryAddress,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		CustomerName:    c.CustomerName,
		CustomerEmail:   c.CustomerEmail,
		AdminName:       c.AdminName,
		AdminEmail:      c.AdminEmail,
	}
}

func NewCourierResponses(couriers []domain.Courier) []CourierResponse {
	out := make([]CourierResponse, len(couriers))
	for i, c := range couriers {
		out[i] = NewCourierResponse(c)
	}
	return out
}

func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID:   c.ID,
		CourierID:   c.CourierID,
		UserID:      c.UserID,
		CommentText: c.Text,
		CreatedAt:   c.CreatedAt,
		UserName:    c.UserName,
		UserEmail:   c.UserEmail,
		System:      c.IsSystem(),
	}
}

func NewCommentResponses(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = NewCommentResponse(c)
	}
	return out
}

func NewLogsResponse(logs domain.CourierLogs) LogsResponse {
	resp := LogsResponse{
		CourierID:       logs.CourierID,
		DeliveryHistory: make([]HistoryResponse, len(logs.History)),
		AuditLogs:       make([]AuditResponse, len(logs.Audit)),
		Comments:        NewCommentResponses(logs.Comments),
	}
	for i, h := range logs.History {
		resp.DeliveryHistory[i] = HistoryResponse{
			HistoryID:  h.ID,
			CourierID:  h.CourierID,
			OldStatus:  string(h.OldStatus),
			NewStatus:  string(h.NewStatus),
			AdminID:    h.AdminID,
			AdminEmail: h.AdminEmail,
			ChangedAt:  h.ChangedAt,
		}
	}
	for i, a := range logs.Audit {
		resp.AuditLogs[i] = AuditResponse{
			AuditID:    a.ID,
			CourierID:  a.CourierID,
			ActionType: a.ActionType,
			OldStatus:  string(a.OldStatus),
			NewStatus:  string(a.NewStatus),
			AdminID:    a.AdminID,
			AdminEmail: a.AdminEmail,
			ChangedAt:  a.ChangedAt,
		}
	}
	return resp
}

func NewDeletedCourierResponse(s domain.DeletedSummary) DeletedCourierResponse {
	return DeletedCourierResponse{
		CourierID:       s.CourierID,
		BillNumber:      s.BillNumber,
		HistoryDeleted:  s.HistoryDeleted,
		AuditDeleted:    s.AuditDeleted,
		CommentsDeleted: s.CommentsDeleted,
	}
}
