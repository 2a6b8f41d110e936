package dto

type CreateCourierRequest struct {
	CustomerID      uint   `json:"customer_id"`
	AdminID         uint   `json:"admin_id"`
	BillNumber      string `json:"bill_number"`
	PickupAddress   string `json:"pickup_address"`
	DeliveryAddress string `json:"delivery_address"`
}

type UpdateStatusRequest struct {
	NewStatus           string `json:"new_status"`
	ChangedByAdminEmail string `json:"changed_by_admin_email"`
}

type AddCommentRequest struct {
	UserID      uint   `json:"user_id"`
	CommentText string `json:"comment_text"`
}
