package domain

import "time"

const DeliveredCommentText = "Thank you for choosing our courier service! Your package has been delivered successfully."

const MaxCommentLength = 1000

// Comment with a nil UserID was written by the system.
type Comment struct {
	ID        uint
	CourierID uint
	UserID    *uint
	Text      string
	CreatedAt time.Time

	UserName  *string
	UserEmail *string
}

func (c Comment) IsSystem() bool {
	return c.UserID == nil
}
