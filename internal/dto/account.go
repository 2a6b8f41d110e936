package dto

import (
	"time"

	"couriertrack/internal/domain"
)

type CreateUserRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type CreateAdminRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
	Role  *string `json:"role"`
}

type UserResponse struct {
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminResponse struct {
	AdminID   uint      `json:"admin_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = NewUserResponse(u)
	}
	return out
}

func NewAdminResponse(a domain.Admin) AdminResponse {
	return AdminResponse{
		AdminID:   a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

func NewAdminResponses(admins []domain.Admin) []AdminResponse {
	out := make([]AdminResponse, len(admins))
	for i, a := range admins {
		out[i] = NewAdminResponse(a)
	}
	return out
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
