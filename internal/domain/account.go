package domain

import "time"

const DefaultAdminRole = "Manager"

type User struct {
	ID        uint
	Name      string
	Email     string
	Phone     *string
	Address   *string
	CreatedAt time.Time
}

type Admin struct {
	ID        uint
	Name      string
	Email     string
	Phone     *string
	Role      string
	CreatedAt time.Time
}
