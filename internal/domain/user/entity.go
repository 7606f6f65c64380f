package user

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
	RoleDevice   = "DEVICE"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	EmployeeID   *string
	CompanyID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
