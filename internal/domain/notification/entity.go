package notification

import "time"

type Notification struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Title      string
	Message    string
	Read       bool
	CreatedAt  time.Time
}
