package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByEmployee(ctx context.Context, employeeID, companyID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, employeeID, companyID string) error
}
