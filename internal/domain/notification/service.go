package notification

import "context"

type Service interface {
	// Notify stores an in-app notification for the employee; failures are
	// logged by callers, never propagated into business flows
	Notify(ctx context.Context, companyID, employeeID, title, message string) error

	ListMine(ctx context.Context, limit int) ([]Notification, error)

	MarkRead(ctx context.Context, id string) error
}
