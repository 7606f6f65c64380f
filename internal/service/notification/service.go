package notification

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/notification"
)

type NotificationServiceImpl struct {
	notification.Repository
}

func NewNotificationService(repo notification.Repository) notification.Service {
	return &NotificationServiceImpl{Repository: repo}
}

// Notify implements notification.Service.
func (s *NotificationServiceImpl) Notify(ctx context.Context, companyID, employeeID, title, message string) error {
	return s.Repository.Create(ctx, &notification.Notification{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Title:      title,
		Message:    message,
	})
}

func (s *NotificationServiceImpl) ListMine(ctx context.Context, limit int) ([]notification.Notification, error) {
	companyID, employeeID, err := selfFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Repository.ListByEmployee(ctx, employeeID, companyID, limit)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	companyID, employeeID, err := selfFromContext(ctx)
	if err != nil {
		return err
	}
	return s.Repository.MarkRead(ctx, id, employeeID, companyID)
}

func selfFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return companyID, employeeID, nil
}
