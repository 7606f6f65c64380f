package postgresql

import (
	"context"

	"github.com/ksusheel25/hr-management-system/internal/domain/notification"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.Repository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (company_id, employee_id, title, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return q.QueryRow(ctx, query, n.CompanyID, n.EmployeeID, n.Title, n.Message).
		Scan(&n.ID, &n.CreatedAt)
}

// ListByEmployee implements notification.Repository.
func (r *notificationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID, companyID string, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, title, message, read, created_at
		FROM notifications
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(&n.ID, &n.CompanyID, &n.EmployeeID, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead implements notification.Repository. Marking an unknown or foreign
// notification is a no-op.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id, employeeID, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND employee_id = $2 AND company_id = $3
	`

	_, err := q.Exec(ctx, query, id, employeeID, companyID)
	return err
}
