package postgresql

import (
	"context"

	"github.com/ksusheel25/hr-management-system/internal/domain/biometric"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type biometricLogRepositoryImpl struct {
	db *database.DB
}

func NewBiometricLogRepository(db *database.DB) biometric.Repository {
	return &biometricLogRepositoryImpl{db: db}
}

// Create implements biometric.Repository.
func (r *biometricLogRepositoryImpl) Create(ctx context.Context, log *biometric.EventLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO biometric_event_logs (company_id, employee_id, device_log_id, event_type, source, event_timestamp, processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	return q.QueryRow(ctx, query,
		log.CompanyID, log.EmployeeID, log.DeviceLogID, log.EventType, log.Source, log.Timestamp, log.Processed,
	).Scan(&log.ID, &log.CreatedAt)
}

// ExistsByDeviceLogID implements biometric.Repository.
func (r *biometricLogRepositoryImpl) ExistsByDeviceLogID(ctx context.Context, companyID, deviceLogID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM biometric_event_logs
			WHERE company_id = $1 AND device_log_id = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, deviceLogID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// MarkProcessed implements biometric.Repository.
func (r *biometricLogRepositoryImpl) MarkProcessed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE biometric_event_logs SET processed = TRUE WHERE id = $1`

	_, err := q.Exec(ctx, query, id)
	return err
}
