package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type officePresenceRepositoryImpl struct {
	db *database.DB
}

func NewOfficePresenceRepository(db *database.DB) attendance.OfficePresenceRepository {
	return &officePresenceRepositoryImpl{db: db}
}

// Create implements attendance.OfficePresenceRepository.
func (r *officePresenceRepositoryImpl) Create(ctx context.Context, summary attendance.OfficePresenceSummary) (attendance.OfficePresenceSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO office_presence_summaries (company_id, employee_id, business_date, office_entry_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		summary.CompanyID, summary.EmployeeID, summary.BusinessDate, summary.OfficeEntryTime,
	).Scan(&summary.ID)
	if err != nil {
		return attendance.OfficePresenceSummary{}, err
	}
	return summary, nil
}

// FindLatestOpen implements attendance.OfficePresenceRepository.
func (r *officePresenceRepositoryImpl) FindLatestOpen(ctx context.Context, companyID string, employeeID string) (*attendance.OfficePresenceSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, business_date, office_entry_time, office_exit_time, office_duration_minutes
		FROM office_presence_summaries
		WHERE company_id = $1 AND employee_id = $2 AND office_exit_time IS NULL
		ORDER BY office_entry_time DESC
		LIMIT 1
	`

	var summary attendance.OfficePresenceSummary
	err := q.QueryRow(ctx, query, companyID, employeeID).Scan(
		&summary.ID, &summary.CompanyID, &summary.EmployeeID, &summary.BusinessDate,
		&summary.OfficeEntryTime, &summary.OfficeExitTime, &summary.OfficeDurationMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// Close implements attendance.OfficePresenceRepository.
func (r *officePresenceRepositoryImpl) Close(ctx context.Context, summary attendance.OfficePresenceSummary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE office_presence_summaries
		SET office_exit_time = $1, office_duration_minutes = $2
		WHERE id = $3 AND company_id = $4
	`

	tag, err := q.Exec(ctx, query, summary.OfficeExitTime, summary.OfficeDurationMinutes, summary.ID, summary.CompanyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenOfficeVisit
	}
	return nil
}

// WorkedMinutesByDate implements attendance.OfficePresenceRepository.
func (r *officePresenceRepositoryImpl) WorkedMinutesByDate(ctx context.Context, companyID string, date time.Time) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COALESCE(SUM(office_duration_minutes), 0)
		FROM office_presence_summaries
		WHERE company_id = $1 AND business_date = $2 AND office_exit_time IS NOT NULL
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	minutes := make(map[string]int64)
	for rows.Next() {
		var employeeID string
		var total int64
		if err := rows.Scan(&employeeID, &total); err != nil {
			return nil, err
		}
		minutes[employeeID] = total
	}
	return minutes, rows.Err()
}
