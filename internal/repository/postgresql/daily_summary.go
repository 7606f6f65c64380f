package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type dailySummaryRepositoryImpl struct {
	db *database.DB
}

func NewDailySummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &dailySummaryRepositoryImpl{db: db}
}

const summaryColumns = `
	id, company_id, employee_id, date, worked_minutes, office_worked_minutes,
	office_present, remote_day, late_minutes, early_exit_minutes, late_arrival,
	early_exit, status, mode, finalized, overtime_minutes, created_at, updated_at
`

// GetByEmployeeAndDate implements attendance.SummaryRepository.
func (r *dailySummaryRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, companyID string, employeeID string, date time.Time) (*attendance.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM attendance_daily_summaries
		WHERE company_id = $1 AND employee_id = $2 AND date = $3
	`

	summary, err := scanSummaryRow(q.QueryRow(ctx, query, companyID, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// ListByDate implements attendance.SummaryRepository.
func (r *dailySummaryRepositoryImpl) ListByDate(ctx context.Context, companyID string, date time.Time) ([]attendance.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM attendance_daily_summaries
		WHERE company_id = $1 AND date = $2
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ListByEmployeeBetween implements attendance.SummaryRepository.
func (r *dailySummaryRepositoryImpl) ListByEmployeeBetween(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]attendance.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM attendance_daily_summaries
		WHERE company_id = $1 AND employee_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Upsert implements attendance.SummaryRepository.
func (r *dailySummaryRepositoryImpl) Upsert(ctx context.Context, summary attendance.DailySummary) (attendance.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_daily_summaries (
			company_id, employee_id, date, worked_minutes, office_worked_minutes,
			office_present, remote_day, late_minutes, early_exit_minutes, late_arrival,
			early_exit, status, mode, finalized, overtime_minutes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (company_id, employee_id, date) DO UPDATE SET
			worked_minutes = EXCLUDED.worked_minutes,
			office_worked_minutes = EXCLUDED.office_worked_minutes,
			office_present = EXCLUDED.office_present,
			remote_day = EXCLUDED.remote_day,
			late_minutes = EXCLUDED.late_minutes,
			early_exit_minutes = EXCLUDED.early_exit_minutes,
			late_arrival = EXCLUDED.late_arrival,
			early_exit = EXCLUDED.early_exit,
			status = EXCLUDED.status,
			mode = EXCLUDED.mode,
			finalized = EXCLUDED.finalized,
			overtime_minutes = EXCLUDED.overtime_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		summary.CompanyID, summary.EmployeeID, summary.Date, summary.WorkedMinutes,
		summary.OfficeWorkedMinutes, summary.OfficePresent, summary.RemoteDay,
		summary.LateMinutes, summary.EarlyExitMinutes, summary.LateArrival,
		summary.EarlyExit, summary.Status, modeValue(summary.Mode), summary.Finalized,
		summary.OvertimeMinutes,
	).Scan(&summary.ID, &summary.CreatedAt, &summary.UpdatedAt)
	if err != nil {
		return attendance.DailySummary{}, err
	}
	return summary, nil
}

func modeValue(mode *attendance.Mode) *string {
	if mode == nil {
		return nil
	}
	s := string(*mode)
	return &s
}

func scanSummaryRow(row pgx.Row) (attendance.DailySummary, error) {
	var summary attendance.DailySummary
	var mode *string
	err := row.Scan(
		&summary.ID, &summary.CompanyID, &summary.EmployeeID, &summary.Date,
		&summary.WorkedMinutes, &summary.OfficeWorkedMinutes, &summary.OfficePresent,
		&summary.RemoteDay, &summary.LateMinutes, &summary.EarlyExitMinutes,
		&summary.LateArrival, &summary.EarlyExit, &summary.Status, &mode,
		&summary.Finalized, &summary.OvertimeMinutes, &summary.CreatedAt, &summary.UpdatedAt,
	)
	if err != nil {
		return attendance.DailySummary{}, err
	}
	if mode != nil {
		m := attendance.Mode(*mode)
		summary.Mode = &m
	}
	return summary, nil
}

func scanSummaries(rows pgx.Rows) ([]attendance.DailySummary, error) {
	var summaries []attendance.DailySummary
	for rows.Next() {
		summary, err := scanSummaryRow(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
