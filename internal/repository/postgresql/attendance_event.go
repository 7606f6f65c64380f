package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type attendanceEventRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepositoryImpl{db: db}
}

// Create implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (company_id, employee_id, event_type, source, event_time, device_log_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		event.CompanyID, event.EmployeeID, event.EventType, event.Source, event.EventTime, event.DeviceLogID,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return attendance.Event{}, err
	}
	return event, nil
}

// ExistsByDeviceLogID implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) ExistsByDeviceLogID(ctx context.Context, companyID string, deviceLogID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_events
			WHERE company_id = $1 AND device_log_id = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, deviceLogID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindLatestOpenSession implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) FindLatestOpenSession(ctx context.Context, companyID string, employeeID string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ci.id, ci.company_id, ci.employee_id, ci.event_type, ci.source, ci.event_time, ci.device_log_id, ci.created_at
		FROM attendance_events ci
		WHERE ci.company_id = $1
		  AND ci.employee_id = $2
		  AND ci.event_type = 'CHECK_IN'
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_events co
			WHERE co.company_id = ci.company_id
			  AND co.employee_id = ci.employee_id
			  AND co.event_type = 'CHECK_OUT'
			  AND co.event_time >= ci.event_time
		  )
		ORDER BY ci.event_time DESC
		LIMIT 1
	`

	var event attendance.Event
	err := q.QueryRow(ctx, query, companyID, employeeID).Scan(
		&event.ID, &event.CompanyID, &event.EmployeeID, &event.EventType,
		&event.Source, &event.EventTime, &event.DeviceLogID, &event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// ListByTypesBetween implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) ListByTypesBetween(ctx context.Context, companyID string, types []attendance.EventType, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, event_type, source, event_time, device_log_id, created_at
		FROM attendance_events
		WHERE company_id = $1
		  AND event_type = ANY($2)
		  AND event_time >= $3
		  AND event_time < $4
		ORDER BY event_time
	`

	rows, err := q.Query(ctx, query, companyID, eventTypeStrings(types), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByEmployeeAndTypesBetween implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) ListByEmployeeAndTypesBetween(ctx context.Context, companyID string, employeeID string, types []attendance.EventType, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, event_type, source, event_time, device_log_id, created_at
		FROM attendance_events
		WHERE company_id = $1
		  AND employee_id = $2
		  AND event_type = ANY($3)
		  AND event_time >= $4
		  AND event_time < $5
		ORDER BY event_time
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, eventTypeStrings(types), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListOfficeEntryEmployeeIDs implements attendance.EventRepository.
func (r *attendanceEventRepositoryImpl) ListOfficeEntryEmployeeIDs(ctx context.Context, companyID string, from, to time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id
		FROM attendance_events
		WHERE company_id = $1
		  AND event_type = 'OFFICE_ENTRY'
		  AND source = 'BIOMETRIC'
		  AND event_time >= $2
		  AND event_time < $3
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func eventTypeStrings(types []attendance.EventType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func scanEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		var event attendance.Event
		err := rows.Scan(
			&event.ID, &event.CompanyID, &event.EmployeeID, &event.EventType,
			&event.Source, &event.EventTime, &event.DeviceLogID, &event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
