package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.company_id, lr.employee_id, lr.from_date, lr.to_date, lr.leave_type,
	lr.reason, lr.status, lr.approver_id, lr.remarks, lr.created_at, lr.updated_at
`

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (company_id, employee_id, from_date, to_date, leave_type, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.CompanyID, request.EmployeeID, request.FromDate, request.ToDate,
		request.LeaveType, request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.Request{}, err
	}
	return request, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1 AND lr.company_id = $2
	`

	request, err := scanLeaveRequestRow(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return request, nil
}

// UpdateStatus implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approver_id = $2, remarks = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		request.Status, request.ApproverID, request.Remarks, request.ID, request.CompanyID,
	).Scan(&request.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return request, nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, companyID string, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.company_id = $1 AND lr.employee_id = $2
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

// ListPendingByManager implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListPendingByManager(ctx context.Context, companyID string, managerEmployeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id AND e.company_id = lr.company_id
		WHERE lr.company_id = $1 AND lr.status = 'PENDING' AND e.manager_id = $2
		ORDER BY lr.created_at
	`

	rows, err := q.Query(ctx, query, companyID, managerEmployeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

// ListApprovedForDate implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedForDate(ctx context.Context, companyID string, date time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.company_id = $1 AND lr.status = 'APPROVED'
		  AND lr.from_date <= $2 AND lr.to_date >= $2
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

// ListApprovedOverlappingForEmployee implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedOverlappingForEmployee(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.company_id = $1 AND lr.employee_id = $2 AND lr.status = 'APPROVED'
		  AND lr.from_date <= $4 AND lr.to_date >= $3
		ORDER BY lr.from_date
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

// ExistsOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ExistsOverlapping(ctx context.Context, companyID string, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE company_id = $1 AND employee_id = $2
			  AND status IN ('PENDING', 'APPROVED')
			  AND from_date <= $4 AND to_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, employeeID, from, to).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanLeaveRequestRow(row pgx.Row) (leave.Request, error) {
	var request leave.Request
	err := row.Scan(
		&request.ID, &request.CompanyID, &request.EmployeeID, &request.FromDate,
		&request.ToDate, &request.LeaveType, &request.Reason, &request.Status,
		&request.ApproverID, &request.Remarks, &request.CreatedAt, &request.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}
	return request, nil
}

func scanLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		request, err := scanLeaveRequestRow(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
