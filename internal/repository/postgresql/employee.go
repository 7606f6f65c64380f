package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/shift"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.company_id, e.user_id, e.employee_code, e.first_name, e.last_name, e.email,
	e.active, e.manager_id, e.shift_id, e.remaining_wfh_balance, e.base_salary,
	e.created_at, e.updated_at
`

// GetByID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.id = $1 AND e.company_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.CompanyID, &emp.UserID, &emp.EmployeeCode, &emp.FirstName,
		&emp.LastName, &emp.Email, &emp.Active, &emp.ManagerID, &emp.ShiftID,
		&emp.RemainingWfhBalance, &emp.BaseSalary, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// ListActive implements employee.Repository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.company_id = $1 AND e.active
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.UserID, &emp.EmployeeCode, &emp.FirstName,
			&emp.LastName, &emp.Email, &emp.Active, &emp.ManagerID, &emp.ShiftID,
			&emp.RemainingWfhBalance, &emp.BaseSalary, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// ListWithShift implements employee.Repository.
func (r *employeeRepositoryImpl) ListWithShift(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `,
		       s.id, s.name, s.start_time, s.end_time, s.grace_minutes,
		       s.minimum_half_day_minutes, s.minimum_full_day_minutes
		FROM employees e
		LEFT JOIN shifts s ON s.id = e.shift_id AND s.company_id = e.company_id
		WHERE e.company_id = $1 AND e.active
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		var shiftID, shiftName *string
		var sh shift.Shift
		err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.UserID, &emp.EmployeeCode, &emp.FirstName,
			&emp.LastName, &emp.Email, &emp.Active, &emp.ManagerID, &emp.ShiftID,
			&emp.RemainingWfhBalance, &emp.BaseSalary, &emp.CreatedAt, &emp.UpdatedAt,
			&shiftID, &shiftName, &sh.StartTime, &sh.EndTime, &sh.GraceMinutes,
			&sh.MinimumHalfDayMinutes, &sh.MinimumFullDayMinutes,
		)
		if err != nil {
			return nil, err
		}
		if shiftID != nil {
			sh.ID = *shiftID
			sh.CompanyID = emp.CompanyID
			if shiftName != nil {
				sh.Name = *shiftName
			}
			emp.Shift = &sh
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// AssignShift implements employee.Repository.
func (r *employeeRepositoryImpl) AssignShift(ctx context.Context, id string, companyID string, shiftID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET shift_id = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, shiftID, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// DeductWfhBalance implements employee.Repository. The balance guard lives in
// the WHERE clause so concurrent deductions can never go below zero.
func (r *employeeRepositoryImpl) DeductWfhBalance(ctx context.Context, id string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET remaining_wfh_balance = remaining_wfh_balance - 1, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND remaining_wfh_balance > 0
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
