package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetForUpdate implements leave.BalanceRepository. FOR UPDATE serializes
// concurrent approvals touching the same ledger row.
func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, companyID string, employeeID string, leaveType string, year int) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, leave_type, year, allocated, used, remaining
		FROM leave_balances
		WHERE company_id = $1 AND employee_id = $2 AND leave_type = $3 AND year = $4
		FOR UPDATE
	`

	var balance leave.Balance
	err := q.QueryRow(ctx, query, companyID, employeeID, leaveType, year).Scan(
		&balance.ID, &balance.CompanyID, &balance.EmployeeID, &balance.LeaveType,
		&balance.Year, &balance.Allocated, &balance.Used, &balance.Remaining,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &balance, nil
}

// Save implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Save(ctx context.Context, balance leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET allocated = $1, used = $2, remaining = $3
		WHERE id = $4 AND company_id = $5
	`

	tag, err := q.Exec(ctx, query, balance.Allocated, balance.Used, balance.Remaining, balance.ID, balance.CompanyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotConfigured
	}
	return nil
}
