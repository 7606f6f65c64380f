package leave

import (
	"context"
	"time"
)

// RequestRepository stores leave requests.
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)

	GetByID(ctx context.Context, id string, companyID string) (Request, error)

	// UpdateStatus persists a decision on a request
	UpdateStatus(ctx context.Context, request Request) (Request, error)

	// ListByEmployee returns one employee's requests, newest first
	ListByEmployee(ctx context.Context, companyID string, employeeID string) ([]Request, error)

	// ListPendingByManager returns pending requests whose requester reports
	// to the given manager
	ListPendingByManager(ctx context.Context, companyID string, managerEmployeeID string) ([]Request, error)

	// ListApprovedForDate returns approved requests overlapping the date
	ListApprovedForDate(ctx context.Context, companyID string, date time.Time) ([]Request, error)

	// ListApprovedOverlappingForEmployee returns one employee's approved
	// requests overlapping [from, to]
	ListApprovedOverlappingForEmployee(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]Request, error)

	// ExistsOverlapping reports whether a pending or approved request of the
	// employee overlaps [from, to]
	ExistsOverlapping(ctx context.Context, companyID string, employeeID string, from, to time.Time) (bool, error)
}

// BalanceRepository stores the leave-balance ledger.
type BalanceRepository interface {
	// GetForUpdate loads the balance row under a row-level exclusive lock;
	// must be called inside a transaction. Returns nil when no row exists.
	GetForUpdate(ctx context.Context, companyID string, employeeID string, leaveType string, year int) (*Balance, error)

	Save(ctx context.Context, balance Balance) error
}
