package employee

import "context"

type Repository interface {
	// GetByID retrieves an employee with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListActive returns the company's active roster
	ListActive(ctx context.Context, companyID string) ([]Employee, error)

	// ListWithShift returns all employees with their assigned shift joined in
	// (Shift nil when unassigned)
	ListWithShift(ctx context.Context, companyID string) ([]Employee, error)

	// AssignShift sets or clears an employee's shift
	AssignShift(ctx context.Context, id string, companyID string, shiftID *string) error

	// DeductWfhBalance atomically decrements the employee's remaining WFH
	// balance by one when it is positive; it reports whether a deduction
	// happened. Concurrent callers can never drive the balance negative.
	DeductWfhBalance(ctx context.Context, id string, companyID string) (bool, error)
}
