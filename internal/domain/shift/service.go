package shift

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)

	Get(ctx context.Context, id string) (Response, error)

	List(ctx context.Context) ([]Response, error)

	Update(ctx context.Context, id string, req CreateRequest) (Response, error)

	Delete(ctx context.Context, id string) error

	// Assign sets or clears an employee's shift; a nil ShiftID unassigns
	Assign(ctx context.Context, employeeID string, req AssignRequest) error
}
