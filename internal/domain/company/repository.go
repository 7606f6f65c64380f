package company

import "context"

type Repository interface {
	// List returns all tenants; the batch jobs iterate it in order
	List(ctx context.Context) ([]Company, error)

	GetByID(ctx context.Context, id string) (Company, error)
}
