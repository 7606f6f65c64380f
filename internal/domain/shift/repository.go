package shift

import "context"

type Repository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)

	GetByID(ctx context.Context, id string, companyID string) (Shift, error)

	List(ctx context.Context, companyID string) ([]Shift, error)

	Update(ctx context.Context, shift Shift) (Shift, error)

	Delete(ctx context.Context, id string, companyID string) error
}
