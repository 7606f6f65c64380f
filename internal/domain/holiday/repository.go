package holiday

import (
	"context"
	"time"
)

type Repository interface {
	// ExistsByDate reports whether the company has a holiday on the date
	ExistsByDate(ctx context.Context, companyID string, date time.Time) (bool, error)

	// ListBetween returns the company's holidays in [from, to] ordered by date
	ListBetween(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
}
