package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for attendance events. All methods
// take companyID to prevent cross-company data access.
type EventRepository interface {
	// Create stores a new immutable event
	Create(ctx context.Context, event Event) (Event, error)

	// ExistsByDeviceLogID reports whether an event with the device log id was
	// already recorded for the company (replay protection)
	ExistsByDeviceLogID(ctx context.Context, companyID string, deviceLogID string) (bool, error)

	// FindLatestOpenSession returns the latest CHECK_IN with no later
	// CHECK_OUT, or nil when the employee has no open session
	FindLatestOpenSession(ctx context.Context, companyID string, employeeID string) (*Event, error)

	// ListByTypesBetween returns the company's events of the given types in
	// [from, to), ordered by event time ascending
	ListByTypesBetween(ctx context.Context, companyID string, types []EventType, from, to time.Time) ([]Event, error)

	// ListByEmployeeAndTypesBetween is the single-employee variant used by
	// the self-service range report
	ListByEmployeeAndTypesBetween(ctx context.Context, companyID string, employeeID string, types []EventType, from, to time.Time) ([]Event, error)

	// ListOfficeEntryEmployeeIDs returns the distinct employees with a
	// BIOMETRIC OFFICE_ENTRY event in [from, to)
	ListOfficeEntryEmployeeIDs(ctx context.Context, companyID string, from, to time.Time) ([]string, error)
}

// SummaryRepository defines data access for daily summaries.
type SummaryRepository interface {
	// GetByEmployeeAndDate returns nil when no summary exists yet
	GetByEmployeeAndDate(ctx context.Context, companyID string, employeeID string, date time.Time) (*DailySummary, error)

	// ListByDate returns all of the company's summaries for one date
	ListByDate(ctx context.Context, companyID string, date time.Time) ([]DailySummary, error)

	// ListByEmployeeBetween returns one employee's summaries over a date
	// range, ordered by date ascending
	ListByEmployeeBetween(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]DailySummary, error)

	// Upsert inserts or overwrites the (company, employee, date) row
	Upsert(ctx context.Context, summary DailySummary) (DailySummary, error)
}

// OfficePresenceRepository tracks office-floor visits.
type OfficePresenceRepository interface {
	Create(ctx context.Context, summary OfficePresenceSummary) (OfficePresenceSummary, error)

	// FindLatestOpen returns the newest visit with no exit time, or nil
	FindLatestOpen(ctx context.Context, companyID string, employeeID string) (*OfficePresenceSummary, error)

	// Close sets the exit time and duration on an open visit
	Close(ctx context.Context, summary OfficePresenceSummary) error

	// WorkedMinutesByDate aggregates closed-visit minutes per employee for a
	// business date
	WorkedMinutesByDate(ctx context.Context, companyID string, date time.Time) (map[string]int64, error)
}

// WorkPolicyRepository stores the per-tenant policy row.
type WorkPolicyRepository interface {
	// GetByCompanyID returns nil when the tenant has no policy row yet
	GetByCompanyID(ctx context.Context, companyID string) (*WorkPolicy, error)

	Create(ctx context.Context, policy WorkPolicy) (WorkPolicy, error)

	Update(ctx context.Context, policy WorkPolicy) (WorkPolicy, error)
}
