package attendance

import (
	"context"
)

// SessionService is the real-time side of the engine: manual self-service
// check-in/check-out and the attendance range report.
type SessionService interface {
	// CheckIn opens a session for the employee; fails when one is open
	CheckIn(ctx context.Context, employeeID string) (SessionResponse, error)

	// CheckOut closes the open session and adds its minutes to the day's
	// summary; fails when no session is open
	CheckOut(ctx context.Context, employeeID string) (SessionResponse, error)

	// MyAttendance returns the per-day report for the authenticated
	// employee, re-deriving status/mode for dates without a stored summary
	MyAttendance(ctx context.Context, req RangeRequest) (RangeReport, error)
}

// WorkPolicyService manages the tenant policy row.
type WorkPolicyService interface {
	// Get returns the tenant policy, creating it with defaults on first access
	Get(ctx context.Context) (WorkPolicyResponse, error)

	Update(ctx context.Context, req WorkPolicyUpdateRequest) (WorkPolicyResponse, error)
}
