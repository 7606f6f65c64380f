package attendance

import "errors"

// Attendance domain errors
var (
	// Session errors
	ErrOpenSessionExists = errors.New("open attendance session already exists for employee")
	ErrNoOpenSession     = errors.New("no open check-in session found for employee")
	ErrEmployeeInactive  = errors.New("employee is inactive and cannot check in")

	// General errors
	ErrSummaryNotFound   = errors.New("daily summary not found")
	ErrNotSelf           = errors.New("employees can only perform attendance actions for themselves")
	ErrNoOpenOfficeVisit = errors.New("no open office entry found for office exit event")
	ErrInvalidRange      = errors.New("invalid attendance date range")
)
