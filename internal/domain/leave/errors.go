package leave

import "errors"

// Leave domain errors
var (
	ErrRequestNotFound          = errors.New("leave request not found")
	ErrAlreadyProcessed         = errors.New("only pending leave requests can be approved or rejected")
	ErrNotCancellable           = errors.New("only pending or approved leave requests can be cancelled")
	ErrOverlappingRequest       = errors.New("overlapping leave request already exists in requested date range")
	ErrInsufficientLeaveBalance = errors.New("insufficient leave balance")
	ErrBalanceNotConfigured     = errors.New("leave balance not configured for requested year")
	ErrNotRequester             = errors.New("only the requesting employee can cancel leave")
	ErrNotReportingManager      = errors.New("only the reporting manager can approve or reject this leave request")
)
