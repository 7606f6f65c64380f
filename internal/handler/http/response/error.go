package response

import (
	"errors"
	"net/http"

	"github.com/ksusheel25/hr-management-system/internal/domain/attendance"
	"github.com/ksusheel25/hr-management-system/internal/domain/biometric"
	"github.com/ksusheel25/hr-management-system/internal/domain/company"
	"github.com/ksusheel25/hr-management-system/internal/domain/employee"
	"github.com/ksusheel25/hr-management-system/internal/domain/leave"
	"github.com/ksusheel25/hr-management-system/internal/domain/shift"
	"github.com/ksusheel25/hr-management-system/internal/domain/user"
	"github.com/ksusheel25/hr-management-system/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, user.ErrUserNotFound):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, company.ErrCompanyContextMissing):
		Unauthorized(w, "Missing company context")

	// Attendance errors
	case errors.Is(err, attendance.ErrOpenSessionExists):
		Conflict(w, "An open attendance session already exists")
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open check-in session found")
	case errors.Is(err, attendance.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, attendance.ErrNotSelf):
		Forbidden(w, "Attendance actions are limited to the authenticated employee")
	case errors.Is(err, attendance.ErrNoOpenOfficeVisit):
		Conflict(w, "No open office entry found for exit event")
	case errors.Is(err, attendance.ErrInvalidRange):
		BadRequest(w, "Invalid attendance date range", nil)
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Daily summary not found")

	// Biometric errors
	case errors.Is(err, biometric.ErrDuplicateDeviceLog):
		Conflict(w, "Device log already processed")
	case errors.Is(err, biometric.ErrUnknownEventType):
		BadRequest(w, "Unknown biometric event type", nil)

	// Leave errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotCancellable):
		Conflict(w, "Leave request can no longer be cancelled")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrInsufficientLeaveBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrBalanceNotConfigured):
		BadRequest(w, "Leave balance not configured for requested year", nil)
	case errors.Is(err, leave.ErrNotRequester):
		Forbidden(w, "Only the requesting employee can cancel this leave")
	case errors.Is(err, leave.ErrNotReportingManager):
		Forbidden(w, "Only the reporting manager can decide this leave request")

	// Roster errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
