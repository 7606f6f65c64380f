package biometric

import (
	"time"

	"github.com/ksusheel25/hr-management-system/internal/pkg/validator"
)

type ReceiveEventRequest struct {
	EmployeeID  string `json:"employee_id"`
	DeviceLogID string `json:"device_log_id"`
	EventType   string `json:"event_type"`
	Timestamp   string `json:"timestamp"`
}

func (r ReceiveEventRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.DeviceLogID) {
		errs = append(errs, validator.ValidationError{Field: "device_log_id", Message: "is required"})
	}
	switch r.EventType {
	case "CHECK_IN", "CHECK_OUT", "OFFICE_ENTRY", "OFFICE_EXIT":
	default:
		errs = append(errs, validator.ValidationError{Field: "event_type", Message: "must be one of CHECK_IN, CHECK_OUT, OFFICE_ENTRY, OFFICE_EXIT"})
	}
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be an RFC3339 timestamp"})
	}
	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return ts, nil
}

type ReceiveEventResponse struct {
	Accepted  bool   `json:"accepted"`
	Duplicate bool   `json:"duplicate"`
	EventID   string `json:"event_id,omitempty"`
}
