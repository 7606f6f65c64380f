package leave

import (
	"time"

	"github.com/ksusheel25/hr-management-system/internal/pkg/validator"
)

type ApplyRequest struct {
	LeaveType string  `json:"leave_type"`
	FromDate  string  `json:"from_date"`
	ToDate    string  `json:"to_date"`
	Reason    *string `json:"reason"`
}

func (r ApplyRequest) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required"})
	}
	from, okFrom := validator.IsValidDate(r.FromDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be a YYYY-MM-DD date"})
	}
	to, okTo := validator.IsValidDate(r.ToDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be a YYYY-MM-DD date"})
	}
	if okFrom && okTo && from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be less than or equal to to_date"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

type DecisionRequest struct {
	Remarks *string `json:"remarks"`
}

type Response struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	FromDate   string  `json:"from_date"`
	ToDate     string  `json:"to_date"`
	LeaveType  string  `json:"leave_type"`
	Reason     *string `json:"reason,omitempty"`
	Status     Status  `json:"status"`
	ApproverID *string `json:"approver_id,omitempty"`
	Remarks    *string `json:"remarks,omitempty"`
}

func ToResponse(r Request) Response {
	return Response{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		FromDate:   r.FromDate.Format("2006-01-02"),
		ToDate:     r.ToDate.Format("2006-01-02"),
		LeaveType:  r.LeaveType,
		Reason:     r.Reason,
		Status:     r.Status,
		ApproverID: r.ApproverID,
		Remarks:    r.Remarks,
	}
}
