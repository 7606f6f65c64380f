package attendance

import (
	"time"

	"github.com/ksusheel25/hr-management-system/internal/pkg/validator"
)

// SessionResponse is returned by manual check-in/check-out.
type SessionResponse struct {
	EmployeeID    string  `json:"employee_id"`
	State         string  `json:"state"`
	CheckInTime   *string `json:"check_in_time,omitempty"`
	CheckOutTime  *string `json:"check_out_time,omitempty"`
	WorkedMinutes *int64  `json:"worked_minutes,omitempty"`
}

// RangeRequest bounds the self-service attendance report.
type RangeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

const maxRangeDays = 90

// Validate checks the range is well-formed and at most 90 days.
func (r RangeRequest) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a YYYY-MM-DD date"})
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a YYYY-MM-DD date"})
	}
	if okFrom && okTo {
		if from.After(to) {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be less than or equal to to"})
		} else if int(to.Sub(from).Hours()/24)+1 > maxRangeDays {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "range cannot exceed 90 days"})
		}
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

// DailyReport is one row of the range report.
type DailyReport struct {
	Date             string  `json:"date"`
	Status           string  `json:"status"`
	Mode             *string `json:"mode,omitempty"`
	WorkedMinutes    int64   `json:"worked_minutes"`
	WorkedHours      float64 `json:"worked_hours"`
	RequiredMinutes  int64   `json:"required_minutes"`
	ShortfallMinutes int64   `json:"shortfall_minutes"`
	LateArrival      bool    `json:"late_arrival"`
}

// RangeReport aggregates an employee's attendance over a date range.
type RangeReport struct {
	EmployeeCode       string        `json:"employee_code"`
	From               string        `json:"from"`
	To                 string        `json:"to"`
	WorkingDays        int           `json:"working_days"`
	TotalPresent       int           `json:"total_present"`
	TotalAbsent        int           `json:"total_absent"`
	TotalWfhDays       int           `json:"total_wfh_days"`
	TotalOfficeDays    int           `json:"total_office_days"`
	TotalWorkedMinutes int64         `json:"total_worked_minutes"`
	Days               []DailyReport `json:"days"`
}

// WorkPolicyResponse mirrors the policy row toward the API.
type WorkPolicyResponse struct {
	CompanyID               string `json:"company_id"`
	MinimumWorkingMinutes   int    `json:"minimum_working_minutes"`
	HalfDayAllowed          bool   `json:"half_day_allowed"`
	HalfDayThresholdMinutes int    `json:"half_day_threshold_minutes"`
	AllowedWfhPerMonth      int    `json:"allowed_wfh_per_month"`
	AutoDeduct              bool   `json:"auto_deduct"`
}

// WorkPolicyUpdateRequest carries only the fields the caller wants changed.
type WorkPolicyUpdateRequest struct {
	MinimumWorkingMinutes   *int  `json:"minimum_working_minutes"`
	HalfDayAllowed          *bool `json:"half_day_allowed"`
	HalfDayThresholdMinutes *int  `json:"half_day_threshold_minutes"`
	AllowedWfhPerMonth      *int  `json:"allowed_wfh_per_month"`
	AutoDeduct              *bool `json:"auto_deduct"`
}

func (r WorkPolicyUpdateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.MinimumWorkingMinutes != nil && *r.MinimumWorkingMinutes <= 0 {
		errs = append(errs, validator.ValidationError{Field: "minimum_working_minutes", Message: "must be positive"})
	}
	if r.HalfDayThresholdMinutes != nil && *r.HalfDayThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "half_day_threshold_minutes", Message: "must not be negative"})
	}
	if r.AllowedWfhPerMonth != nil && *r.AllowedWfhPerMonth < 0 {
		errs = append(errs, validator.ValidationError{Field: "allowed_wfh_per_month", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
