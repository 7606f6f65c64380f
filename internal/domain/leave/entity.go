package leave

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// WfhLeaveType is the leave-type literal treated as work-from-home rather
// than absence; it never consumes leave balance.
const WfhLeaveType = "WFH"

// IsWfhLeaveType matches the WFH leave type case-insensitively after trim.
func IsWfhLeaveType(leaveType string) bool {
	return strings.EqualFold(strings.TrimSpace(leaveType), WfhLeaveType)
}

type Request struct {
	ID         string
	CompanyID  string
	EmployeeID string
	FromDate   time.Time
	ToDate     time.Time
	LeaveType  string
	Reason     *string
	Status     Status
	ApproverID *string
	Remarks    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Balance is the per-employee, per-leave-type, per-year ledger row.
// Remaining is kept materialized (allocated - used, floored at zero).
type Balance struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  string
	Year       int
	Allocated  int
	Used       int
	Remaining  int
}
