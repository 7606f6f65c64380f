package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ksusheel25/hr-management-system/internal/domain/shift"
)

// Employee is the roster row the engine consumes. The engine never creates
// employees; it reads the active flag, shift assignment and WFH balance, and
// only ever writes RemainingWfhBalance (reconciliation auto-deduction).
type Employee struct {
	ID                  string
	CompanyID           string
	UserID              *string
	EmployeeCode        string
	FirstName           string
	LastName            string
	Email               string
	Active              bool
	ManagerID           *string
	ShiftID             *string
	RemainingWfhBalance int
	BaseSalary          *decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Populated by ListWithShift
	Shift *shift.Shift
}
