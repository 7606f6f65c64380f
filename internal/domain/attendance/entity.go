package attendance

import (
	"time"
)

type EventType string

const (
	EventCheckIn     EventType = "CHECK_IN"
	EventCheckOut    EventType = "CHECK_OUT"
	EventOfficeEntry EventType = "OFFICE_ENTRY"
	EventOfficeExit  EventType = "OFFICE_EXIT"
)

type Source string

const (
	SourceRemote    Source = "REMOTE"
	SourceBiometric Source = "BIOMETRIC"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusOnLeave Status = "ON_LEAVE"
	StatusHoliday Status = "HOLIDAY"
	StatusWeekOff Status = "WEEK_OFF"
)

type Mode string

const (
	ModeOffice Mode = "OFFICE"
	ModeWFH    Mode = "WFH"
)

// Event is an immutable presence fact. DeviceLogID is globally unique per
// company and is the sole replay-protection guarantee.
type Event struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	EventType   EventType
	Source      Source
	EventTime   time.Time
	DeviceLogID string
	CreatedAt   time.Time
}

// DailySummary is the authoritative per-employee, per-day attendance fact.
// Once Finalized is set, no job may overwrite the row.
type DailySummary struct {
	ID                  string
	CompanyID           string
	EmployeeID          string
	Date                time.Time
	WorkedMinutes       int64
	OfficeWorkedMinutes int64
	OfficePresent       bool
	RemoteDay           bool
	LateMinutes         int64
	EarlyExitMinutes    int64
	LateArrival         bool
	EarlyExit           bool
	Status              Status
	Mode                *Mode
	Finalized           bool
	OvertimeMinutes     int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OfficePresenceSummary tracks one office-floor visit. At most one row per
// employee may be open (OfficeExitTime nil) at a time.
type OfficePresenceSummary struct {
	ID                    string
	CompanyID             string
	EmployeeID            string
	BusinessDate          time.Time
	OfficeEntryTime       time.Time
	OfficeExitTime        *time.Time
	OfficeDurationMinutes int64
}

// DefaultMinimumWorkingMinutes is the full-day threshold used when a tenant
// has not configured one.
const DefaultMinimumWorkingMinutes = 480

// WorkPolicy is per-tenant attendance configuration; exactly one row per
// company, created with defaults on first access.
type WorkPolicy struct {
	ID                      string
	CompanyID               string
	MinimumWorkingMinutes   int
	HalfDayAllowed          bool
	HalfDayThresholdMinutes int
	AllowedWfhPerMonth      int
	AutoDeduct              bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// NewDailySummary returns a zeroed, non-finalized summary for the given day.
func NewDailySummary(companyID, employeeID string, date time.Time) DailySummary {
	return DailySummary{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       date,
		Status:     StatusAbsent,
	}
}
