package biometric

import "time"

// EventLog is the raw record received from a biometric device, kept for
// auditing and replay. Events are deduplicated on (company_id, device_log_id).
type EventLog struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	DeviceLogID string
	EventType   string
	Source      string
	Timestamp   time.Time
	Processed   bool
	CreatedAt   time.Time
}
