package biometric

import "context"

// Service ingests device events. Events are assumed durable upstream; the
// only guarantee owed here is exactly-once mapping into attendance facts.
type Service interface {
	// ReceiveEvent stores the raw log and maps it to an attendance event;
	// duplicates by (company, device log id) are acknowledged but ignored
	ReceiveEvent(ctx context.Context, companyID string, req ReceiveEventRequest) (ReceiveEventResponse, error)
}
