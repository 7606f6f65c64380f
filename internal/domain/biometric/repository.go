package biometric

import "context"

type Repository interface {
	Create(ctx context.Context, log *EventLog) error
	ExistsByDeviceLogID(ctx context.Context, companyID, deviceLogID string) (bool, error)
	MarkProcessed(ctx context.Context, id string) error
}
