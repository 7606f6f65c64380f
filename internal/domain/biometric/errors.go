package biometric

import "errors"

var (
	ErrDuplicateDeviceLog = errors.New("biometric event already processed")
	ErrUnknownEventType   = errors.New("unknown biometric event type")
)
