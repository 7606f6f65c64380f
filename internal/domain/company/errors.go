package company

import "errors"

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrCompanyContextMissing = errors.New("company context is missing")
)
