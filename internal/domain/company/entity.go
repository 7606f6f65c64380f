package company

import "time"

// Company is a tenant. Timezone holds an IANA zone name; blank or invalid
// values fall back to UTC wherever the engine resolves it.
type Company struct {
	ID        string
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
