package domain

import "time"

// Identity is a provisioned account that may authenticate against the service.
// Records are read-only for the auth core; provisioning happens out of band.
type Identity struct {
	Username     string
	PasswordHash string
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
