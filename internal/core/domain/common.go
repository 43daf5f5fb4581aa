package domain

import "time"

// AuditFields holds the standard audit columns shared by every record.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// UserRole distinguishes managers (elevated, act across all clients) from
// employees (limited to their assigned clients).
type UserRole string

const (
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// Actor is the authenticated party performing an operation. It is threaded
// explicitly through every service call instead of living in ambient
// request state.
type Actor struct {
	UserID string
	Role   UserRole
}

// IsManager reports whether the actor holds the elevated role.
func (a Actor) IsManager() bool {
	return a.Role == RoleManager
}
