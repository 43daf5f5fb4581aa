package models

// UserRole mirrors domain.UserRole at the storage layer.
type UserRole string

const (
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// User is the users table row.
type User struct {
	UserID       string   `json:"userID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
