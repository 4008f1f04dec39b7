package models

import (
	"time"
)

// Roles
const (
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

type User struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"user@example.com"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name" example:"John"`
	LastName  string    `json:"last_name" example:"Doe"`
	RoleName  string    `json:"role_name" example:"admin"`
	VendorID  int       `json:"vendor_id,omitempty" example:"482913004"`
	Suspended bool      `json:"suspended" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// FullName returns "First Last".
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user administers projects.
func (u User) IsAdmin() bool {
	return u.RoleName == RoleAdmin
}

type Session struct {
	UserID    int       `json:"user_id"`
	SessionID string    `json:"session_id"`
	HostName  string    `json:"host_name"`
	IPAddress string    `json:"ip_address"`
	Timestamp time.Time `json:"timestp"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ActivityLog struct {
	ID                int       `json:"id" example:"1"`
	CreatedAt         time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UserName          string    `json:"user_name" example:"John Doe"`
	HostName          string    `json:"host_name" example:"workstation-01"`
	EventContext      string    `json:"event_context" example:"Performa"`
	IPAddress         string    `json:"ip_address" example:"192.168.1.1"`
	Description       string    `json:"description" example:"Approve performa PF-AB12345"`
	EventName         string    `json:"event_name" example:"Approve"`
	AffectedUserName  string    `json:"affected_user_name" example:"ABC Electricals"`
	AffectedUserEmail string    `json:"affected_user_email" example:"sales@abc.example"`
	ProjectID         int       `json:"project_id" example:"1"`
}
