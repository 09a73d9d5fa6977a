package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
	RoleUser   = "user"

	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// ValidRoles lists every role a token may carry.
var ValidRoles = map[string]bool{
	RoleAdmin: true, RoleDoctor: true, RoleUser: true,
}

// User is an account of any role. Farmers carry role "user".
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'user';index" json:"role"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
