package model

import (
	"gorm.io/gorm"
)

// User is the basic login entity of the system
type User struct {
	gorm.Model
	Name     string  `gorm:"uniqueIndex;type:varchar(32);not null;comment:username"`
	Nickname *string `gorm:"type:varchar(64);comment:display name"`
	Password *string `gorm:"type:varchar(128);comment:bcrypt hash"`
	Email    *string `gorm:"type:varchar(128);comment:notification address"`
	Role     Role    `gorm:"not null;comment:platform role (guest, user, admin)"`
	Status   Status  `gorm:"not null;comment:user status (pending, active, inactive)"`
}

// UserInfo is the subset of User embedded in API responses.
type UserInfo struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Nickname *string `json:"nickname"`
}
