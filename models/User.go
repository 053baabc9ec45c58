package models

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User is the authentication record. Authorization for the admin dashboard
// and booking approval hangs off Role instead of a hardcoded email.
type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:100"`
	Email    string `json:"email" gorm:"size:256;uniqueIndex;not null"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, owner, admin
}
