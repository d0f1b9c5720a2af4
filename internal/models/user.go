package models

import "time"

// User roles. Anything beyond the admin/user split is out of scope.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered customer or administrator.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Fname     string    `json:"fname" gorm:"type:varchar(100)"`
	Lname     string    `json:"lname" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Phone     string    `json:"phone" gorm:"type:varchar(32)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role      string    `json:"role" gorm:"type:varchar(16);default:user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
