package models

import "time"

// Roles a user account can hold. The role is stored directly on the
// account rather than resolved through group membership, so gate checks
// are a single string compare.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents a login account. A customer-facing account is linked
// to exactly one Customer profile; admin accounts have none.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:customer" validate:"omitempty,oneof=admin customer"`
	CreatedAt time.Time `json:"date_created"`
	UpdatedAt time.Time `json:"-"`
}
