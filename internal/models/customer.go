package models

import "time"

// DefaultProfilePic is served when a customer never uploaded a picture.
const DefaultProfilePic = "profile/default.png"

// Customer is an end-user profile. UserID is nil for customers created
// directly by an admin, who have no login account.
type Customer struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     *string   `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Name       string    `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Phone      string    `json:"phone" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	Email      string    `json:"email" gorm:"type:varchar(50)" validate:"omitempty,email,max=50"`
	ProfilePic string    `json:"profile_pic" gorm:"type:varchar(255);default:profile/default.png"`
	CreatedAt  time.Time `json:"date_created"`
	UpdatedAt  time.Time `json:"-"`
}
