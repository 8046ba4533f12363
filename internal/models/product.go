package models

import "time"

// Product categories.
const (
	CategoryIndoor  = "Indoor"
	CategoryOutdoor = "Outdoor"
)

// Tag is a free-form label associable with multiple products.
type Tag struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name string `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
}

// Product is admin-managed reference data; orders point at it.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Price       float64   `json:"price" validate:"gte=0"`
	Category    string    `json:"category" gorm:"type:varchar(50)" validate:"required,oneof=Indoor Outdoor"`
	Description string    `json:"description" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Tags        []Tag     `json:"tags" gorm:"many2many:product_tags"`
	CreatedAt   time.Time `json:"date_created"`
	UpdatedAt   time.Time `json:"-"`
}
