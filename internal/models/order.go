package models

import "time"

// Delivery statuses an order moves through.
const (
	StatusPending        = "Pending"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

// ValidStatus reports whether s is one of the three delivery statuses.
// Status values contain spaces, so this check lives here instead of a
// validator oneof tag.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// Order links one Customer to one Product with a delivery status.
// Both references are nullable: deleting a customer or product keeps
// the order around with the reference cleared.
type Order struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CustomerID *string   `json:"customer_id" gorm:"type:varchar(36);index"`
	ProductID  *string   `json:"product_id" gorm:"type:varchar(36);index"`
	Status     string    `json:"status" gorm:"type:varchar(50)" validate:"required"`
	Note       string    `json:"note" gorm:"type:varchar(225)" validate:"omitempty,max=225"`
	CreatedAt  time.Time `json:"date_created"`
	UpdatedAt  time.Time `json:"-"`
}

// OrderFilter restricts an order listing. Zero-value fields are
// ignored, so the empty filter returns the input collection unchanged.
type OrderFilter struct {
	Status    string     `json:"status"`
	ProductID string     `json:"product_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
}

// Empty reports whether no criteria are set.
func (f OrderFilter) Empty() bool {
	return f.Status == "" && f.ProductID == "" && f.DateFrom == nil && f.DateTo == nil
}
