package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func ValidOrderStatus(s OrderStatus) bool {
	return s == StatusInProgress || s == StatusCompleted || s == StatusCancelled
}

// Order is a customer's purchase of a specific offer detail. The tier fields
// are copied from the detail at creation time; later edits to the offer never
// reach back into existing orders.
type Order struct {
	ID                 int64           `json:"id" gorm:"primaryKey"`
	CustomerUserID     int64           `json:"customer_user" gorm:"index;not null"`
	BusinessUserID     int64           `json:"business_user" gorm:"index;not null"`
	OfferDetailID      int64           `json:"-" gorm:"index"`
	Title              string          `json:"title" gorm:"size:255"`
	Revisions          int             `json:"revisions" gorm:"default:0"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Features           []string        `json:"features" gorm:"serializer:json"`
	OfferType          OfferType       `json:"offer_type" gorm:"size:10"`
	Status             OrderStatus     `json:"status" gorm:"size:20;default:in_progress;index"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
