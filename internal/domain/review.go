package domain

import "time"

// Review is a customer's rating of a business user. The reviewer is always
// taken from the authenticated identity, never from client input, and only
// the original reviewer may change or delete the row.
type Review struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	BusinessUserID int64     `json:"business_user" gorm:"index;not null"`
	ReviewerID     int64     `json:"reviewer" gorm:"index;not null"`
	Rating         int       `json:"rating" gorm:"not null"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
